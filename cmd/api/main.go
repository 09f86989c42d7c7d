package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devfolio/internal/api"
	"devfolio/internal/conf"
	"devfolio/internal/database"
	"devfolio/internal/domain"
	"devfolio/internal/repository"
	"devfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 設定 Log 格式
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})

	// 1. Config
	cfg, err := conf.LoadConfig()
	if err != nil {
		logrus.Fatalf("Config error: %v", err)
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	// 2. Database
	mongoClient, err := database.Connect(cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("Database error: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)

	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureIndexes(startupCtx, db); err != nil {
		logrus.Warnf("[Database] 建立索引失敗: %v", err)
	}

	// 3. Dependency Injection (依賴注入)
	// Repo -> Service -> Handler
	projectRepo := repository.NewMongoRecordStore[domain.Project](db, domain.CollectionProjects)
	postRepo := repository.NewMongoRecordStore[domain.Post](db, domain.CollectionPosts)
	commentRepo := repository.NewMongoRecordStore[domain.Comment](db, domain.CollectionComments)
	userRepo := repository.NewMongoRecordStore[domain.UserActivity](db, domain.CollectionUsers)
	counterRepo := repository.NewMongoCounterRepo(db)

	statsService := service.NewStatisticsService(projectRepo, postRepo, userRepo, counterRepo)
	dashboard := service.NewDashboardCache(statsService.Reducers(), time.Now)
	feedHub := service.NewFeedHub(postRepo, time.Now)
	counterService := service.NewCounterService()

	authService := service.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.Auth.AdminPassword != "" {
		if err := authService.InitAdmin(startupCtx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			logrus.Fatalf("Init admin error: %v", err)
		}
	}
	cancel()

	// 啟動 Cron 排程 (定期預熱儀表板快取)
	cronService := service.NewCronService(dashboard)
	if err := cronService.Start(cfg.Dashboard.WarmSchedule); err != nil {
		logrus.Fatalf("Cron error: %v", err)
	}

	// 4. Gin Router Setup
	gin.SetMode(cfg.Server.GinMode)
	r := gin.Default()
	r.Use(api.CORS())
	api.RegisterRoutes(r, api.Handlers{
		Auth:      api.NewAuthHandler(authService),
		Dashboard: api.NewDashboardHandler(dashboard),
		Projects:  api.NewProjectHandler(projectRepo, counterService),
		Board:     api.NewBoardHandler(postRepo, commentRepo, counterService),
		Feed:      api.NewFeedHandler(feedHub),
	})

	// 5. Start Server
	srv := &http.Server{Addr: cfg.Server.Port, Handler: r}
	go func() {
		logrus.Infof("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	// SSE 連線不會自行結束，先關閉所有 feed session
	feedHub.Shutdown()
	cronService.Stop()

	ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server shutdown error: %v", err)
	}
	counterService.Wait()
}
