package conf

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	MongoDB   MongoConfig
	Auth      AuthConfig
	Dashboard DashboardConfig
}

type ServerConfig struct {
	Port    string
	GinMode string `mapstructure:"gin_mode"`
}

type LogConfig struct {
	Level string
}

type MongoConfig struct {
	URI      string
	Database string
	// Bounds server selection and the startup ping.
	Timeout time.Duration
	AppName string `mapstructure:"app_name"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	AdminUsername string        `mapstructure:"admin_username"`
	AdminPassword string        `mapstructure:"admin_password"`
}

type DashboardConfig struct {
	// Cron expression for the cache warm-up job; empty disables it.
	WarmSchedule string `mapstructure:"warm_schedule"`
}

// LoadConfig reads ./config/config.yaml when present, then DEVFOLIO_*
// environment variables (e.g. DEVFOLIO_MONGODB_URI).
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("devfolio")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		logrus.Info("[Config] 未找到設定檔，使用預設值與環境變數")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret must be set")
	}

	logrus.Info("[Config] 設定檔讀取成功")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("mongodb.database", "devfolio")
	v.SetDefault("mongodb.timeout", "10s")
	v.SetDefault("mongodb.app_name", "devfolio-api")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("dashboard.warm_schedule", "*/5 * * * *")
}
