package api

import (
	"context"
	"net/http"

	"devfolio/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DashboardProvider is implemented by service.DashboardCache.
type DashboardProvider interface {
	Get(ctx context.Context, forceRefresh bool) (*domain.DashboardSnapshot, error)
	Last() *domain.DashboardSnapshot
}

type DashboardHandler struct {
	Cache DashboardProvider
}

func NewDashboardHandler(cache DashboardProvider) *DashboardHandler {
	return &DashboardHandler{Cache: cache}
}

// GetDashboard 取得儀表板快照 (TTL 內直接回傳快取)
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	h.respond(c, false)
}

// RefreshDashboard 強制重新計算
func (h *DashboardHandler) RefreshDashboard(c *gin.Context) {
	h.respond(c, true)
}

func (h *DashboardHandler) respond(c *gin.Context, force bool) {
	snapshot, err := h.Cache.Get(c.Request.Context(), force)
	if err != nil {
		logrus.Errorf("[Dashboard] 載入失敗: %v", err)
		body := gin.H{"error": domain.Describe(err)}
		// 仍可顯示上一次成功的快照
		if last := h.Cache.Last(); last != nil {
			body["stale"] = last
		}
		c.JSON(statusFor(err), body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snapshot})
}
