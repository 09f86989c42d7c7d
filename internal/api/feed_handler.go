package api

import (
	"io"
	"net/http"

	"devfolio/internal/domain"
	"devfolio/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	Hub *service.FeedHub
}

func NewFeedHandler(hub *service.FeedHub) *FeedHandler {
	return &FeedHandler{Hub: hub}
}

// Stream opens a live board view over SSE. The first event ("session")
// carries the session id, every later one ("state") a FeedState.
func (h *FeedHandler) Stream(c *gin.Context) {
	session := h.Hub.Open(parseFilterOptions(c))
	defer h.Hub.Close(session.ID)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("session", gin.H{"id": session.ID})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case state := <-session.Updates():
			if !session.Fresh(state) {
				return true
			}
			c.SSEvent("state", state)
			// idle 只會在 session 被關閉時發布
			return state.ConnectionStatus != domain.ConnectionIdle
		}
	})
}

// UpdateOptions 更換篩選條件，不重新訂閱
func (h *FeedHandler) UpdateOptions(c *gin.Context) {
	session, ok := h.Hub.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session 不存在"})
		return
	}

	var opts domain.FilterOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "格式錯誤: " + err.Error()})
		return
	}
	session.Controller.UpdateOptions(opts)
	c.JSON(http.StatusOK, gin.H{"data": session.Controller.State()})
}

func (h *FeedHandler) Retry(c *gin.Context) {
	if !h.Hub.Retry(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session 不存在"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "retrying"})
}

func (h *FeedHandler) Close(c *gin.Context) {
	h.Hub.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}
