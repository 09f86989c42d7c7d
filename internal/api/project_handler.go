package api

import (
	"devfolio/internal/domain"
	"devfolio/internal/repository"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	Projects repository.RecordStore[domain.Project]
	Counters CounterBumper
}

func NewProjectHandler(projects repository.RecordStore[domain.Project], counters CounterBumper) *ProjectHandler {
	return &ProjectHandler{Projects: projects, Counters: counters}
}

// ListProjects 作品列表 (category, status, search, sort, pageSize)
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	listRecords(c, h.Projects)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	getRecord(c, h.Projects, h.Counters)
}

func (h *ProjectHandler) LikeProject(c *gin.Context) {
	likeRecord(c, h.Projects, h.Counters)
}
