package api

import (
	"net/http"
	"time"

	"devfolio/internal/domain"
	"devfolio/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BoardHandler struct {
	Posts    repository.RecordStore[domain.Post]
	Comments repository.RecordStore[domain.Comment]
	Counters CounterBumper
	now      func() time.Time
}

type CreateCommentRequest struct {
	Content    string `json:"content" binding:"required"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name" binding:"required"`
}

func NewBoardHandler(posts repository.RecordStore[domain.Post], comments repository.RecordStore[domain.Comment], counters CounterBumper) *BoardHandler {
	return &BoardHandler{Posts: posts, Comments: comments, Counters: counters, now: time.Now}
}

// ListPosts 討論區文章列表 (一次性查詢，即時版本請用 feed)
func (h *BoardHandler) ListPosts(c *gin.Context) {
	listRecords(c, h.Posts)
}

func (h *BoardHandler) GetPost(c *gin.Context) {
	getRecord(c, h.Posts, h.Counters)
}

func (h *BoardHandler) LikePost(c *gin.Context) {
	likeRecord(c, h.Posts, h.Counters)
}

func (h *BoardHandler) ListComments(c *gin.Context) {
	comments, err := h.Comments.FetchByField(c.Request.Context(), "post_id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": comments})
}

// CreateComment 新增留言，留言數在背景累加
func (h *BoardHandler) CreateComment(c *gin.Context) {
	postID := c.Param("id")

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "格式錯誤: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	post, err := h.Posts.FetchOne(ctx, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到文章"})
		return
	}

	now := h.now()
	comment := domain.Comment{
		PostID:     postID,
		Content:    req.Content,
		AuthorID:   req.AuthorID,
		AuthorName: req.AuthorName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := h.Comments.Create(ctx, comment)
	if err != nil {
		respondError(c, err)
		return
	}
	logrus.Infof("[Board] 新增留言 %s 於文章 %s", id, postID)

	h.Counters.Bump(h.Posts, postID, domain.FieldCommentCount, 1)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
