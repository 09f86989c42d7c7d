package api

import (
	"net/http"

	"devfolio/internal/domain"
	"devfolio/internal/listing"
	"devfolio/internal/repository"
	"devfolio/internal/service"

	"github.com/gin-gonic/gin"
)

// CounterBumper runs counter increments without blocking the request.
type CounterBumper interface {
	Bump(target service.Incrementer, id, field string, delta int)
}

func listRecords[T domain.Record](c *gin.Context, store repository.RecordStore[T]) {
	records, err := store.FetchAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	opts := parseFilterOptions(c)
	c.JSON(http.StatusOK, gin.H{
		"data":    listing.Apply(records, opts),
		"options": opts,
	})
}

// getRecord returns one record and counts the view in the background.
func getRecord[T domain.Record](c *gin.Context, store repository.RecordStore[T], counters CounterBumper) {
	id := c.Param("id")
	record, err := store.FetchOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到資料"})
		return
	}

	counters.Bump(store, id, domain.FieldViews, 1)
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// likeRecord accepts the like regardless of whether the increment lands.
func likeRecord[T any](c *gin.Context, store repository.RecordStore[T], counters CounterBumper) {
	counters.Bump(store, c.Param("id"), domain.FieldLikes, 1)
	c.JSON(http.StatusAccepted, gin.H{"message": "accepted"})
}
