package api

import (
	"errors"
	"net/http"
	"strconv"

	"devfolio/internal/domain"

	"github.com/gin-gonic/gin"
)

// statusFor maps a classified store failure onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConnectivity):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": domain.Describe(err)})
}

// parseFilterOptions reads list options from the query string. Malformed
// values fall back to defaults instead of failing the request.
func parseFilterOptions(c *gin.Context) domain.FilterOptions {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(domain.DefaultPageSize)))
	opts := domain.FilterOptions{
		Category:   c.DefaultQuery("category", domain.FilterAll),
		Status:     c.DefaultQuery("status", domain.FilterAll),
		SearchTerm: c.Query("search"),
		SortKey:    domain.SortKey(c.DefaultQuery("sort", string(domain.SortLatest))),
		PageSize:   pageSize,
	}
	return opts.Normalized()
}
