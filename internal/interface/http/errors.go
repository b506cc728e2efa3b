package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hitbridge/traffic-exchange/internal/application"
	"github.com/hitbridge/traffic-exchange/pkg/response"
)

// respondError maps service sentinels to HTTP statuses. Forbidden stays
// distinct from NotFound so "exists but not yours" never degrades to 404.
func respondError(c *gin.Context, err error, notFoundMsg, fallbackMsg string) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Fail(c, http.StatusNotFound, notFoundMsg, nil)
	case errors.Is(err, application.ErrForbidden):
		response.Fail(c, http.StatusForbidden, "not authorized", nil)
	default:
		response.Fail(c, http.StatusInternalServerError, fallbackMsg, nil)
	}
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
