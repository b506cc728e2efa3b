package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hitbridge/traffic-exchange/internal/application"
	"github.com/hitbridge/traffic-exchange/internal/interface/middleware"
	"github.com/hitbridge/traffic-exchange/pkg/response"
	"github.com/hitbridge/traffic-exchange/pkg/validation"
)

type ExchangeHandler struct {
	Svc    *application.ExchangeService
	Logger *logrus.Logger
}

func NewExchangeHandler(svc *application.ExchangeService, logger *logrus.Logger) *ExchangeHandler {
	return &ExchangeHandler{Svc: svc, Logger: logger}
}

type registerHitRequest struct {
	SessionID int `json:"sessionId" binding:"required,gt=0"`
	UrlID     int `json:"urlId" binding:"required,gt=0"`
}

func (h *ExchangeHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.GetStats(c.GetInt(middleware.CtxUserIDKey))
	if err != nil {
		respondError(c, err, "user not found", "failed to fetch stats")
		return
	}
	response.Success(c, http.StatusOK, stats, "stats", nil)
}

func (h *ExchangeHandler) RegisterHit(c *gin.Context) {
	var req registerHitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missing sessionId or urlId", validation.ToDetails(err))
		return
	}

	earned, err := h.Svc.RegisterHit(c.GetInt(middleware.CtxUserIDKey), req.SessionID, req.UrlID)
	if err != nil {
		respondError(c, err, "session or url not found", "failed to register hit")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{
		"success":      true,
		"pointsEarned": earned,
	}, "hit registered", nil)
}
