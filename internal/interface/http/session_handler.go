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

type SessionHandler struct {
	Svc    *application.ExchangeService
	Logger *logrus.Logger
}

func NewSessionHandler(svc *application.ExchangeService, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{Svc: svc, Logger: logger}
}

type createSessionRequest struct {
	Proxy       string `json:"proxy"`
	ProxyConfig string `json:"proxyConfig"`
	Note        string `json:"note"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type setActiveRequest struct {
	// Pointer so an explicit false is distinguishable from a missing field.
	Active *bool `json:"active" binding:"required"`
}

func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.Svc.ListSessions(c.GetInt(middleware.CtxUserIDKey))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch sessions", nil)
		return
	}
	response.Success(c, http.StatusOK, sessions, "sessions", nil)
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sess, err := h.Svc.CreateSession(c.GetInt(middleware.CtxUserIDKey), application.CreateSessionInput{
		Proxy:       req.Proxy,
		ProxyConfig: req.ProxyConfig,
		Note:        req.Note,
	})
	if err != nil {
		respondError(c, err, "user not found", "failed to create session")
		return
	}
	response.Success(c, http.StatusCreated, sess, "session created", nil)
}

func (h *SessionHandler) SetStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SetSessionStatus(c.GetInt(middleware.CtxUserIDKey), id, req.Status); err != nil {
		respondError(c, err, "session not found", "failed to update session status")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"success": true}, "status updated", nil)
}

func (h *SessionHandler) SetActive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SetSessionActive(c.GetInt(middleware.CtxUserIDKey), id, *req.Active); err != nil {
		respondError(c, err, "session not found", "failed to update session activity")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"success": true}, "activity updated", nil)
}

func (h *SessionHandler) Restart(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.RestartSession(c.GetInt(middleware.CtxUserIDKey), id); err != nil {
		respondError(c, err, "session not found", "failed to restart session")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"success": true}, "session restarting", nil)
}
