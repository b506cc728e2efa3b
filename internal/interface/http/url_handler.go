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

type UrlHandler struct {
	Svc    *application.ExchangeService
	Logger *logrus.Logger
}

func NewUrlHandler(svc *application.ExchangeService, logger *logrus.Logger) *UrlHandler {
	return &UrlHandler{Svc: svc, Logger: logger}
}

type createUrlRequest struct {
	URL string `json:"url" binding:"required,url"`
	// Zero means "use the server default"; anything else must be >= 5s.
	MinVisitTime int `json:"minVisitTime" binding:"omitempty,gte=5"`
}

func (h *UrlHandler) List(c *gin.Context) {
	urls, err := h.Svc.ListUrls(c.GetInt(middleware.CtxUserIDKey))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch urls", nil)
		return
	}
	response.Success(c, http.StatusOK, urls, "urls", nil)
}

func (h *UrlHandler) Create(c *gin.Context) {
	var req createUrlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid url data", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.CreateUrl(c.GetInt(middleware.CtxUserIDKey), req.URL, req.MinVisitTime)
	if err != nil {
		respondError(c, err, "user not found", "failed to create url")
		return
	}
	response.Success(c, http.StatusCreated, u, "url created", nil)
}

func (h *UrlHandler) SetActive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SetUrlActive(c.GetInt(middleware.CtxUserIDKey), id, *req.Active); err != nil {
		respondError(c, err, "url not found", "failed to update url activity")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"success": true}, "activity updated", nil)
}

func (h *UrlHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteUrl(c.GetInt(middleware.CtxUserIDKey), id); err != nil {
		respondError(c, err, "url not found", "failed to delete url")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"success": true}, "url deleted", nil)
}
