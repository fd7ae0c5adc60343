package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/community-engine/internal/middleware"
	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/internal/services"
	"github.com/labstack/echo/v4"
)

// ModerationHandler handles reports and the moderation log
type ModerationHandler struct {
	contentService *services.ContentService
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(contentService *services.ContentService) *ModerationHandler {
	return &ModerationHandler{contentService: contentService}
}

// RegisterModerationRoutes registers report and admin routes
func (h *ModerationHandler) RegisterModerationRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/posts/:id/report", h.ReportPost, auth)
	g.GET("/admin/moderation/events", h.GetModerationEvents, auth, middleware.RequireAdmin())
}

// ReportPost files the caller's report against a post
func (h *ModerationHandler) ReportPost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req models.ReportRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	outcome, err := h.contentService.ReportPost(c.Request().Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, outcome)
}

// GetModerationEvents lists automatic deactivations, newest first
func (h *ModerationHandler) GetModerationEvents(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.contentService.ListModerationEvents(c.Request().Context(), actor, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
