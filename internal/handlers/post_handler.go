package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	contentService *services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(contentService *services.ContentService) *PostHandler {
	return &PostHandler{contentService: contentService}
}

// RegisterPostRoutes registers post-related routes. auth guards the routes
// that need a caller.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/categories", h.GetCategories)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts/:id/views", h.RecordView)
	g.POST("/posts", h.CreatePost, auth)
	g.PUT("/posts/:id", h.UpdatePost, auth)
	g.DELETE("/posts/:id", h.DeletePost, auth)
}

// GetCategories lists the categories a post may be filed under
func (h *PostHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"categories": h.contentService.Categories()})
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	post, err := h.contentService.CreatePost(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post with its comments and counts the view
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.contentService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// RecordView counts a view without returning the post
func (h *PostHandler) RecordView(c echo.Context) error {
	views, err := h.contentService.RecordView(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// GetPosts lists active posts with filtering, search, sorting and pagination.
// Unparsable page or limit values fall back to the defaults.
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.contentService.ListPosts(c.Request().Context(), models.PostQuery{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sortBy"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// UpdatePost updates the fields present in the body
func (h *PostHandler) UpdatePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	post, err := h.contentService.UpdatePost(c.Request().Context(), actor, c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost hides a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.contentService.DeletePost(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
