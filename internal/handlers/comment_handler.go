package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	contentService *services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(contentService *services.ContentService) *CommentHandler {
	return &CommentHandler{contentService: contentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/posts/:id/comments", h.GetComments)
	g.POST("/posts/:id/comments", h.CreateComment, auth)
	g.PUT("/posts/:id/comments/:commentId", h.UpdateComment, auth)
	g.DELETE("/posts/:id/comments/:commentId", h.DeleteComment, auth)
	g.PUT("/posts/:id/comments/:commentId/replies/:replyId", h.UpdateReply, auth)
	g.DELETE("/posts/:id/comments/:commentId/replies/:replyId", h.DeleteReply, auth)
}

// CreateComment adds a comment, or a reply when parent_id names a comment
func (h *CommentHandler) CreateComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	ctx := c.Request().Context()
	postID := c.Param("id")
	if req.ParentID != "" {
		reply, err := h.contentService.AddReply(ctx, actor, postID, req.ParentID, req.Content)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, reply)
	}

	comment, err := h.contentService.AddComment(ctx, actor, postID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments lists top-level comments of a post with their replies
func (h *CommentHandler) GetComments(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.contentService.ListComments(c.Request().Context(), c.Param("id"), models.CommentQuery{
		Page:  page,
		Limit: limit,
		Order: c.QueryParam("order"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// UpdateComment rewrites a comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	comment, err := h.contentService.UpdateComment(c.Request().Context(), actor, c.Param("id"), c.Param("commentId"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment with its replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.contentService.DeleteComment(c.Request().Context(), actor, c.Param("id"), c.Param("commentId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateReply rewrites a reply
func (h *CommentHandler) UpdateReply(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	reply, err := h.contentService.UpdateReply(c.Request().Context(), actor,
		c.Param("id"), c.Param("commentId"), c.Param("replyId"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reply)
}

// DeleteReply removes a reply
func (h *CommentHandler) DeleteReply(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	err = h.contentService.DeleteReply(c.Request().Context(), actor, c.Param("id"), c.Param("commentId"), c.Param("replyId"))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
