package handlers

import (
	"net/http"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/internal/services"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles like/dislike requests on posts, comments and replies
type ReactionHandler struct {
	contentService *services.ContentService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(contentService *services.ContentService) *ReactionHandler {
	return &ReactionHandler{contentService: contentService}
}

// RegisterReactionRoutes registers reaction routes. All of them need a caller.
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/posts/:id/reactions", h.GetPostReactionStatus, auth)
	g.POST("/posts/:id/reactions", h.ReactToPost, auth)
	g.POST("/posts/:id/comments/:commentId/reactions", h.ReactToComment, auth)
	g.POST("/posts/:id/comments/:commentId/replies/:replyId/reactions", h.ReactToReply, auth)
}

func bindReaction(c echo.Context) (string, error) {
	var req models.ReactionRequest
	if err := c.Bind(&req); err != nil {
		return "", bindError()
	}
	return req.Reaction, nil
}

// ReactToPost applies like, dislike, unlike or undislike to a post
func (h *ReactionHandler) ReactToPost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	token, err := bindReaction(c)
	if err != nil {
		return err
	}

	summary, err := h.contentService.ReactToPost(c.Request().Context(), actor, c.Param("id"), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// ReactToComment applies a reaction to a comment
func (h *ReactionHandler) ReactToComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	token, err := bindReaction(c)
	if err != nil {
		return err
	}

	summary, err := h.contentService.ReactToComment(c.Request().Context(), actor, c.Param("id"), c.Param("commentId"), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// ReactToReply applies a reaction to a reply
func (h *ReactionHandler) ReactToReply(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	token, err := bindReaction(c)
	if err != nil {
		return err
	}

	summary, err := h.contentService.ReactToReply(c.Request().Context(), actor,
		c.Param("id"), c.Param("commentId"), c.Param("replyId"), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// GetPostReactionStatus returns the post totals and whether the caller liked
// or disliked it
func (h *ReactionHandler) GetPostReactionStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	summary, err := h.contentService.ReactionStatus(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
