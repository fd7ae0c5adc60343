package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// withReplies guarantees a non-nil replies list on every comment
func withReplies(comments []models.Comment) []models.Comment {
	if comments == nil {
		return []models.Comment{}
	}
	for i := range comments {
		if comments[i].Replies == nil {
			comments[i].Replies = []models.Reply{}
		}
	}
	return comments
}

func (s *ContentService) requireActivePost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.GetActivePost(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post", postID)
	}
	return post, nil
}

// AddComment attaches a top-level comment to an active post
func (s *ContentService) AddComment(ctx context.Context, actor models.Actor, postID, content string) (*models.Comment, error) {
	if err := requireActor(actor, "create", "comment"); err != nil {
		return nil, err
	}
	input := models.CommentInput{Content: strings.TrimSpace(content)}
	if err := s.validateStruct(input); err != nil {
		return nil, err
	}

	now := s.now()
	comment := &models.Comment{
		ID:         uuid.NewString(),
		PostID:     postID,
		AuthorID:   actor.UserID,
		AuthorName: actor.DisplayName,
		Content:    input.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
		Replies:    []models.Reply{},
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, notFound(err, "post", postID)
	}
	return comment, nil
}

// AddReply attaches a reply to a comment. Replies cannot themselves be
// replied to, so commentID must name a top-level comment of the post.
func (s *ContentService) AddReply(ctx context.Context, actor models.Actor, postID, commentID, content string) (*models.Reply, error) {
	if err := requireActor(actor, "create", "reply"); err != nil {
		return nil, err
	}
	input := models.ReplyInput{Content: strings.TrimSpace(content)}
	if err := s.validateStruct(input); err != nil {
		return nil, err
	}
	if _, err := s.requireActivePost(ctx, postID); err != nil {
		return nil, err
	}

	now := s.now()
	reply := &models.Reply{
		ID:         uuid.NewString(),
		CommentID:  commentID,
		PostID:     postID,
		AuthorID:   actor.UserID,
		AuthorName: actor.DisplayName,
		Content:    input.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.comments.CreateReply(ctx, reply); err != nil {
		return nil, notFound(err, "comment", commentID)
	}
	return reply, nil
}

// UpdateComment rewrites a comment. Only its author or an admin may do so.
func (s *ContentService) UpdateComment(ctx context.Context, actor models.Actor, postID, commentID, content string) (*models.Comment, error) {
	if err := requireActor(actor, "update", "comment"); err != nil {
		return nil, err
	}
	input := models.CommentInput{Content: strings.TrimSpace(content)}
	if err := s.validateStruct(input); err != nil {
		return nil, err
	}
	comment, err := s.findComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(comment.AuthorID) {
		return nil, &AuthorizationError{Action: "update", Resource: "comment"}
	}

	now := s.now()
	if err := s.comments.UpdateComment(ctx, comment.ID, input.Content, now); err != nil {
		return nil, notFound(err, "comment", commentID)
	}
	comment.Content = input.Content
	comment.UpdatedAt = now
	return comment, nil
}

// UpdateReply rewrites a reply. Only its author or an admin may do so.
func (s *ContentService) UpdateReply(ctx context.Context, actor models.Actor, postID, commentID, replyID, content string) (*models.Reply, error) {
	if err := requireActor(actor, "update", "reply"); err != nil {
		return nil, err
	}
	input := models.ReplyInput{Content: strings.TrimSpace(content)}
	if err := s.validateStruct(input); err != nil {
		return nil, err
	}
	reply, err := s.findReply(ctx, postID, commentID, replyID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(reply.AuthorID) {
		return nil, &AuthorizationError{Action: "update", Resource: "reply"}
	}

	now := s.now()
	if err := s.comments.UpdateReply(ctx, reply.ID, input.Content, now); err != nil {
		return nil, notFound(err, "reply", replyID)
	}
	reply.Content = input.Content
	reply.UpdatedAt = now
	return reply, nil
}

// DeleteComment removes a comment along with its replies and reactions
func (s *ContentService) DeleteComment(ctx context.Context, actor models.Actor, postID, commentID string) error {
	if err := requireActor(actor, "delete", "comment"); err != nil {
		return err
	}
	comment, err := s.findComment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !actor.CanModify(comment.AuthorID) {
		return &AuthorizationError{Action: "delete", Resource: "comment"}
	}
	if err := s.comments.DeleteComment(ctx, comment); err != nil {
		return notFound(err, "comment", commentID)
	}
	s.log.Info("comment deleted",
		zap.String("post_id", postID),
		zap.String("comment_id", commentID),
		zap.Int("replies", len(comment.Replies)),
	)
	return nil
}

// DeleteReply removes a reply and its reactions
func (s *ContentService) DeleteReply(ctx context.Context, actor models.Actor, postID, commentID, replyID string) error {
	if err := requireActor(actor, "delete", "reply"); err != nil {
		return err
	}
	reply, err := s.findReply(ctx, postID, commentID, replyID)
	if err != nil {
		return err
	}
	if !actor.CanModify(reply.AuthorID) {
		return &AuthorizationError{Action: "delete", Resource: "reply"}
	}
	if err := s.comments.DeleteReply(ctx, reply); err != nil {
		return notFound(err, "reply", replyID)
	}
	return nil
}

// ListComments returns one page of top-level comments with replies embedded
func (s *ContentService) ListComments(ctx context.Context, postID string, query models.CommentQuery) (*models.CommentPage, error) {
	query.Order = strings.ToLower(strings.TrimSpace(query.Order))
	switch query.Order {
	case "":
		query.Order = models.OrderAsc
	case models.OrderAsc, models.OrderDesc:
	default:
		return nil, &ValidationError{Field: "order", Message: "must be asc or desc"}
	}
	if _, err := s.requireActivePost(ctx, postID); err != nil {
		return nil, err
	}
	query.Page, query.Limit = models.ClampPage(query.Page, query.Limit)

	comments, total, err := s.comments.GetCommentsByPostID(ctx, postID, query)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return &models.CommentPage{
		Comments:   withReplies(comments),
		Pagination: models.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// findComment resolves a comment of an active post
func (s *ContentService) findComment(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	if _, err := s.requireActivePost(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, notFound(err, "comment", commentID)
	}
	return comment, nil
}

// findReply resolves a reply through its full post/comment path
func (s *ContentService) findReply(ctx context.Context, postID, commentID, replyID string) (*models.Reply, error) {
	if _, err := s.requireActivePost(ctx, postID); err != nil {
		return nil, err
	}
	reply, err := s.comments.GetReply(ctx, postID, commentID, replyID)
	if err != nil {
		return nil, notFound(err, "reply", replyID)
	}
	return reply, nil
}
