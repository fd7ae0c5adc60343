package services

import (
	"context"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/pkg/metrics"
)

func parseAction(token string) (models.ReactionAction, error) {
	action, ok := models.ParseReactionAction(token)
	if !ok {
		return "", &ValidationError{Field: "reaction", Message: "must be one of like, dislike, unlike, undislike"}
	}
	return action, nil
}

// ReactToPost applies a reaction token to an active post
func (s *ContentService) ReactToPost(ctx context.Context, actor models.Actor, postID, token string) (*models.ReactionSummary, error) {
	if err := requireActor(actor, "react to", "post"); err != nil {
		return nil, err
	}
	action, err := parseAction(token)
	if err != nil {
		return nil, err
	}
	return s.react(ctx, actor, models.Subject{Type: models.SubjectPost, ID: postID}, action)
}

// ReactToComment applies a reaction token to a comment of an active post
func (s *ContentService) ReactToComment(ctx context.Context, actor models.Actor, postID, commentID, token string) (*models.ReactionSummary, error) {
	if err := requireActor(actor, "react to", "comment"); err != nil {
		return nil, err
	}
	action, err := parseAction(token)
	if err != nil {
		return nil, err
	}
	if _, err := s.findComment(ctx, postID, commentID); err != nil {
		return nil, err
	}
	return s.react(ctx, actor, models.Subject{Type: models.SubjectComment, ID: commentID}, action)
}

// ReactToReply applies a reaction token to a reply of an active post
func (s *ContentService) ReactToReply(ctx context.Context, actor models.Actor, postID, commentID, replyID, token string) (*models.ReactionSummary, error) {
	if err := requireActor(actor, "react to", "reply"); err != nil {
		return nil, err
	}
	action, err := parseAction(token)
	if err != nil {
		return nil, err
	}
	if _, err := s.findReply(ctx, postID, commentID, replyID); err != nil {
		return nil, err
	}
	return s.react(ctx, actor, models.Subject{Type: models.SubjectReply, ID: replyID}, action)
}

func (s *ContentService) react(ctx context.Context, actor models.Actor, subject models.Subject, action models.ReactionAction) (*models.ReactionSummary, error) {
	var summary *models.ReactionSummary
	err := s.withRetry(ctx, "reaction", func() error {
		var err error
		summary, err = s.reactions.Apply(ctx, subject, actor.UserID, action, s.now())
		return err
	})
	if err != nil {
		return nil, notFound(err, string(subject.Type), subject.ID)
	}
	metrics.Reactions.WithLabelValues(string(subject.Type), string(action)).Inc()
	return summary, nil
}

// ReactionStatus reads the totals of a post and the actor's own reaction
func (s *ContentService) ReactionStatus(ctx context.Context, actor models.Actor, postID string) (*models.ReactionSummary, error) {
	if _, err := s.requireActivePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.reactions.Summary(ctx, models.Subject{Type: models.SubjectPost, ID: postID}, actor.UserID)
}
