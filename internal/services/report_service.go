package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/internal/repositories"
	"github.com/anonto42/community-engine/pkg/metrics"
	"go.uber.org/zap"
)

// ReportPost records actor's report on a post. The report that brings the
// count to the threshold hides the post.
func (s *ContentService) ReportPost(ctx context.Context, actor models.Actor, postID, reason string) (*models.ReportOutcome, error) {
	if err := requireActor(actor, "report", "post"); err != nil {
		return nil, err
	}
	req := models.ReportRequest{Reason: strings.TrimSpace(reason)}
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	report := models.Report{
		PostID:     postID,
		ReporterID: actor.UserID,
		Reason:     req.Reason,
		ReportedAt: s.now(),
	}
	var outcome *models.ReportOutcome
	err := s.withRetry(ctx, "report", func() error {
		attempt := report
		var err error
		outcome, err = s.reports.CreateReport(ctx, &attempt, s.settings.ReportThreshold)
		return err
	})
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return nil, &ValidationError{Field: "post_id", Message: "already reported"}
	case err != nil:
		return nil, notFound(err, "post", postID)
	}

	metrics.Reports.Inc()
	if outcome.Deactivated {
		metrics.Deactivations.Inc()
		s.log.Info("post deactivated by reports",
			zap.String("post_id", postID),
			zap.Int64("report_count", outcome.ReportCount),
			zap.Int64("threshold", s.settings.ReportThreshold),
		)
		s.recordDeactivation(ctx, report, outcome)
	}
	return outcome, nil
}

// recordDeactivation appends to the moderation log. Failures are logged only.
func (s *ContentService) recordDeactivation(ctx context.Context, report models.Report, outcome *models.ReportOutcome) {
	if s.moderation == nil {
		return
	}
	event := &models.ModerationEvent{
		PostID:         report.PostID,
		ReportCount:    outcome.ReportCount,
		Threshold:      s.settings.ReportThreshold,
		LastReporterID: report.ReporterID,
		LastReason:     report.Reason,
		DeactivatedAt:  report.ReportedAt,
	}
	if post, err := s.posts.GetPostByID(ctx, report.PostID); err == nil {
		event.PostTitle = post.Title
		event.AuthorID = post.AuthorID
	}
	if err := s.moderation.RecordDeactivation(ctx, event); err != nil {
		s.log.Warn("failed to record moderation event", zap.String("post_id", report.PostID), zap.Error(err))
	}
}

// ListModerationEvents pages through automatic deactivations. Admin only.
func (s *ContentService) ListModerationEvents(ctx context.Context, actor models.Actor, page, limit int) (*models.ModerationEventPage, error) {
	if !actor.IsAdmin() {
		return nil, &AuthorizationError{Action: "list", Resource: "moderation log"}
	}
	page, limit = models.ClampPage(page, limit)
	if s.moderation == nil {
		return &models.ModerationEventPage{
			Events:     []models.ModerationEvent{},
			Pagination: models.NewPagination(page, limit, 0),
		}, nil
	}
	events, total, err := s.moderation.ListEvents(ctx, int64(models.Offset(page, limit)), int64(limit))
	if err != nil {
		return nil, err
	}
	return &models.ModerationEventPage{
		Events:     events,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}
