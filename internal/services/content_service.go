package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/internal/repositories"
	"github.com/anonto42/community-engine/internal/validators"
	"github.com/anonto42/community-engine/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Settings are the runtime knobs of the content service
type Settings struct {
	// ReportThreshold is the number of distinct reports that hides a post
	ReportThreshold int64
	// MaxRetries bounds replays of conflicting transactions
	MaxRetries uint64
}

// ContentService is the single entry point of the HTTP layer into posts,
// comments, reactions and reports
type ContentService struct {
	posts      repositories.PostRepository
	comments   repositories.CommentRepository
	reactions  repositories.ReactionRepository
	reports    repositories.ReportRepository
	moderation repositories.ModerationLogRepository
	categories validators.CategoryRegistry
	validate   *validators.CustomValidator
	log        *zap.Logger
	settings   Settings
	now        func() time.Time
}

// NewContentService creates a new ContentService. moderation may be nil, in
// which case deactivations are not recorded.
func NewContentService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	reactions repositories.ReactionRepository,
	reports repositories.ReportRepository,
	moderation repositories.ModerationLogRepository,
	categories validators.CategoryRegistry,
	log *zap.Logger,
	settings Settings,
) *ContentService {
	if settings.ReportThreshold < 1 {
		settings.ReportThreshold = 5
	}
	return &ContentService{
		posts:      posts,
		comments:   comments,
		reactions:  reactions,
		reports:    reports,
		moderation: moderation,
		categories: categories,
		validate:   validators.NewValidator(categories),
		log:        log,
		settings:   settings,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Categories lists the categories a post may use
func (s *ContentService) Categories() []string {
	return s.categories.All()
}

func (s *ContentService) validateStruct(v interface{}) error {
	if err := s.validate.Validate(v); err != nil {
		return toValidationError(err, "")
	}
	return nil
}

func (s *ContentService) validateVar(field string, value interface{}, tag string) error {
	if err := s.validate.Var(value, tag); err != nil {
		return toValidationError(err, field)
	}
	return nil
}

func requireActor(actor models.Actor, action, resource string) error {
	if actor.UserID == "" {
		return &AuthorizationError{Action: action, Resource: resource}
	}
	return nil
}

// cleanList trims every entry and never returns nil
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// cleanTags trims every tag and drops repeats, keeping first-seen order
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range cleanList(tags) {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// CreatePost validates and stores a new active post authored by actor
func (s *ContentService) CreatePost(ctx context.Context, actor models.Actor, req models.CreatePostRequest) (*models.Post, error) {
	if err := requireActor(actor, "create", "post"); err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	req.Category = strings.TrimSpace(req.Category)
	req.Tags = cleanTags(req.Tags)
	req.Images = cleanList(req.Images)
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   actor.UserID,
		AuthorName: actor.DisplayName,
		Category:   req.Category,
		Tags:       datatypes.JSONSlice[string](req.Tags),
		Images:     datatypes.JSONSlice[string](req.Images),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.log.Debug("post created", zap.String("post_id", post.ID), zap.String("author_id", post.AuthorID))
	return post, nil
}

// GetPost returns the post with all of its comments and counts one view.
// The returned view count is the one read before this view.
func (s *ContentService) GetPost(ctx context.Context, id string) (*models.PostDetail, error) {
	post, err := s.posts.GetActivePost(ctx, id)
	if err != nil {
		return nil, notFound(err, "post", id)
	}
	if _, err := s.incrementViews(ctx, id); err != nil {
		return nil, err
	}
	comments, err := s.comments.GetAllCommentsByPostID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return &models.PostDetail{Post: *post, Comments: withReplies(comments)}, nil
}

// RecordView counts one view without loading the post
func (s *ContentService) RecordView(ctx context.Context, id string) (*models.ViewCount, error) {
	views, err := s.incrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ViewCount{Views: views}, nil
}

func (s *ContentService) incrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := s.withRetry(ctx, "view", func() error {
		var err error
		views, err = s.posts.IncrementViewCount(ctx, id)
		return err
	})
	if err != nil {
		return 0, notFound(err, "post", id)
	}
	metrics.PostViews.Inc()
	return views, nil
}

// UpdatePost applies the fields present in req. Only the author or an admin
// may update.
func (s *ContentService) UpdatePost(ctx context.Context, actor models.Actor, id string, req models.UpdatePostRequest) (*models.Post, error) {
	if err := requireActor(actor, "update", "post"); err != nil {
		return nil, err
	}
	post, err := s.posts.GetActivePost(ctx, id)
	if err != nil {
		return nil, notFound(err, "post", id)
	}
	if !actor.CanModify(post.AuthorID) {
		return nil, &AuthorizationError{Action: "update", Resource: "post"}
	}

	fields, err := s.postPatch(req)
	if err != nil {
		return nil, err
	}
	fields["updated_at"] = s.now()

	updated, err := s.posts.UpdatePost(ctx, id, fields)
	if err != nil {
		return nil, notFound(err, "post", id)
	}
	return updated, nil
}

func (s *ContentService) postPatch(req models.UpdatePostRequest) (map[string]interface{}, error) {
	if req.IsEmpty() {
		return nil, &ValidationError{Message: "no fields to update"}
	}
	fields := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := s.validateVar("title", title, "required,max=200"); err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if err := s.validateVar("content", content, "required,max=5000"); err != nil {
			return nil, err
		}
		fields["content"] = content
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if err := s.validateVar("category", category, "required,category"); err != nil {
			return nil, err
		}
		fields["category"] = category
	}
	if req.Tags != nil {
		tags := cleanTags(*req.Tags)
		if err := s.validateVar("tags", tags, "max=20,dive,required,max=50"); err != nil {
			return nil, err
		}
		fields["tags"] = datatypes.JSONSlice[string](tags)
	}
	return fields, nil
}

// DeletePost hides a post. Deleting an already hidden post succeeds and
// leaves its deletion time untouched.
func (s *ContentService) DeletePost(ctx context.Context, actor models.Actor, id string) error {
	if err := requireActor(actor, "delete", "post"); err != nil {
		return err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return notFound(err, "post", id)
	}
	if !actor.CanModify(post.AuthorID) {
		return &AuthorizationError{Action: "delete", Resource: "post"}
	}
	if !post.IsActive {
		return nil
	}
	changed, err := s.posts.SoftDeletePost(ctx, id, s.now())
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.log.Info("post deleted",
		zap.String("post_id", id),
		zap.String("actor_id", actor.UserID),
		zap.Bool("changed", changed),
	)
	return nil
}

// ListPosts returns one page of active posts
func (s *ContentService) ListPosts(ctx context.Context, query models.PostQuery) (*models.PostPage, error) {
	query.SortBy = strings.ToLower(strings.TrimSpace(query.SortBy))
	switch query.SortBy {
	case "":
		query.SortBy = models.SortLatest
	case models.SortLatest, models.SortOldest, models.SortPopular:
	default:
		return nil, &ValidationError{Field: "sortBy", Message: "must be one of latest, oldest, popular"}
	}
	query.Category = strings.TrimSpace(query.Category)
	query.Search = strings.TrimSpace(query.Search)
	query.Page, query.Limit = models.ClampPage(query.Page, query.Limit)

	posts, total, err := s.posts.ListPosts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return &models.PostPage{
		Posts:      posts,
		Pagination: models.NewPagination(query.Page, query.Limit, total),
	}, nil
}
