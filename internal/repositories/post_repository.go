package repositories

import (
	"context"
	"time"

	"github.com/anonto42/community-engine/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetActivePost(ctx context.Context, id string) (*models.Post, error)
	IncrementViewCount(ctx context.Context, id string) (int64, error)
	UpdatePost(ctx context.Context, id string, fields map[string]interface{}) (*models.Post, error)
	SoftDeletePost(ctx context.Context, id string, at time.Time) (bool, error)
	ListPosts(ctx context.Context, query models.PostQuery) ([]models.Post, int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Create(post).Error)
}

// GetPostByID retrieves a post regardless of its active flag
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// GetActivePost retrieves a post only while it is visible
func (r *PostgresPostRepository) GetActivePost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		Take(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// IncrementViewCount adds exactly one view and returns the new total
func (r *PostgresPostRepository) IncrementViewCount(ctx context.Context, id string) (int64, error) {
	var views int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ? AND is_active = ?", id, true).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Post{}).Where("id = ?", id).Select("view_count").Scan(&views).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return views, nil
}

// UpdatePost applies the given columns to an active post and returns it
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, id string, fields map[string]interface{}) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ? AND is_active = ?", id, true).
			UpdateColumns(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("id = ?", id).Take(&post).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// SoftDeletePost hides a post. It reports false when the post was already
// inactive.
func (r *PostgresPostRepository) SoftDeletePost(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumns(map[string]interface{}{
			"is_active":  false,
			"deleted_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
