package repositories

import (
	"context"
	"time"

	"github.com/anonto42/community-engine/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment and reply data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	CreateReply(ctx context.Context, reply *models.Reply) error
	GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error)
	GetReply(ctx context.Context, postID, commentID, replyID string) (*models.Reply, error)
	UpdateComment(ctx context.Context, id, content string, at time.Time) error
	UpdateReply(ctx context.Context, id, content string, at time.Time) error
	DeleteComment(ctx context.Context, comment *models.Comment) error
	DeleteReply(ctx context.Context, reply *models.Reply) error
	GetCommentsByPostID(ctx context.Context, postID string, query models.CommentQuery) ([]models.Comment, int64, error)
	GetAllCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// adjustCommentCount moves the counter of an active post, failing with
// ErrNotFound when the post is missing or hidden
func adjustCommentCount(tx *gorm.DB, postID string, delta int) error {
	res := tx.Model(&models.Post{}).
		Where("id = ? AND is_active = ?", postID, true).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func repliesAscending(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// CreateComment stores a top-level comment and bumps the post counter
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := adjustCommentCount(tx, comment.PostID, 1); err != nil {
			return err
		}
		return tx.Omit("Replies").Create(comment).Error
	})
	return translate(err)
}

// CreateReply stores a reply under a comment of the same post
func (r *PostgresCommentRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parents int64
		err := tx.Model(&models.Comment{}).
			Where("id = ? AND post_id = ?", reply.CommentID, reply.PostID).
			Count(&parents).Error
		if err != nil {
			return err
		}
		if parents == 0 {
			return ErrNotFound
		}
		if err := adjustCommentCount(tx, reply.PostID, 1); err != nil {
			return err
		}
		return tx.Create(reply).Error
	})
	return translate(err)
}

// GetComment retrieves a comment of a post together with its replies
func (r *PostgresCommentRepository) GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Replies", repliesAscending).
		Where("id = ? AND post_id = ?", commentID, postID).
		Take(&comment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// GetReply retrieves a reply, checking the whole post/comment/reply path
func (r *PostgresCommentRepository) GetReply(ctx context.Context, postID, commentID, replyID string) (*models.Reply, error) {
	var reply models.Reply
	err := r.db.WithContext(ctx).
		Where("id = ? AND comment_id = ? AND post_id = ?", replyID, commentID, postID).
		Take(&reply).Error
	if err != nil {
		return nil, translate(err)
	}
	return &reply, nil
}

// UpdateComment rewrites the content of a comment
func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, id, content string, at time.Time) error {
	return r.updateContent(ctx, &models.Comment{}, id, content, at)
}

// UpdateReply rewrites the content of a reply
func (r *PostgresCommentRepository) UpdateReply(ctx context.Context, id, content string, at time.Time) error {
	return r.updateContent(ctx, &models.Reply{}, id, content, at)
}

func (r *PostgresCommentRepository) updateContent(ctx context.Context, model interface{}, id, content string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(model).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{"content": content, "updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment removes a comment, its replies and every reaction attached
// to them
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var replyIDs []string
		if err := tx.Model(&models.Reply{}).Where("comment_id = ?", comment.ID).Pluck("id", &replyIDs).Error; err != nil {
			return err
		}
		if len(replyIDs) > 0 {
			err := tx.Where("subject_type = ? AND subject_id IN ?", models.SubjectReply, replyIDs).
				Delete(&models.Reaction{}).Error
			if err != nil {
				return err
			}
			if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.Reply{}).Error; err != nil {
				return err
			}
		}
		err := tx.Where("subject_type = ? AND subject_id = ?", models.SubjectComment, comment.ID).
			Delete(&models.Reaction{}).Error
		if err != nil {
			return err
		}

		res := tx.Where("id = ?", comment.ID).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", 1+len(replyIDs))).Error
	})
	return translate(err)
}

// DeleteReply removes a reply and its reactions
func (r *PostgresCommentRepository) DeleteReply(ctx context.Context, reply *models.Reply) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("subject_type = ? AND subject_id = ?", models.SubjectReply, reply.ID).
			Delete(&models.Reaction{}).Error
		if err != nil {
			return err
		}
		res := tx.Where("id = ?", reply.ID).Delete(&models.Reply{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", reply.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", 1)).Error
	})
	return translate(err)
}

// GetCommentsByPostID returns one page of top-level comments with their
// replies embedded, plus the total number of top-level comments
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID string, query models.CommentQuery) ([]models.Comment, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if query.Order == models.OrderDesc {
		direction = "DESC"
	}
	page, limit := models.ClampPage(query.Page, query.Limit)

	var comments []models.Comment
	err := db.Preload("Replies", repliesAscending).
		Where("post_id = ?", postID).
		Order("created_at " + direction).
		Order("id ASC").
		Offset(models.Offset(page, limit)).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// GetAllCommentsByPostID returns every comment of a post, oldest first
func (r *PostgresCommentRepository) GetAllCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Replies", repliesAscending).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
