package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/community-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Apply(ctx context.Context, subject models.Subject, userID string, action models.ReactionAction, at time.Time) (*models.ReactionSummary, error)
	Summary(ctx context.Context, subject models.Subject, userID string) (*models.ReactionSummary, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// lockSubject takes a row lock on the subject so concurrent toggles on it
// serialize. Posts must also be active.
func lockSubject(tx *gorm.DB, subject models.Subject) error {
	table := subject.Type.Table()
	if table == "" {
		return fmt.Errorf("unknown subject type %q", subject.Type)
	}
	q := tx.Table(table).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", subject.ID)
	if subject.Type == models.SubjectPost {
		q = q.Where("is_active = ?", true)
	}
	var ids []string
	if err := q.Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return ErrNotFound
	}
	return nil
}

func userReaction(tx *gorm.DB, subject models.Subject, userID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := tx.Where("subject_type = ? AND subject_id = ? AND user_id = ?", subject.Type, subject.ID, userID).
		Take(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func countReactions(tx *gorm.DB, subject models.Subject) (likes, dislikes int64, err error) {
	var rows []struct {
		Type  models.ReactionType
		Total int64
	}
	err = tx.Model(&models.Reaction{}).
		Select("type, COUNT(*) AS total").
		Where("subject_type = ? AND subject_id = ?", subject.Type, subject.ID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}
	for _, row := range rows {
		switch row.Type {
		case models.ReactionLike:
			likes = row.Total
		case models.ReactionDislike:
			dislikes = row.Total
		}
	}
	return likes, dislikes, nil
}

// Apply performs one reaction transition for userID on subject and writes the
// recounted totals back to the subject row, all in one transaction.
//
// like/dislike toggle: the same type again removes it, the opposite type is
// replaced. unlike/undislike remove only a reaction of the named type.
func (r *PostgresReactionRepository) Apply(ctx context.Context, subject models.Subject, userID string, action models.ReactionAction, at time.Time) (*models.ReactionSummary, error) {
	var summary *models.ReactionSummary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSubject(tx, subject); err != nil {
			return err
		}
		existing, err := userReaction(tx, subject, userID)
		if err != nil {
			return err
		}

		target := action.Target()
		var state models.ReactionType
		if existing != nil {
			state = existing.Type
		}

		switch {
		case existing != nil && existing.Type == target:
			if err := tx.Delete(existing).Error; err != nil {
				return err
			}
			state = ""
		case action.IsToggle():
			if existing != nil {
				if err := tx.Delete(existing).Error; err != nil {
					return err
				}
			}
			reaction := &models.Reaction{
				SubjectType: subject.Type,
				SubjectID:   subject.ID,
				UserID:      userID,
				Type:        target,
				CreatedAt:   at,
			}
			if err := tx.Create(reaction).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: %v", ErrConflict, err)
				}
				return err
			}
			state = target
		}

		likes, dislikes, err := countReactions(tx, subject)
		if err != nil {
			return err
		}
		err = tx.Table(subject.Type.Table()).
			Where("id = ?", subject.ID).
			UpdateColumns(map[string]interface{}{"like_count": likes, "dislike_count": dislikes}).Error
		if err != nil {
			return err
		}

		summary = &models.ReactionSummary{
			Likes:      likes,
			Dislikes:   dislikes,
			IsLiked:    state == models.ReactionLike,
			IsDisliked: state == models.ReactionDislike,
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return summary, nil
}

// Summary reads the totals and the caller's reaction without changing them
func (r *PostgresReactionRepository) Summary(ctx context.Context, subject models.Subject, userID string) (*models.ReactionSummary, error) {
	db := r.db.WithContext(ctx)
	likes, dislikes, err := countReactions(db, subject)
	if err != nil {
		return nil, err
	}
	summary := &models.ReactionSummary{Likes: likes, Dislikes: dislikes}
	if userID == "" {
		return summary, nil
	}
	existing, err := userReaction(db, subject, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		summary.IsLiked = existing.Type == models.ReactionLike
		summary.IsDisliked = existing.Type == models.ReactionDislike
	}
	return summary, nil
}
