package repositories

import (
	"context"

	"github.com/anonto42/community-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report, threshold int64) (*models.ReportOutcome, error)
	CountReports(ctx context.Context, postID string) (int64, error)
}

// PostgresReportRepository implements ReportRepository for PostgreSQL
type PostgresReportRepository struct {
	db *gorm.DB
}

// NewPostgresReportRepository creates a new PostgresReportRepository
func NewPostgresReportRepository(db *gorm.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

// CreateReport stores a report and, once the post has collected threshold
// reports, hides it. The insert, the count and the deactivation share one
// transaction holding the post row lock.
func (r *PostgresReportRepository) CreateReport(ctx context.Context, report *models.Report, threshold int64) (*models.ReportOutcome, error) {
	var outcome models.ReportOutcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		err := tx.Model(&models.Post{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_active = ?", report.PostID, true).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return ErrNotFound
		}

		var existing int64
		err = tx.Model(&models.Report{}).
			Where("post_id = ? AND reporter_id = ?", report.PostID, report.ReporterID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicate
		}
		if err := tx.Create(report).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Report{}).Where("post_id = ?", report.PostID).Count(&outcome.ReportCount).Error; err != nil {
			return err
		}
		if outcome.ReportCount < threshold {
			return nil
		}
		res := tx.Model(&models.Post{}).
			Where("id = ? AND is_active = ?", report.PostID, true).
			UpdateColumns(map[string]interface{}{"is_active": false, "is_reported": true})
		if res.Error != nil {
			return res.Error
		}
		outcome.Deactivated = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &outcome, nil
}

// CountReports returns how many distinct users reported a post
func (r *PostgresReportRepository) CountReports(ctx context.Context, postID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Report{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
