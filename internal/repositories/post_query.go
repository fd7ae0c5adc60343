package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/community-engine/internal/models"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func activePosts(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

func inCategory(category string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if category == "" {
			return db
		}
		return db.Where("category = ?", category)
	}
}

// tagMatch tests each element of the tags array, never its JSON encoding
func tagMatch(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return `EXISTS (SELECT 1 FROM jsonb_array_elements_text(CASE WHEN jsonb_typeof(posts.tags) = 'array' THEN posts.tags ELSE '[]'::jsonb END) AS t(tag) WHERE LOWER(t.tag) LIKE ? ESCAPE '\')`
	}
	return `EXISTS (SELECT 1 FROM json_each(CAST(posts.tags AS TEXT)) AS t WHERE t.type = 'text' AND LOWER(t.value) LIKE ? ESCAPE '\')`
}

// matching is a case-insensitive substring match over title, content and tags
func matching(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		return db.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\' OR `+tagMatch(db)+`)`,
			pattern, pattern, pattern,
		)
	}
}

// sortedBy orders by the requested key with id as the final tie-break.
// popular ranks by reaction count, likes plus dislikes.
func sortedBy(sort string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch sort {
		case models.SortOldest:
			db = db.Order("created_at ASC")
		case models.SortPopular:
			db = db.Order("like_count + dislike_count DESC").Order("view_count DESC").Order("created_at DESC")
		default:
			db = db.Order("created_at DESC")
		}
		return db.Order("id ASC")
	}
}

func paginate(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page, limit = models.ClampPage(page, limit)
		return db.Offset(models.Offset(page, limit)).Limit(limit)
	}
}

// ListPosts returns one page of active posts and the total number of matches
func (r *PostgresPostRepository) ListPosts(ctx context.Context, query models.PostQuery) ([]models.Post, int64, error) {
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Post{}).
			Scopes(activePosts, inCategory(query.Category), matching(query.Search))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := filtered().
		Scopes(sortedBy(query.SortBy), paginate(query.Page, query.Limit)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
