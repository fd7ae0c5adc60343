package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/anonto42/community-engine/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the schema
// migrated. A single connection keeps every query on the same database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.Migrate(db))
	return db
}

// SeedPost inserts an active post authored by authorID
func SeedPost(t testing.TB, db *gorm.DB, authorID string, mutate ...func(*models.Post)) *models.Post {
	t.Helper()

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.NewString(),
		Title:     "title",
		Content:   "content",
		AuthorID:  authorID,
		Category:  "자유",
		Tags:      datatypes.JSONSlice[string]{},
		Images:    datatypes.JSONSlice[string]{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, m := range mutate {
		m(post)
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
