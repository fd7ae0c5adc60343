package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post represents a community post stored in PostgreSQL
type Post struct {
	ID           string                      `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title        string                      `json:"title" gorm:"size:200;not null"`
	Content      string                      `json:"content" gorm:"type:text;not null"`
	AuthorID     string                      `json:"author_id" gorm:"size:128;not null;index"`
	AuthorName   string                      `json:"author_name" gorm:"size:100"` // snapshot at creation time
	Category     string                      `json:"category" gorm:"size:50;not null;index"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	ViewCount    int64                       `json:"view_count" gorm:"not null;default:0"`
	LikeCount    int64                       `json:"like_count" gorm:"not null;default:0;index"`
	DislikeCount int64                       `json:"dislike_count" gorm:"not null;default:0"`
	CommentCount int64                       `json:"comment_count" gorm:"not null;default:0"`
	IsActive     bool                        `json:"is_active" gorm:"not null;index"`
	IsReported   bool                        `json:"is_reported" gorm:"not null"`
	DeletedAt    *time.Time                  `json:"deleted_at,omitempty"`
	CreatedAt    time.Time                   `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// PostDetail is a post together with its comment tree
type PostDetail struct {
	Post
	Comments []Comment `json:"comments"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Content  string   `json:"content" validate:"required,max=5000"`
	Category string   `json:"category" validate:"required,category"`
	Tags     []string `json:"tags,omitempty" validate:"max=20,dive,required,max=50"`
	Images   []string `json:"images,omitempty" validate:"max=10,dive,required,max=2048"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Nil fields are left untouched.
type UpdatePostRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Category *string   `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all
func (r UpdatePostRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Category == nil && r.Tags == nil
}

// ReportRequest defines the request body for reporting a post
type ReportRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// ViewCount is returned by the view endpoint
type ViewCount struct {
	Views int64 `json:"views"`
}
