package models

import "time"

// Comment is a first-level response to a post
type Comment struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	PostID       string    `json:"post_id" gorm:"type:varchar(36);not null;index:idx_comment_post_created"`
	AuthorID     string    `json:"author_id" gorm:"size:128;not null"`
	AuthorName   string    `json:"author_name" gorm:"size:100"`
	Content      string    `json:"content" gorm:"size:1000;not null"`
	LikeCount    int64     `json:"like_count" gorm:"not null;default:0"`
	DislikeCount int64     `json:"dislike_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_comment_post_created"`
	UpdatedAt    time.Time `json:"updated_at"`
	Replies      []Reply   `json:"replies" gorm:"foreignKey:CommentID"`
}

// Reply is a second-level response. Its parent is always a Comment.
type Reply struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CommentID    string    `json:"comment_id" gorm:"type:varchar(36);not null;index"`
	PostID       string    `json:"post_id" gorm:"type:varchar(36);not null;index"`
	AuthorID     string    `json:"author_id" gorm:"size:128;not null"`
	AuthorName   string    `json:"author_name" gorm:"size:100"`
	Content      string    `json:"content" gorm:"size:500;not null"`
	LikeCount    int64     `json:"like_count" gorm:"not null;default:0"`
	DislikeCount int64     `json:"dislike_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a comment or,
// when ParentID is set, a reply to that comment
type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
}

// CommentInput is validated before a comment is stored
type CommentInput struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// ReplyInput is validated before a reply is stored
type ReplyInput struct {
	Content string `json:"content" validate:"required,max=500"`
}

// UpdateCommentRequest defines the request body for updating a comment or reply
type UpdateCommentRequest struct {
	Content string `json:"content"`
}
