package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a single user's abuse report against a post
type Report struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PostID     string    `json:"post_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_report_post_reporter"`
	ReporterID string    `json:"reporter_id" gorm:"size:128;not null;uniqueIndex:idx_report_post_reporter"`
	Reason     string    `json:"reason" gorm:"size:500;not null"`
	ReportedAt time.Time `json:"reported_at"`
}

// ReportOutcome is returned after a report is stored
type ReportOutcome struct {
	ReportCount int64 `json:"report_count"`
	Deactivated bool  `json:"deactivated"`
}

// ModerationEvent records an automatic deactivation (MongoDB)
type ModerationEvent struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID         string             `json:"post_id" bson:"post_id"`
	PostTitle      string             `json:"post_title" bson:"post_title"`
	AuthorID       string             `json:"author_id" bson:"author_id"`
	ReportCount    int64              `json:"report_count" bson:"report_count"`
	Threshold      int64              `json:"threshold" bson:"threshold"`
	LastReporterID string             `json:"last_reporter_id" bson:"last_reporter_id"`
	LastReason     string             `json:"last_reason" bson:"last_reason"`
	DeactivatedAt  time.Time          `json:"deactivated_at" bson:"deactivated_at"`
}
