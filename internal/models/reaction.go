package models

import (
	"strings"
	"time"
)

// SubjectType names the kind of record a reaction points at
type SubjectType string

const (
	SubjectPost    SubjectType = "post"
	SubjectComment SubjectType = "comment"
	SubjectReply   SubjectType = "reply"
)

// Table returns the table holding subjects of this type
func (t SubjectType) Table() string {
	switch t {
	case SubjectPost:
		return "posts"
	case SubjectComment:
		return "comments"
	case SubjectReply:
		return "replies"
	}
	return ""
}

// ReactionType is the stored kind of reaction
type ReactionType string

const (
	ReactionLike    ReactionType = "LIKE"
	ReactionDislike ReactionType = "DISLIKE"
)

// ReactionAction is a requested transition on the ledger
type ReactionAction string

const (
	ActionLike      ReactionAction = "like"
	ActionDislike   ReactionAction = "dislike"
	ActionUnlike    ReactionAction = "unlike"
	ActionUndislike ReactionAction = "undislike"
)

// ParseReactionAction accepts only like, dislike, unlike and undislike
func ParseReactionAction(token string) (ReactionAction, bool) {
	switch a := ReactionAction(strings.ToLower(strings.TrimSpace(token))); a {
	case ActionLike, ActionDislike, ActionUnlike, ActionUndislike:
		return a, true
	}
	return "", false
}

// Target returns the reaction type the action adds or removes
func (a ReactionAction) Target() ReactionType {
	if a == ActionDislike || a == ActionUndislike {
		return ReactionDislike
	}
	return ReactionLike
}

// IsToggle reports whether the action toggles (like/dislike) rather than
// unconditionally removes (unlike/undislike)
func (a ReactionAction) IsToggle() bool {
	return a == ActionLike || a == ActionDislike
}

// Subject identifies a post, comment or reply
type Subject struct {
	Type SubjectType
	ID   string
}

// Reaction is a user's single reaction on a subject
type Reaction struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	SubjectType SubjectType  `json:"subject_type" gorm:"size:10;not null;uniqueIndex:idx_reaction_subject_user"`
	SubjectID   string       `json:"subject_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_reaction_subject_user"`
	UserID      string       `json:"user_id" gorm:"size:128;not null;uniqueIndex:idx_reaction_subject_user"`
	Type        ReactionType `json:"type" gorm:"size:10;not null"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ReactionRequest defines the request body for reacting to a subject
type ReactionRequest struct {
	Reaction string `json:"reaction"`
}

// ReactionSummary holds aggregate counts and the caller's resulting state
type ReactionSummary struct {
	Likes      int64 `json:"likes"`
	Dislikes   int64 `json:"dislikes"`
	IsLiked    bool  `json:"is_liked"`
	IsDisliked bool  `json:"is_disliked"`
}
