package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Sort keys accepted by the post listing
const (
	SortLatest  = "latest"
	SortOldest  = "oldest"
	SortPopular = "popular"
)

// Comment orders
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Pagination describes one page of a listing
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination clamps page and limit and derives the page count
func NewPagination(page, limit int, total int64) Pagination {
	page, limit = ClampPage(page, limit)
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// ClampPage replaces non-positive values with defaults and caps limit
func ClampPage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the number of rows to skip for a clamped page
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// PostQuery drives the post listing
type PostQuery struct {
	Category string
	Search   string
	SortBy   string
	Page     int
	Limit    int
}

// PostPage is one page of posts
type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// CommentQuery drives the comment listing of a single post
type CommentQuery struct {
	Page  int
	Limit int
	Order string
}

// CommentPage is one page of top-level comments with their replies
type CommentPage struct {
	Comments   []Comment  `json:"comments"`
	Pagination Pagination `json:"pagination"`
}

// ModerationEventPage is one page of the moderation log
type ModerationEventPage struct {
	Events     []ModerationEvent `json:"events"`
	Pagination Pagination        `json:"pagination"`
}
