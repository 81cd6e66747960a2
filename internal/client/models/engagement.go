package models

// Comment is a reader comment, possibly nested one level via Parent.
type Comment struct {
	ID           int64     `json:"id"`
	Post         string    `json:"post"`
	Author       User      `json:"author"`
	Content      string    `json:"content"`
	Parent       *int64    `json:"parent"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
	IsApproved   bool      `json:"is_approved"`
	Replies      []Comment `json:"replies"`
	RepliesCount int       `json:"replies_count"`
}

// CommentCreate is the request body for posting a new comment.
type CommentCreate struct {
	Post    string `json:"post"`
	Content string `json:"content"`
	Parent  *int64 `json:"parent,omitempty"`
}

// Bookmark is one server-side bookmark record. The core only ever needs the
// embedded post ID; the rest is kept for display.
type Bookmark struct {
	ID        int64  `json:"id"`
	Post      Post   `json:"post"`
	CreatedAt string `json:"created_at"`
}

// BookmarkResult reports which way a toggle went on the server.
type BookmarkResult struct {
	Status string `json:"status"` // "bookmarked" or "removed"
}

// LikeResult reports the outcome of a like toggle.
type LikeResult struct {
	Status     string `json:"status"` // "liked" or "unliked"
	LikesCount int    `json:"likes_count"`
}
