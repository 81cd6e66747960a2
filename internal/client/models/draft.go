package models

// PostDraft is the editor-side shape of a post create/update request.
// It is validated locally before being sent to the API; see the admin service.
type PostDraft struct {
	Title           string  `json:"title" validate:"required"`
	Content         string  `json:"content" validate:"required"`
	Excerpt         string  `json:"excerpt,omitempty"`
	Category        *int64  `json:"category,omitempty"`
	Tags            []int64 `json:"tags,omitempty"`
	IsFeatured      bool    `json:"is_featured,omitempty"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	MetaDescription string  `json:"meta_description,omitempty"`
	MetaKeywords    string  `json:"meta_keywords,omitempty"`
}

// DashboardStats is the counter block on the admin dashboard payload.
type DashboardStats struct {
	TotalPosts int `json:"total_posts"`
	TotalViews int `json:"total_views"`
	TotalLikes int `json:"total_likes"`
}

// Dashboard is the composite payload backing the admin dashboard view.
type Dashboard struct {
	Stats           DashboardStats `json:"stats"`
	RecentDrafts    []Post         `json:"recent_drafts"`
	PendingComments []Comment      `json:"pending_comments"`
}
