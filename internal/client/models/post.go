package models

// Category groups posts under a slug-addressable topic.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	PostsCount  int    `json:"posts_count"`
}

// Tag is a flat label attached to posts.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post is a blog post as served by the API. List endpoints omit Content,
// Comments and RelatedPosts; detail endpoints fill them in.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content,omitempty"`
	Author        User      `json:"author"`
	Category      *Category `json:"category"`
	Tags          []Tag     `json:"tags"`
	FeaturedImage string    `json:"featured_image"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at,omitempty"`
	PublishedAt   string    `json:"published_at"`
	ReadingTime   string    `json:"reading_time"`
	ViewsCount    int       `json:"views_count"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	IsLiked       bool      `json:"is_liked"`
	IsBookmarked  bool      `json:"is_bookmarked"`
	Status        string    `json:"status"`
	Comments      []Comment `json:"comments,omitempty"`
	RelatedPosts  []Post    `json:"related_posts,omitempty"`
}

// Page is one page of a paginated collection. Next and Previous carry the
// absolute URL of the neighbouring page, or nil at either end.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// SiteStats is the aggregate counter block on the home payload.
type SiteStats struct {
	TotalPosts      int `json:"total_posts"`
	TotalCategories int `json:"total_categories"`
	TotalTags       int `json:"total_tags"`
}

// Home is the composite payload backing the landing view.
type Home struct {
	FeaturedPost      *Post      `json:"featured_post"`
	LatestPosts       []Post     `json:"latest_posts"`
	PopularCategories []Category `json:"popular_categories"`
	TrendingPosts     []Post     `json:"trending_posts"`
	Stats             SiteStats  `json:"stats"`
}
