package api

import (
	"context"

	"github.com/coffeenme/coffeenme/internal/client/models"
)

// PostQuery narrows a post listing. Zero values mean "no filter".
type PostQuery struct {
	Page     int
	Category string
	Tag      string
	Search   string
}

// Client is the remote API surface used by the services layer.
//
// The implementation holds the current auth token and attaches it to every
// request; SetToken/ClearToken are called by the session manager as the
// session changes. All other methods honor context cancellation and map
// failures onto the package sentinel errors.
type Client interface {
	// Auth.
	ObtainToken(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (*models.CurrentUser, error)
	SetToken(token string)
	ClearToken()

	// Personalization.
	ListBookmarks(ctx context.Context) ([]models.Bookmark, error)
	ToggleBookmark(ctx context.Context, postID string) (models.BookmarkResult, error)
	LikedPosts(ctx context.Context) ([]models.Post, error)

	// Catalog.
	Home(ctx context.Context) (*models.Home, error)
	ListPosts(ctx context.Context, q PostQuery) (*models.Page[models.Post], error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	Categories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	ToggleLike(ctx context.Context, postID string) (models.LikeResult, error)
	AddComment(ctx context.Context, c models.CommentCreate) (*models.Comment, error)

	// Admin.
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	CreatePost(ctx context.Context, draft models.PostDraft) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, draft models.PostDraft) (*models.Post, error)

	Close() error
}
