package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/models"
	"github.com/coffeenme/coffeenme/internal/logging"
)

// Catalog is the read/engage surface of the blog: home, listings, post
// details, categories, tags, likes and comments. It owns no local state;
// it shields callers from the raw API and gates the calls that need an
// authenticated session.
type Catalog struct {
	session *Session
	api     api.Client
	log     logging.Logger
}

// NewCatalog builds the catalog surface.
func NewCatalog(session *Session, client api.Client, log logging.Logger) *Catalog {
	return &Catalog{session: session, api: client, log: log}
}

// Home fetches the landing payload.
func (c *Catalog) Home(ctx context.Context) (*models.Home, error) {
	h, err := c.api.Home(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading home: %w", err)
	}
	return h, nil
}

// ListPosts fetches one page of posts; q.Page defaults to the first page.
func (c *Catalog) ListPosts(ctx context.Context, q api.PostQuery) (*models.Page[models.Post], error) {
	page, err := c.api.ListPosts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return page, nil
}

// GetPost fetches a post detail by ID.
func (c *Catalog) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if id == "" {
		return nil, ErrEmptyPostID
	}
	p, err := c.api.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading post %s: %w", id, err)
	}
	return p, nil
}

// GetPostBySlug fetches a post detail by slug.
func (c *Catalog) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if slug == "" {
		return nil, errors.New("empty slug")
	}
	p, err := c.api.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("loading post by slug %s: %w", slug, err)
	}
	return p, nil
}

// Categories returns all categories.
func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	cats, err := c.api.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return cats, nil
}

// Tags returns all tags.
func (c *Catalog) Tags(ctx context.Context) ([]models.Tag, error) {
	tags, err := c.api.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// Like flips the like state of a post. Requires an authenticated session.
func (c *Catalog) Like(ctx context.Context, postID string) (models.LikeResult, error) {
	if postID == "" {
		return models.LikeResult{}, ErrEmptyPostID
	}
	if !c.session.IsAuthenticated() {
		return models.LikeResult{}, fmt.Errorf("%w: login required to like posts", api.ErrUnauthorized)
	}
	res, err := c.api.ToggleLike(ctx, postID)
	if err != nil {
		return models.LikeResult{}, fmt.Errorf("toggling like on %s: %w", postID, err)
	}
	return res, nil
}

// Comment posts a comment on postID, optionally replying to parent.
// Requires an authenticated session and non-blank content.
func (c *Catalog) Comment(ctx context.Context, postID, content string, parent *int64) (*models.Comment, error) {
	if postID == "" {
		return nil, ErrEmptyPostID
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("empty comment")
	}
	if !c.session.IsAuthenticated() {
		return nil, fmt.Errorf("%w: login required to comment", api.ErrUnauthorized)
	}
	out, err := c.api.AddComment(ctx, models.CommentCreate{Post: postID, Content: content, Parent: parent})
	if err != nil {
		return nil, fmt.Errorf("posting comment: %w", err)
	}
	return out, nil
}

// LikedPosts returns the posts the current user has liked. Guests get
// ErrUnauthorized without a network round trip.
func (c *Catalog) LikedPosts(ctx context.Context) ([]models.Post, error) {
	if !c.session.IsAuthenticated() {
		return nil, fmt.Errorf("%w: login required", api.ErrUnauthorized)
	}
	posts, err := c.api.LikedPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing liked posts: %w", err)
	}
	return posts, nil
}
