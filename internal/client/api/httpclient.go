package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/coffeenme/coffeenme/internal/client/models"
)

// tokenScheme is the Authorization scheme the backend expects
// ("Authorization: Token <token>").
const tokenScheme = "Token"

// HTTPClient is the JSON-over-HTTP implementation of Client.
//
// It keeps the current auth token internally and attaches it to every
// outgoing request. Idempotent GETs are retried on transient failures;
// mutations are sent exactly once (a retried toggle would flip twice).
type HTTPClient struct {
	base  *url.URL
	httpc *http.Client

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given absolute base URL.
// timeout bounds each individual HTTP attempt.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	return &HTTPClient{base: u, httpc: &http.Client{Timeout: timeout}}, nil
}

// SetToken installs the token attached to subsequent requests.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the current token; subsequent requests go out anonymous.
func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Close releases idle connections. The client must not be used afterwards.
func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// statusError is a non-2xx response before sentinel mapping.
type statusError struct {
	status int
	detail string
}

func (e *statusError) Error() string {
	if e.detail == "" {
		return "unexpected status " + strconv.Itoa(e.status)
	}
	return "unexpected status " + strconv.Itoa(e.status) + ": " + e.detail
}

func newStatusError(resp *http.Response) *statusError {
	se := &statusError{status: resp.StatusCode}
	// DRF errors usually carry {"detail": "..."}; keep it for messaging.
	var body struct {
		Detail         string   `json:"detail"`
		NonFieldErrors []string `json:"non_field_errors"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		switch {
		case body.Detail != "":
			se.detail = body.Detail
		case len(body.NonFieldErrors) > 0:
			se.detail = strings.Join(body.NonFieldErrors, "; ")
		}
	}
	return se
}

// mapStatus converts a statusError into the package sentinels.
// 400s without a dedicated sentinel are returned as-is.
func mapStatus(err error) error {
	var se *statusError
	if !errors.As(err, &se) {
		return err
	}
	switch {
	case se.status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, se.detail)
	case se.status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, se.detail)
	case se.status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, se.detail)
	case se.status >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, se.status)
	}
	return se
}

func isTransient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.status >= 500
	}
	return errors.Is(err, ErrUnavailable)
}

// resolve turns a path or an absolute URL (pagination "next" links) into a
// full request URL.
func (c *HTTPClient) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing request url %q: %w", ref, err)
	}
	if u.IsAbs() {
		return ref, nil
	}
	return c.base.ResolveReference(u).String(), nil
}

// do performs one API call: marshal body, attach token, decode into out.
// out may be nil when the response body is irrelevant.
func (c *HTTPClient) do(ctx context.Context, method, ref string, body, out any) error {
	target, err := c.resolve(ref)
	if err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	attempt := func() error {
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, rd)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if tok := c.currentToken(); tok != "" {
			req.Header.Set("Authorization", tokenScheme+" "+tok)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return newStatusError(resp)
		}
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	}

	if method == http.MethodGet {
		err = retry.Do(attempt,
			retry.Context(ctx),
			retry.Attempts(3),
			retry.Delay(200*time.Millisecond),
			retry.LastErrorOnly(true),
			retry.RetryIf(isTransient),
		)
	} else {
		err = attempt()
	}
	if err != nil {
		return mapStatus(err)
	}
	return nil
}

// listAll fetches a paginated collection, following "next" links to the end.
func listAll[T any](ctx context.Context, c *HTTPClient, ref string) ([]T, error) {
	var all []T
	for ref != "" {
		var page models.Page[T]
		if err := c.do(ctx, http.MethodGet, ref, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if page.Next == nil {
			break
		}
		ref = *page.Next
	}
	return all, nil
}

// ObtainToken exchanges credentials for an auth token. A 400/401 response is
// reported as ErrInvalidCredentials; the token is NOT installed on the client.
func (c *HTTPClient) ObtainToken(ctx context.Context, username, password string) (string, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/token-auth/", body, &out)
	if err != nil {
		var se *statusError
		if errors.Is(err, ErrUnauthorized) || (errors.As(err, &se) && se.status == http.StatusBadRequest) {
			return "", fmt.Errorf("%w: login rejected", ErrInvalidCredentials)
		}
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("%w: empty token in response", ErrUnavailable)
	}
	return out.Token, nil
}

// Me fetches the profile of the token's owner.
func (c *HTTPClient) Me(ctx context.Context) (*models.CurrentUser, error) {
	var u models.CurrentUser
	if err := c.do(ctx, http.MethodGet, "/api/me/", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListBookmarks returns the full server-side bookmark collection.
func (c *HTTPClient) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	return listAll[models.Bookmark](ctx, c, "/api/user/bookmarks/")
}

// ToggleBookmark flips the bookmark state of a post on the server.
func (c *HTTPClient) ToggleBookmark(ctx context.Context, postID string) (models.BookmarkResult, error) {
	var res models.BookmarkResult
	ref := "/api/posts/" + url.PathEscape(postID) + "/bookmark/"
	if err := c.do(ctx, http.MethodPost, ref, nil, &res); err != nil {
		return models.BookmarkResult{}, err
	}
	return res, nil
}

// LikedPosts returns the posts the current user has liked.
func (c *HTTPClient) LikedPosts(ctx context.Context) ([]models.Post, error) {
	return listAll[models.Post](ctx, c, "/api/user/liked-posts/")
}

// Home fetches the composite landing payload.
func (c *HTTPClient) Home(ctx context.Context) (*models.Home, error) {
	var h models.Home
	if err := c.do(ctx, http.MethodGet, "/api/home/", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListPosts fetches one page of posts matching the query.
func (c *HTTPClient) ListPosts(ctx context.Context, q PostQuery) (*models.Page[models.Post], error) {
	vals := url.Values{}
	if q.Page > 1 {
		vals.Set("page", strconv.Itoa(q.Page))
	}
	if q.Category != "" {
		vals.Set("category", q.Category)
	}
	if q.Tag != "" {
		vals.Set("tag", q.Tag)
	}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	ref := "/api/posts/"
	if len(vals) > 0 {
		ref += "?" + vals.Encode()
	}
	var page models.Page[models.Post]
	if err := c.do(ctx, http.MethodGet, ref, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPost fetches a post detail by ID.
func (c *HTTPClient) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	ref := "/api/posts/" + url.PathEscape(id) + "/"
	if err := c.do(ctx, http.MethodGet, ref, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPostBySlug fetches a post detail by its slug.
func (c *HTTPClient) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var p models.Post
	ref := "/api/posts/slug/" + url.PathEscape(slug) + "/"
	if err := c.do(ctx, http.MethodGet, ref, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Categories returns all categories.
func (c *HTTPClient) Categories(ctx context.Context) ([]models.Category, error) {
	return listAll[models.Category](ctx, c, "/api/categories/")
}

// ListTags returns all tags.
func (c *HTTPClient) ListTags(ctx context.Context) ([]models.Tag, error) {
	return listAll[models.Tag](ctx, c, "/api/tags/")
}

// ToggleLike flips the like state of a post on the server.
func (c *HTTPClient) ToggleLike(ctx context.Context, postID string) (models.LikeResult, error) {
	var res models.LikeResult
	ref := "/api/posts/" + url.PathEscape(postID) + "/like/"
	if err := c.do(ctx, http.MethodPost, ref, nil, &res); err != nil {
		return models.LikeResult{}, err
	}
	return res, nil
}

// AddComment posts a new comment.
func (c *HTTPClient) AddComment(ctx context.Context, cc models.CommentCreate) (*models.Comment, error) {
	var out models.Comment
	if err := c.do(ctx, http.MethodPost, "/api/comments/", cc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the admin dashboard payload.
func (c *HTTPClient) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/admin/dashboard/", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreatePost creates a new post from the draft.
func (c *HTTPClient) CreatePost(ctx context.Context, draft models.PostDraft) (*models.Post, error) {
	var p models.Post
	if err := c.do(ctx, http.MethodPost, "/api/posts/", draft, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost updates an existing post from the draft.
func (c *HTTPClient) UpdatePost(ctx context.Context, id string, draft models.PostDraft) (*models.Post, error) {
	var p models.Post
	ref := "/api/posts/" + url.PathEscape(id) + "/"
	if err := c.do(ctx, http.MethodPut, ref, draft, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
