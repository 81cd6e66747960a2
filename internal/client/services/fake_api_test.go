package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/models"
	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupStore(t *testing.T) (*sql.DB, storage.KV) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A second connection would see a fresh empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db, storage.NewSQLiteKV(db)
}

func setupKV(t *testing.T) storage.KV {
	t.Helper()
	_, kv := setupStore(t)
	return kv
}

func setKey(t *testing.T, kv storage.KV, key, value string) {
	t.Helper()
	require.NoError(t, kv.Set(context.Background(), key, []byte(value)))
}

func getKey(t *testing.T, kv storage.KV, key string) string {
	t.Helper()
	raw, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	return string(raw)
}

func staffUser(username string) *models.CurrentUser {
	u := &models.CurrentUser{}
	u.ID = 1
	u.Username = username
	u.IsStaff = true
	return u
}

func plainUser(username string) *models.CurrentUser {
	u := &models.CurrentUser{}
	u.ID = 2
	u.Username = username
	return u
}

// ---- fake client ----

// fakeAPI implements api.Client for service unit tests. Behavior is driven
// by the ...Ret/...Err fields; Last.../...Calls fields capture arguments.
type fakeAPI struct {
	mu    sync.Mutex
	token string

	ObtainTokenRet string
	ObtainTokenErr error
	LastLoginUser  string
	LastLoginPass  string

	MeRet   *models.CurrentUser
	MeErr   error
	MeCalls int

	BookmarksRet []models.Bookmark
	BookmarksErr error

	ToggleBookmarkErr   error
	ToggleBookmarkCalls []string

	LikedRet []models.Post
	LikedErr error

	HomeRet *models.Home
	HomeErr error

	PostsRet   *models.Page[models.Post]
	PostsErr   error
	PostsCalls int
	LastQuery  api.PostQuery

	PostRet *models.Post
	PostErr error

	CategoriesRet []models.Category
	TagsRet       []models.Tag

	LikeRet   models.LikeResult
	LikeErr   error
	LikeCalls int

	CommentRet  *models.Comment
	CommentErr  error
	LastComment models.CommentCreate

	DashboardRet   *models.Dashboard
	DashboardErr   error
	DashboardCalls int

	CreateRet *models.Post
	CreateErr error
	UpdateRet *models.Post
	UpdateErr error
	LastDraft models.PostDraft
}

var _ api.Client = (*fakeAPI)(nil)

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeAPI) ClearToken() { f.SetToken("") }

func (f *fakeAPI) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) ObtainToken(ctx context.Context, username, password string) (string, error) {
	f.LastLoginUser, f.LastLoginPass = username, password
	return f.ObtainTokenRet, f.ObtainTokenErr
}

func (f *fakeAPI) Me(ctx context.Context) (*models.CurrentUser, error) {
	f.MeCalls++
	return f.MeRet, f.MeErr
}

func (f *fakeAPI) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	return f.BookmarksRet, f.BookmarksErr
}

func (f *fakeAPI) ToggleBookmark(ctx context.Context, postID string) (models.BookmarkResult, error) {
	f.ToggleBookmarkCalls = append(f.ToggleBookmarkCalls, postID)
	if f.ToggleBookmarkErr != nil {
		return models.BookmarkResult{}, f.ToggleBookmarkErr
	}
	return models.BookmarkResult{Status: "bookmarked"}, nil
}

func (f *fakeAPI) LikedPosts(ctx context.Context) ([]models.Post, error) {
	return f.LikedRet, f.LikedErr
}

func (f *fakeAPI) Home(ctx context.Context) (*models.Home, error) {
	return f.HomeRet, f.HomeErr
}

func (f *fakeAPI) ListPosts(ctx context.Context, q api.PostQuery) (*models.Page[models.Post], error) {
	f.PostsCalls++
	f.LastQuery = q
	if f.PostsErr != nil {
		return nil, f.PostsErr
	}
	if f.PostsRet != nil {
		return f.PostsRet, nil
	}
	return &models.Page[models.Post]{}, nil
}

func (f *fakeAPI) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return f.PostRet, f.PostErr
}

func (f *fakeAPI) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return f.PostRet, f.PostErr
}

func (f *fakeAPI) Categories(ctx context.Context) ([]models.Category, error) {
	return f.CategoriesRet, nil
}

func (f *fakeAPI) ListTags(ctx context.Context) ([]models.Tag, error) {
	return f.TagsRet, nil
}

func (f *fakeAPI) ToggleLike(ctx context.Context, postID string) (models.LikeResult, error) {
	f.LikeCalls++
	return f.LikeRet, f.LikeErr
}

func (f *fakeAPI) AddComment(ctx context.Context, c models.CommentCreate) (*models.Comment, error) {
	f.LastComment = c
	return f.CommentRet, f.CommentErr
}

func (f *fakeAPI) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	f.DashboardCalls++
	return f.DashboardRet, f.DashboardErr
}

func (f *fakeAPI) CreatePost(ctx context.Context, draft models.PostDraft) (*models.Post, error) {
	f.LastDraft = draft
	return f.CreateRet, f.CreateErr
}

func (f *fakeAPI) UpdatePost(ctx context.Context, id string, draft models.PostDraft) (*models.Post, error) {
	f.LastDraft = draft
	return f.UpdateRet, f.UpdateErr
}

// newGuestSession returns an initialized guest session over the given store.
func newGuestSession(t *testing.T, f *fakeAPI, kv storage.KV) *Session {
	t.Helper()
	s := NewSession(f, kv, logging.NopLogger{})
	require.NoError(t, s.Initialize(context.Background()))
	require.False(t, s.IsAuthenticated())
	return s
}

// newAuthSession seeds a stored token and restores an authenticated session.
func newAuthSession(t *testing.T, f *fakeAPI, kv storage.KV, u *models.CurrentUser) *Session {
	t.Helper()
	setKey(t, kv, storage.KeyToken, "tok-1")
	f.MeRet = u
	s := NewSession(f, kv, logging.NopLogger{})
	require.NoError(t, s.Initialize(context.Background()))
	require.True(t, s.IsAuthenticated())
	return s
}
