package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/logging"
)

// bookmarkBackend is where bookmark state lives for one operation.
// Exactly one backend is authoritative at a time, picked from the session
// mode at the moment of each call — never cached across a mode change.
type bookmarkBackend interface {
	// load returns the post IDs currently bookmarked.
	load(ctx context.Context) ([]string, error)
	// toggle records the flip of postID. bookmarked is the new membership;
	// all is the full post-flip ID sequence (used by the guest backend,
	// which persists the whole list).
	toggle(ctx context.Context, postID string, bookmarked bool, all []string) error
}

// guestBookmarks keeps the bookmark list as a JSON array in local storage.
type guestBookmarks struct {
	store storage.KV
}

func (g guestBookmarks) load(ctx context.Context) ([]string, error) {
	raw, err := g.store.Get(ctx, storage.KeyBookmarks)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("parsing stored bookmarks: %w", err)
	}
	return ids, nil
}

func (g guestBookmarks) toggle(ctx context.Context, _ string, _ bool, all []string) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return g.store.Set(ctx, storage.KeyBookmarks, raw)
}

// remoteBookmarks mirrors the server-side bookmark collection.
type remoteBookmarks struct {
	api api.Client
}

func (r remoteBookmarks) load(ctx context.Context) ([]string, error) {
	records, err := r.api.ListBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, b := range records {
		ids = append(ids, b.Post.ID)
	}
	return ids, nil
}

func (r remoteBookmarks) toggle(ctx context.Context, postID string, _ bool, _ []string) error {
	_, err := r.api.ToggleBookmark(ctx, postID)
	return err
}

// Bookmarks mirrors the user's bookmark set: local storage for guests,
// the remote collection for authenticated users. Toggles are optimistic —
// the in-memory flip is observable as soon as Toggle returns, whatever
// the backend write later reports.
type Bookmarks struct {
	session *Session
	api     api.Client
	store   storage.KV
	log     logging.Logger

	mu  sync.Mutex
	ids []string
}

// NewBookmarks builds an empty store; call Load to populate it.
func NewBookmarks(session *Session, client api.Client, store storage.KV, log logging.Logger) *Bookmarks {
	return &Bookmarks{session: session, api: client, store: store, log: log}
}

func (b *Bookmarks) backend() bookmarkBackend {
	if b.session.IsAuthenticated() {
		return remoteBookmarks{api: b.api}
	}
	return guestBookmarks{store: b.store}
}

// Load replaces the in-memory set from the current backend. It fails open:
// any backend error (unreachable server, unreadable storage) yields an
// empty set and a log line, never an error to the caller. Call it again
// after a login or logout to switch data sources.
func (b *Bookmarks) Load(ctx context.Context) {
	ids, err := b.backend().load(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.ids = nil
		b.log.Error(ctx, "loading bookmarks, starting empty", "err", err)
		return
	}
	b.ids = ids
}

// Toggle flips the membership of postID, optimistically: memory changes
// first, then the backend write happens. If the write fails the flipped
// state is kept and ErrBookmarkToggle is returned so the caller can
// surface it — in-memory and server state may then diverge until the next
// Load. The returned boolean is the new membership.
func (b *Bookmarks) Toggle(ctx context.Context, postID string) (bool, error) {
	if postID == "" {
		return false, ErrEmptyPostID
	}
	be := b.backend()

	b.mu.Lock()
	bookmarked := !slices.Contains(b.ids, postID)
	if bookmarked {
		b.ids = append(b.ids, postID)
	} else {
		b.ids = slices.DeleteFunc(b.ids, func(id string) bool { return id == postID })
	}
	snapshot := slices.Clone(b.ids)
	b.mu.Unlock()

	if err := be.toggle(ctx, postID, bookmarked, snapshot); err != nil {
		b.log.Error(ctx, "bookmark toggle not recorded", "post", postID, "err", err)
		return bookmarked, fmt.Errorf("%w: %s", ErrBookmarkToggle, err)
	}
	return bookmarked, nil
}

// IsBookmarked is a pure read of the in-memory set.
func (b *Bookmarks) IsBookmarked(postID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Contains(b.ids, postID)
}

// All returns a copy of the current post-ID sequence, oldest first.
func (b *Bookmarks) All() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.ids)
}
