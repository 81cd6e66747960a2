package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/models"
	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/debounce"
	"github.com/coffeenme/coffeenme/internal/logging"
)

// recentSearchLimit caps the durable recent-search list.
const recentSearchLimit = 5

// Search runs full-text post searches and keeps the durable recent-search
// list. SearchDebounced is the as-you-type entry point: every keystroke
// replaces the pending query and only the last one inside the window hits
// the network.
type Search struct {
	api   api.Client
	store storage.KV
	log   logging.Logger
	deb   *debounce.Debouncer

	mu     sync.Mutex
	recent []string
}

// NewSearch builds the service with the given debounce window.
func NewSearch(client api.Client, store storage.KV, log logging.Logger, window time.Duration) *Search {
	return &Search{api: client, store: store, log: log, deb: debounce.New(window)}
}

// Load reads the stored recent searches. Missing or malformed data yields
// an empty list and a log line; no error escapes.
func (s *Search) Load(ctx context.Context) {
	raw, err := s.store.Get(ctx, storage.KeyRecentSearches)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = nil
	if err != nil {
		s.log.Error(ctx, "reading recent searches, starting empty", "err", err)
		return
	}
	if len(raw) == 0 {
		return
	}
	var recent []string
	if err := json.Unmarshal(raw, &recent); err != nil {
		s.log.Warn(ctx, "stored recent searches unreadable, starting empty", "err", err)
		return
	}
	s.recent = recent
}

// Search queries posts matching query and records it as a recent search.
// A blank query returns no results without touching the network.
func (s *Search) Search(ctx context.Context, query string) ([]models.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	page, err := s.api.ListPosts(ctx, api.PostQuery{Search: query})
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	s.remember(ctx, query)
	return page.Results, nil
}

// SearchDebounced schedules Search behind the debounce window; each call
// cancels the previously pending one. fn runs on a timer goroutine with
// the results of the last surviving query.
func (s *Search) SearchDebounced(ctx context.Context, query string, fn func([]models.Post, error)) {
	s.deb.Trigger(func() {
		fn(s.Search(ctx, query))
	})
}

// Stop cancels any pending debounced search.
func (s *Search) Stop() {
	s.deb.Stop()
}

// remember prepends query to the recent list unless already present,
// keeping at most recentSearchLimit entries.
func (s *Search) remember(ctx context.Context, query string) {
	s.mu.Lock()
	if slices.Contains(s.recent, query) {
		s.mu.Unlock()
		return
	}
	if len(s.recent) > recentSearchLimit-1 {
		s.recent = s.recent[:recentSearchLimit-1]
	}
	s.recent = append([]string{query}, s.recent...)
	snapshot := slices.Clone(s.recent)
	s.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err == nil {
		err = s.store.Set(ctx, storage.KeyRecentSearches, raw)
	}
	if err != nil {
		s.log.Error(ctx, "persisting recent searches", "err", err)
	}
}

// Recent returns a copy of the recent searches, newest first.
func (s *Search) Recent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recent)
}

// ClearRecent wipes the recent-search list, durably and in memory.
func (s *Search) ClearRecent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, storage.KeyRecentSearches); err != nil {
		return fmt.Errorf("clearing recent searches: %w", err)
	}
	s.recent = nil
	return nil
}
