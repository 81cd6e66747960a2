package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeenme/coffeenme/internal/client/models"
	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/logging"
)

func newSearch(t *testing.T, f *fakeAPI, kv storage.KV, window time.Duration) *Search {
	t.Helper()
	s := NewSearch(f, kv, logging.NopLogger{}, window)
	t.Cleanup(s.Stop)
	s.Load(context.Background())
	return s
}

func TestSearch_RecordsRecentQueries(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{}
	s := newSearch(t, f, kv, time.Millisecond)

	_, err := s.Search(context.Background(), "espresso")
	require.NoError(t, err)
	_, err = s.Search(context.Background(), "v60")
	require.NoError(t, err)

	assert.Equal(t, []string{"v60", "espresso"}, s.Recent())
	assert.JSONEq(t, `["v60","espresso"]`, getKey(t, kv, storage.KeyRecentSearches))
}

func TestSearch_DuplicateQueryNotReRecorded(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{}
	s := newSearch(t, f, kv, time.Millisecond)

	for _, q := range []string{"espresso", "v60", "espresso"} {
		_, err := s.Search(context.Background(), q)
		require.NoError(t, err)
	}

	// "espresso" keeps its original position.
	assert.Equal(t, []string{"v60", "espresso"}, s.Recent())
}

func TestSearch_RecentCappedAtFive(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{}
	s := newSearch(t, f, kv, time.Millisecond)

	for _, q := range []string{"a", "b", "c", "d", "e", "f"} {
		_, err := s.Search(context.Background(), q)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"f", "e", "d", "c", "b"}, s.Recent())
}

func TestSearch_BlankQuery_NoNetworkCall(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{}
	s := newSearch(t, f, kv, time.Millisecond)

	posts, err := s.Search(context.Background(), "   ")

	require.NoError(t, err)
	assert.Nil(t, posts)
	assert.Equal(t, 0, f.PostsCalls)
	assert.Empty(t, s.Recent())
}

func TestSearchDebounced_OnlyLastQueryRuns(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{PostsRet: &models.Page[models.Post]{}}
	s := newSearch(t, f, kv, 50*time.Millisecond)

	var calls atomic.Int32
	done := make(chan struct{})
	fn := func([]models.Post, error) {
		calls.Add(1)
		close(done)
	}

	discard := func([]models.Post, error) { calls.Add(1) }
	s.SearchDebounced(context.Background(), "e", discard)
	s.SearchDebounced(context.Background(), "es", discard)
	s.SearchDebounced(context.Background(), "espresso", fn)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced search never ran")
	}
	// Give earlier (cancelled) schedules a chance to misfire.
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, f.PostsCalls)
	assert.Equal(t, "espresso", f.LastQuery.Search)
}

func TestSearch_LoadMalformedRecent_Empty(t *testing.T) {
	kv := setupKV(t)
	setKey(t, kv, storage.KeyRecentSearches, `42`)
	f := &fakeAPI{}
	s := newSearch(t, f, kv, time.Millisecond)

	assert.Empty(t, s.Recent())
}

func TestSearch_ClearRecent(t *testing.T) {
	kv := setupKV(t)
	f := &fakeAPI{}
	s := newSearch(t, f, kv, time.Millisecond)

	_, err := s.Search(context.Background(), "espresso")
	require.NoError(t, err)
	require.NoError(t, s.ClearRecent(context.Background()))

	assert.Empty(t, s.Recent())
	raw, err := kv.Get(context.Background(), storage.KeyRecentSearches)
	require.NoError(t, err)
	assert.Nil(t, raw)
}
