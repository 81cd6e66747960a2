package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/logging"
)

// newHistory returns a History with a deterministic, strictly increasing
// clock.
func newHistory(t *testing.T, kv storage.KV) *History {
	t.Helper()
	h := NewHistory(kv, logging.NopLogger{})
	tick := time.UnixMilli(1_700_000_000_000)
	h.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return h
}

func TestHistoryAdd_CapAtTwenty(t *testing.T) {
	kv := setupKV(t)
	h := newHistory(t, kv)
	h.Load(context.Background())

	for i := 0; i < 21; i++ {
		require.NoError(t, h.Add(context.Background(), fmt.Sprintf("p%d", i), 0))
	}

	entries := h.Entries()
	require.Len(t, entries, 20)
	assert.Equal(t, "p20", entries[0].ID)  // most recent first
	assert.Equal(t, "p1", entries[19].ID)  // oldest survivor
	assert.False(t, h.HasRead("p0"))       // evicted
}

func TestHistoryAdd_DedupMovesToFront(t *testing.T) {
	kv := setupKV(t)
	h := newHistory(t, kv)
	h.Load(context.Background())

	require.NoError(t, h.Add(context.Background(), "a", 10))
	require.NoError(t, h.Add(context.Background(), "b", 20))
	firstStamp := h.Entries()[1].Timestamp // entry "a"

	require.NoError(t, h.Add(context.Background(), "a", 55))

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Greater(t, entries[0].Timestamp, firstStamp)
	assert.Equal(t, 55.0, entries[0].Progress)
}

func TestHistoryAdd_IdenticalArgs_NoDuplicate(t *testing.T) {
	kv := setupKV(t)
	h := newHistory(t, kv)
	h.Load(context.Background())

	require.NoError(t, h.Add(context.Background(), "a", 30))
	require.NoError(t, h.Add(context.Background(), "a", 30))

	assert.Len(t, h.Entries(), 1)
}

func TestHistoryLoad_Corrupted_EmptyWithoutPanic(t *testing.T) {
	kv := setupKV(t)
	setKey(t, kv, storage.KeyReadingHistory, `this is not json`)
	h := newHistory(t, kv)

	require.NotPanics(t, func() { h.Load(context.Background()) })
	assert.Empty(t, h.Entries())
}

func TestHistory_PersistsAcrossInstances(t *testing.T) {
	kv := setupKV(t)
	h := newHistory(t, kv)
	h.Load(context.Background())
	require.NoError(t, h.Add(context.Background(), "a", 42))

	h2 := newHistory(t, kv)
	h2.Load(context.Background())

	assert.True(t, h2.HasRead("a"))
	assert.Equal(t, 42.0, h2.Progress("a"))
}

func TestHistoryReads_AbsentDefaults(t *testing.T) {
	kv := setupKV(t)
	h := newHistory(t, kv)
	h.Load(context.Background())

	assert.False(t, h.HasRead("missing"))
	assert.Equal(t, 0.0, h.Progress("missing"))
}

func TestHistoryAdd_EmptyID(t *testing.T) {
	kv := setupKV(t)
	h := newHistory(t, kv)

	assert.ErrorIs(t, h.Add(context.Background(), "", 0), ErrEmptyPostID)
}
