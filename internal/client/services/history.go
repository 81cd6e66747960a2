package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coffeenme/coffeenme/internal/client/models"
	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/logging"
)

// historyLimit caps the reading history; the oldest entry is evicted.
const historyLimit = 20

// History is the local-only reading history: a most-recent-first sequence,
// unique by post ID, capped at historyLimit entries. Unlike bookmarks it
// has no remote mirror.
type History struct {
	store storage.KV
	log   logging.Logger
	now   func() time.Time // test seam

	mu      sync.Mutex
	entries []models.HistoryEntry
}

// NewHistory builds an empty history; call Load to populate it.
func NewHistory(store storage.KV, log logging.Logger) *History {
	return &History{store: store, log: log, now: time.Now}
}

// Load reads the stored sequence. Missing or malformed data yields an
// empty history and a log line; no error escapes.
func (h *History) Load(ctx context.Context) {
	raw, err := h.store.Get(ctx, storage.KeyReadingHistory)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	if err != nil {
		h.log.Error(ctx, "reading stored history, starting empty", "err", err)
		return
	}
	if len(raw) == 0 {
		return
	}
	var entries []models.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		h.log.Warn(ctx, "stored reading history unreadable, starting empty", "err", err)
		return
	}
	h.entries = entries
}

// Add records a post view: any existing entry for postID is removed, a
// fresh entry is prepended, the sequence is truncated to the cap and
// persisted. Memory and storage are updated under one lock, so no reader
// observes a partial step. Calling twice with the same arguments yields a
// single entry with a newer timestamp, never a duplicate.
func (h *History) Add(ctx context.Context, postID string, progress float64) error {
	if postID == "" {
		return ErrEmptyPostID
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	updated := make([]models.HistoryEntry, 0, len(h.entries)+1)
	updated = append(updated, models.HistoryEntry{
		ID:        postID,
		Timestamp: h.now().UnixMilli(),
		Progress:  progress,
	})
	for _, e := range h.entries {
		if e.ID != postID {
			updated = append(updated, e)
		}
	}
	if len(updated) > historyLimit {
		updated = updated[:historyLimit]
	}

	raw, err := json.Marshal(updated)
	if err == nil {
		err = h.store.Set(ctx, storage.KeyReadingHistory, raw)
	}
	if err != nil {
		// History is best-effort: the in-memory view still advances.
		h.log.Error(ctx, "persisting reading history", "err", err)
	}
	h.entries = updated
	return nil
}

// HasRead reports whether postID appears in the history.
func (h *History) HasRead(postID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.entries {
		if e.ID == postID {
			return true
		}
	}
	return false
}

// Progress returns the recorded progress for postID, or 0 when absent.
func (h *History) Progress(postID string) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.entries {
		if e.ID == postID {
			return e.Progress
		}
	}
	return 0
}

// Entries returns a copy of the history, most recent first.
func (h *History) Entries() []models.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
