package models

// HistoryEntry is one visited post in the local reading history.
// Timestamp is epoch milliseconds; Progress is a percentage in [0,100].
type HistoryEntry struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Progress  float64 `json:"progress"`
}
