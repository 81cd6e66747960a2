package services

import "errors"

var (
	// ErrProfileFetch marks a login that obtained a token but could not
	// fetch the profile. The token is purged; the session stays guest.
	ErrProfileFetch = errors.New("profile fetch failed")

	// ErrBookmarkToggle marks a toggle whose backend write failed after the
	// optimistic in-memory flip. The flipped state is kept, not rolled back.
	ErrBookmarkToggle = errors.New("bookmark toggle failed")

	// ErrInvalidDraft marks a post draft that failed local validation.
	ErrInvalidDraft = errors.New("invalid draft")

	// ErrDraftNotFound is returned when no stashed draft has the given ID.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrEmptyPostID is returned when an operation gets a blank post ID.
	ErrEmptyPostID = errors.New("empty post id")
)
