package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffeenme/coffeenme/internal/client/services"
)

// Bookmark toggles a post in or out of the bookmark set. A backend write
// failure is reported but the optimistic local state stands.
func (a *App) Bookmark(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter post ID")
	if err != nil {
		return err
	}

	saved, err := a.bookmarks.Toggle(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrBookmarkToggle) {
			printlnFn("Saved locally, but the change could not reach the server.")
		} else {
			printlnFn("Could not update the bookmark.")
			return err
		}
	}
	if saved {
		printlnFn(fmt.Sprintf("Bookmarked %s.", id))
	} else {
		printlnFn(fmt.Sprintf("Removed bookmark for %s.", id))
	}
	return err
}

// Bookmarks lists the bookmarked post IDs.
func (a *App) Bookmarks(ctx context.Context) error {
	ids := a.bookmarks.All()
	if len(ids) == 0 {
		printlnFn("No bookmarks yet.")
		return nil
	}
	for _, id := range ids {
		printlnFn(id)
	}
	return nil
}

// History lists the reading history, most recent first.
func (a *App) History(ctx context.Context) error {
	entries := a.history.Entries()
	if len(entries) == 0 {
		printlnFn("Nothing read yet.")
		return nil
	}
	for _, e := range entries {
		when := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
		printlnFn(fmt.Sprintf("%s  %s  %.0f%%", when, e.ID, e.Progress))
	}
	return nil
}

// Recent lists the recent search queries.
func (a *App) Recent(ctx context.Context) error {
	recent := a.search.Recent()
	if len(recent) == 0 {
		printlnFn("No recent searches.")
		return nil
	}
	for _, q := range recent {
		printlnFn(q)
	}
	return nil
}
