package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/coffeenme/coffeenme/internal/client/api"
)

// Like flips the like state of a post.
func (a *App) Like(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter post ID")
	if err != nil {
		return err
	}
	res, err := a.catalog.Like(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			printlnFn("Log in to like posts.")
		} else {
			printlnFn("Could not update the like.")
			a.log.Error(ctx, "toggling like", "post", id, "err", err)
		}
		return err
	}
	printlnFn(fmt.Sprintf("%s — %d likes.", res.Status, res.LikesCount))
	return nil
}

// Liked lists the posts the current user has liked.
func (a *App) Liked(ctx context.Context) error {
	posts, err := a.catalog.LikedPosts(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			printlnFn("Log in to see liked posts.")
		} else {
			printlnFn("Could not list liked posts.")
			a.log.Error(ctx, "listing liked posts", "err", err)
		}
		return err
	}
	for _, p := range posts {
		printPostLine(p, "")
	}
	return nil
}

// Dashboard shows the admin stats for staff users.
func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.admin.Dashboard(ctx)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnauthorized):
			printlnFn("Log in with a staff account first.")
		case errors.Is(err, api.ErrForbidden):
			printlnFn("The dashboard needs a staff account.")
		default:
			printlnFn("Could not load the dashboard.")
			a.log.Error(ctx, "loading dashboard", "err", err)
		}
		return err
	}
	printlnFn(fmt.Sprintf("%d posts · %d views · %d likes",
		d.Stats.TotalPosts, d.Stats.TotalViews, d.Stats.TotalLikes))
	if len(d.RecentDrafts) > 0 {
		printlnFn("Recent drafts:")
		for _, p := range d.RecentDrafts {
			printPostLine(p, "")
		}
	}
	if len(d.PendingComments) > 0 {
		printlnFn(fmt.Sprintf("%d comments awaiting approval.", len(d.PendingComments)))
	}
	return nil
}
