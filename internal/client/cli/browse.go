package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/models"
)

func printPostLine(p models.Post, marker string) {
	line := fmt.Sprintf("%s  %s — %s", p.ID, p.Title, p.Author.Username)
	if marker != "" {
		line += "  " + marker
	}
	printlnFn(line)
}

// Home shows the landing payload: featured, latest and trending posts.
func (a *App) Home(ctx context.Context) error {
	h, err := a.catalog.Home(ctx)
	if err != nil {
		printlnFn("Could not load the home page.")
		a.log.Error(ctx, "loading home", "err", err)
		return err
	}
	if h.FeaturedPost != nil {
		printlnFn("Featured:")
		printPostLine(*h.FeaturedPost, "")
	}
	printlnFn("Latest:")
	for _, p := range h.LatestPosts {
		printPostLine(p, "")
	}
	printlnFn("Trending:")
	for _, p := range h.TrendingPosts {
		printPostLine(p, "")
	}
	printlnFn(fmt.Sprintf("%d posts, %d categories, %d tags.",
		h.Stats.TotalPosts, h.Stats.TotalCategories, h.Stats.TotalTags))
	return nil
}

// List shows one page of posts; an optional argument selects the page.
func (a *App) List(ctx context.Context, args []string) error {
	q := api.PostQuery{}
	if len(args) > 0 {
		page, err := strconv.Atoi(args[0])
		if err != nil {
			printlnFn("Usage: list [page]")
			return err
		}
		q.Page = page
	}
	page, err := a.catalog.ListPosts(ctx, q)
	if err != nil {
		printlnFn("Could not list posts.")
		a.log.Error(ctx, "listing posts", "err", err)
		return err
	}
	for _, p := range page.Results {
		marker := ""
		if a.bookmarks.IsBookmarked(p.ID) {
			marker = "[saved]"
		} else if a.history.HasRead(p.ID) {
			marker = "[read]"
		}
		printPostLine(p, marker)
	}
	printlnFn(fmt.Sprintf("%d posts total.", page.Count))
	return nil
}

// Read fetches a post detail, prints it, and records the visit in the
// reading history.
func (a *App) Read(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter post ID")
	if err != nil {
		return err
	}
	p, err := a.catalog.GetPost(ctx, id)
	if err != nil {
		printlnFn("Could not load the post.")
		a.log.Error(ctx, "loading post", "post", id, "err", err)
		return err
	}

	printlnFn(p.Title)
	printlnFn(fmt.Sprintf("by %s · %s · %d likes", p.Author.Username, p.ReadingTime, p.LikesCount))
	printlnFn("")
	printlnFn(p.Content)

	if err := a.history.Add(ctx, p.ID, 100); err != nil {
		a.log.Warn(ctx, "recording history", "post", p.ID, "err", err)
	}
	return nil
}

// Search runs a post search on the joined arguments (prompting when none).
func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		var err error
		query, err = GetSimpleText(a.reader, "Search for", os.Stdout)
		if err != nil {
			return err
		}
	}
	posts, err := a.search.Search(ctx, query)
	if err != nil {
		printlnFn("Search failed.")
		a.log.Error(ctx, "search", "query", query, "err", err)
		return err
	}
	if len(posts) == 0 {
		printlnFn("No posts found.")
		return nil
	}
	for _, p := range posts {
		printPostLine(p, "")
	}
	return nil
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, os.Stdout)
}
