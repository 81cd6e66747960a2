package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/models"
	"github.com/coffeenme/coffeenme/internal/client/services"
)

// promptDefault asks for a value, keeping current when the answer is blank.
func (a *App) promptDefault(prompt, current string) (string, error) {
	line, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", prompt, current), os.Stdout)
	if err != nil {
		return "", err
	}
	if line == "" {
		return current, nil
	}
	return line, nil
}

func (a *App) promptDraft(base models.PostDraft) (models.PostDraft, error) {
	var err error
	if base.Status == "" {
		base.Status = "draft"
	}
	if base.Title, err = a.promptDefault("Title", base.Title); err != nil {
		return base, err
	}
	if base.Content, err = a.promptDefault("Content", base.Content); err != nil {
		return base, err
	}
	if base.Status, err = a.promptDefault("Status (draft/published/archived)", base.Status); err != nil {
		return base, err
	}
	return base, nil
}

// Write composes a new post and creates it on the server. When the server
// cannot be reached the draft is stashed locally so the work is not lost.
func (a *App) Write(ctx context.Context) error {
	if !a.session.IsStaff() {
		printlnFn("The editor needs a staff account.")
		return api.ErrForbidden
	}

	draft, err := a.promptDraft(models.PostDraft{})
	if err != nil {
		return err
	}

	p, err := a.admin.CreatePost(ctx, draft)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDraft) {
			printlnFn("Title and content are required; status must be draft, published or archived.")
			return err
		}
		id, serr := a.admin.StashDraft(ctx, draft)
		if serr != nil {
			printlnFn("Could not create the post, and stashing the draft failed too.")
			a.log.Error(ctx, "stashing draft", "err", serr)
			return err
		}
		printlnFn(fmt.Sprintf("Could not reach the server. Draft stashed as %s; resume with 'edit %s'.", id, id))
		a.log.Warn(ctx, "post creation failed, draft stashed", "draft", id, "err", err)
		return err
	}

	printlnFn(fmt.Sprintf("Created %s — %s (%s).", p.ID, p.Title, p.Status))
	return nil
}

// Edit resumes a stashed draft or edits an existing post. Without an
// argument it lists the stashed drafts.
func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.session.IsStaff() {
		printlnFn("The editor needs a staff account.")
		return api.ErrForbidden
	}

	if len(args) == 0 {
		return a.listStashedDrafts(ctx)
	}
	id := args[0]

	draft, err := a.admin.LoadDraft(ctx, id)
	if err == nil {
		return a.resumeDraft(ctx, id, *draft)
	}
	if !errors.Is(err, services.ErrDraftNotFound) {
		printlnFn("Could not load the draft.")
		return err
	}
	return a.editPost(ctx, id)
}

func (a *App) listStashedDrafts(ctx context.Context) error {
	ids, err := a.admin.ListDrafts(ctx)
	if err != nil {
		printlnFn("Could not list stashed drafts.")
		return err
	}
	if len(ids) == 0 {
		printlnFn("No stashed drafts. Usage: edit <post-id|draft-id>")
		return nil
	}
	printlnFn("Stashed drafts:")
	for _, id := range ids {
		title := "(unreadable)"
		if d, err := a.admin.LoadDraft(ctx, id); err == nil {
			title = d.Title
		}
		printlnFn(fmt.Sprintf("%s  %s", id, title))
	}
	return nil
}

// resumeDraft re-opens a stashed draft and publishes it as a new post,
// dropping the stash on success. On failure the original stash stands.
func (a *App) resumeDraft(ctx context.Context, id string, draft models.PostDraft) error {
	draft, err := a.promptDraft(draft)
	if err != nil {
		return err
	}

	p, err := a.admin.CreatePost(ctx, draft)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDraft) {
			printlnFn("Title and content are required; status must be draft, published or archived.")
		} else {
			printlnFn(fmt.Sprintf("Could not reach the server; the draft is still stashed as %s.", id))
		}
		return err
	}

	if err := a.admin.DropDraft(ctx, id); err != nil {
		a.log.Warn(ctx, "dropping published draft", "draft", id, "err", err)
	}
	printlnFn(fmt.Sprintf("Created %s — %s (%s).", p.ID, p.Title, p.Status))
	return nil
}

func (a *App) editPost(ctx context.Context, id string) error {
	p, err := a.catalog.GetPost(ctx, id)
	if err != nil {
		printlnFn(fmt.Sprintf("No stashed draft or post with ID %s.", id))
		return err
	}

	draft, err := a.promptDraft(models.PostDraft{
		Title:   p.Title,
		Content: p.Content,
		Excerpt: p.Excerpt,
		Status:  p.Status,
	})
	if err != nil {
		return err
	}

	updated, err := a.admin.UpdatePost(ctx, id, draft)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDraft) {
			printlnFn("Title and content are required; status must be draft, published or archived.")
		} else {
			printlnFn("Could not update the post.")
			a.log.Error(ctx, "updating post", "post", id, "err", err)
		}
		return err
	}

	printlnFn(fmt.Sprintf("Updated %s — %s (%s).", updated.ID, updated.Title, updated.Status))
	return nil
}
