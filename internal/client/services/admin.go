package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/models"
	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/dbx"
	"github.com/coffeenme/coffeenme/internal/logging"
)

// draftKeyPrefix namespaces locally stashed editor drafts in the KV store.
const draftKeyPrefix = "draft:"

// Admin is the authenticated staff surface: dashboard stats and the post
// editor's create/update calls. Drafts are validated locally before they
// hit the network, and can be stashed in local storage so editor work
// survives a restart. Stashed drafts are tracked in a durable index
// (storage.KeyDraftIndex) kept in step with the draft records themselves.
type Admin struct {
	session  *Session
	api      api.Client
	db       *sql.DB
	log      logging.Logger
	validate *validator.Validate
}

// NewAdmin builds the admin surface over an already-migrated store handle.
func NewAdmin(session *Session, client api.Client, db *sql.DB, log logging.Logger) *Admin {
	return &Admin{
		session:  session,
		api:      client,
		db:       db,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *Admin) store() storage.KV {
	return storage.NewSQLiteKV(a.db)
}

// requireStaff gates every admin call on a validated staff session,
// failing before any network traffic.
func (a *Admin) requireStaff() error {
	u := a.session.CurrentUser()
	if u == nil {
		return fmt.Errorf("%w: login required", api.ErrUnauthorized)
	}
	if !u.IsStaff && !u.IsSuperuser {
		return fmt.Errorf("%w: staff account required", api.ErrForbidden)
	}
	return nil
}

// Dashboard fetches the admin dashboard payload.
func (a *Admin) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	if err := a.requireStaff(); err != nil {
		return nil, err
	}
	d, err := a.api.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}
	return d, nil
}

// CreatePost validates the draft locally and creates it on the server.
func (a *Admin) CreatePost(ctx context.Context, draft models.PostDraft) (*models.Post, error) {
	if err := a.requireStaff(); err != nil {
		return nil, err
	}
	if err := a.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDraft, err)
	}
	p, err := a.api.CreatePost(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	a.log.Info(ctx, "post created", "post", p.ID, "title", p.Title)
	return p, nil
}

// UpdatePost validates the draft locally and updates an existing post.
func (a *Admin) UpdatePost(ctx context.Context, id string, draft models.PostDraft) (*models.Post, error) {
	if id == "" {
		return nil, ErrEmptyPostID
	}
	if err := a.requireStaff(); err != nil {
		return nil, err
	}
	if err := a.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDraft, err)
	}
	p, err := a.api.UpdatePost(ctx, id, draft)
	if err != nil {
		return nil, fmt.Errorf("updating post %s: %w", id, err)
	}
	a.log.Info(ctx, "post updated", "post", p.ID)
	return p, nil
}

// readDraftIndex returns the stashed draft IDs, newest first. A missing or
// unreadable index yields an empty list.
func readDraftIndex(ctx context.Context, kv storage.KV) ([]string, error) {
	raw, err := kv.Get(ctx, storage.KeyDraftIndex)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

func writeDraftIndex(ctx context.Context, kv storage.KV, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return kv.Set(ctx, storage.KeyDraftIndex, raw)
}

// StashDraft stores an unsent draft locally and returns its reference ID.
// Stashing does not validate: half-written work is allowed to be saved.
// The draft record and the index entry are written in one transaction so a
// listed draft can always be loaded.
func (a *Admin) StashDraft(ctx context.Context, draft models.PostDraft) (string, error) {
	raw, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("encoding draft: %w", err)
	}
	id := uuid.NewString()

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := storage.NewSQLiteKV(tx)
		if err := kv.Set(ctx, draftKeyPrefix+id, raw); err != nil {
			return err
		}
		ids, err := readDraftIndex(ctx, kv)
		if err != nil {
			return err
		}
		return writeDraftIndex(ctx, kv, append([]string{id}, ids...))
	})
	if err != nil {
		return "", fmt.Errorf("stashing draft: %w", err)
	}
	return id, nil
}

// ListDrafts returns the stashed draft IDs, newest first.
func (a *Admin) ListDrafts(ctx context.Context) ([]string, error) {
	ids, err := readDraftIndex(ctx, a.store())
	if err != nil {
		return nil, fmt.Errorf("reading draft index: %w", err)
	}
	return ids, nil
}

// LoadDraft retrieves a stashed draft by reference ID. An unknown ID is
// reported as ErrDraftNotFound.
func (a *Admin) LoadDraft(ctx context.Context, id string) (*models.PostDraft, error) {
	raw, err := a.store().Get(ctx, draftKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("reading draft: %w", err)
	}
	if raw == nil {
		return nil, ErrDraftNotFound
	}
	var draft models.PostDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	return &draft, nil
}

// DropDraft removes a stashed draft and its index entry in one transaction.
// Dropping an unknown ID is a no-op.
func (a *Admin) DropDraft(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := storage.NewSQLiteKV(tx)
		if err := kv.Delete(ctx, draftKeyPrefix+id); err != nil {
			return err
		}
		ids, err := readDraftIndex(ctx, kv)
		if err != nil {
			return err
		}
		trimmed := slices.DeleteFunc(ids, func(s string) bool { return s == id })
		return writeDraftIndex(ctx, kv, trimmed)
	})
}
