package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/config"
	"github.com/coffeenme/coffeenme/internal/client/services"
	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the services together and drives the REPL.
type App struct {
	config *config.Config
	log    logging.Logger
	api    api.Client
	db     *sql.DB

	session   *services.Session
	bookmarks *services.Bookmarks
	history   *services.History
	search    *services.Search
	catalog   *services.Catalog
	admin     *services.Admin

	reader *bufio.Reader
}

// NewApp opens the local store, builds the API client and the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.StorePath)
	if err != nil {
		return nil, err
	}
	kv := storage.NewSQLiteKV(db)

	apiClient, err := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	session := services.NewSession(apiClient, kv, log)

	return &App{
		config:    c,
		log:       log,
		api:       apiClient,
		db:        db,
		session:   session,
		bookmarks: services.NewBookmarks(session, apiClient, kv, log),
		history:   services.NewHistory(kv, log),
		search:    services.NewSearch(apiClient, kv, log, c.SearchDebounce),
		catalog:   services.NewCatalog(session, apiClient, log),
		admin:     services.NewAdmin(session, apiClient, db, log),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session and the personalization stores, then enters the
// REPL. Initialize must complete before any command runs: it is the single
// point that decides guest vs authenticated mode.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.session.Initialize(ctx); err != nil {
		a.log.Error(ctx, "initializing session", "err", err)
	}
	a.bookmarks.Load(ctx)
	a.history.Load(ctx)
	a.search.Load(ctx)

	a.Root(ctx)
}

// Close releases the API client and the local store.
func (a *App) Close() {
	a.search.Stop()
	if err := a.api.Close(); err != nil {
		a.log.Error(context.Background(), "closing api client", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "closing local store", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	if u := a.session.CurrentUser(); u != nil {
		return u.Username
	}
	return "guest"
}
