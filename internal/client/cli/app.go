package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/api"
	"github.com/dmitrijs2005/taskjournal/internal/client/client"
	"github.com/dmitrijs2005/taskjournal/internal/client/config"
	"github.com/dmitrijs2005/taskjournal/internal/client/repositories/session"
)

// dateLayout is the calendar-date form the server accepts.
const dateLayout = "2006-01-02"

type App struct {
	config *config.Config
	api    client.Client
	store  session.Repository
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	email string
	theme string
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	apiClient, err := client.NewTaskJournalClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, apiClient, session.NewSQLiteRepository(db), bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, apiClient client.Client, store session.Repository, r *bufio.Reader, w io.Writer) *App {
	a := &App{config: c, api: apiClient, store: store, reader: r, out: w, now: time.Now}
	apiClient.OnTokensRefreshed(a.onTokensRefreshed)
	return a
}

// Run restores a saved session, then serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	if err := a.restoreSession(ctx); err != nil {
		a.printf("Could not restore session: %v\n", err)
	}

	a.printf("Welcome to TaskJournal CLI (type 'help' for commands)\n")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	_ = a.api.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) onTokensRefreshed(s *api.Session) {
	a.theme = s.Theme
	a.saveState(context.Background())
}
