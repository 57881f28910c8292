// Package httpapi is a JSON-over-HTTP gateway to the account and task
// managers. Routes follow the web application's /api layout; session
// evidence is a Bearer token or the session cookie set on login.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/logging"
	"github.com/dmitrijs2005/taskjournal/internal/server/auth"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	"github.com/dmitrijs2005/taskjournal/internal/server/services"
	"github.com/gorilla/mux"
)

// AccountManager is the subset of services.AccountService the gateway uses.
type AccountManager interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*services.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*services.Session, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	GetTheme(ctx context.Context, userID int64) (models.Theme, error)
	UpdateProfile(ctx context.Context, userID int64, changes models.ProfileChanges) error
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	ChangeTheme(ctx context.Context, userID int64, theme models.Theme) (string, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

// TaskManager is the subset of services.TaskService the gateway uses.
type TaskManager interface {
	AddTask(ctx context.Context, userID int64, description, dueDate string) (*models.Task, error)
	CompleteTask(ctx context.Context, userID, taskID int64) (*models.Task, error)
	ReopenTask(ctx context.Context, userID, taskID int64) (*models.Task, error)
	ListInbox(ctx context.Context, userID int64) ([]*models.Task, error)
	ListToday(ctx context.Context, userID int64, today string) ([]*models.Task, error)
	ListCompleted(ctx context.Context, userID int64) ([]*models.Task, error)
}

type Server struct {
	address        string
	accounts       AccountManager
	tasks          TaskManager
	resolver       *auth.Resolver
	logger         logging.Logger
	accessValidity time.Duration
	now            func() time.Time
}

// NewServer builds the gateway. accessValidity is the lifetime given to the
// session cookie.
func NewServer(a string, l logging.Logger, as AccountManager, ts TaskManager, r *auth.Resolver, accessValidity time.Duration) *Server {
	return &Server{
		address:        a,
		logger:         l.With("module", "http_server"),
		accounts:       as,
		tasks:          ts,
		resolver:       r,
		accessValidity: accessValidity,
		now:            time.Now,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogMiddleware, s.identityMiddleware)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh", s.refresh).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", s.logout).Methods(http.MethodPost)

	r.HandleFunc("/api/me", s.getProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/me", s.updateProfile).Methods(http.MethodPatch)
	r.HandleFunc("/api/me/theme", s.getTheme).Methods(http.MethodGet)
	r.HandleFunc("/api/me/theme", s.changeTheme).Methods(http.MethodPatch)
	r.HandleFunc("/api/me/password", s.changePassword).Methods(http.MethodPost)
	r.HandleFunc("/api/me/delete", s.deleteAccount).Methods(http.MethodDelete)

	r.HandleFunc("/api/tasks", s.addTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/inbox", s.listInbox).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/today", s.listToday).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/completed", s.listCompleted).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{id}/complete", s.completeTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{id}/reopen", s.reopenTask).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
