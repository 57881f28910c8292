// Package grpc exposes the account and task managers as the
// TaskJournalService gRPC service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/taskjournal/internal/api"
	"github.com/dmitrijs2005/taskjournal/internal/logging"
	"github.com/dmitrijs2005/taskjournal/internal/server/auth"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	"github.com/dmitrijs2005/taskjournal/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AccountManager is the subset of services.AccountService used by the server.
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

// TaskManager is the subset of services.TaskService used by the server.
type TaskManager interface {
	AddTask(ctx context.Context, userID int64, description, dueDate string) (*models.Task, error)
	CompleteTask(ctx context.Context, userID, taskID int64) (*models.Task, error)
	ReopenTask(ctx context.Context, userID, taskID int64) (*models.Task, error)
	ListInbox(ctx context.Context, userID int64) ([]*models.Task, error)
	ListToday(ctx context.Context, userID int64, today string) ([]*models.Task, error)
	ListCompleted(ctx context.Context, userID int64) ([]*models.Task, error)
}

type GRPCServer struct {
	api.UnimplementedTaskJournalServiceServer
	address  string
	accounts AccountManager
	tasks    TaskManager
	resolver *auth.Resolver
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, as AccountManager, ts TaskManager, r *auth.Resolver) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: as,
		tasks:    ts,
		resolver: r,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestLogInterceptor, s.identityInterceptor))

	api.RegisterTaskJournalServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
