package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/api"
	"github.com/dmitrijs2005/taskjournal/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	dialOpts    []grpc.DialOption
	conn        *grpc.ClientConn
	client      api.TaskJournalServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onRefresh    func(*api.Session)
}

// methods that never carry or refresh a session
var anonymousMethods = map[string]bool{
	api.FullMethod("RegisterUser"): true,
	api.FullMethod("Login"):        true,
	api.FullMethod("RefreshToken"): true,
	api.FullMethod("Ping"):         true,
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

// Tokens returns the current access and refresh tokens.
func (s *GRPCClient) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

// accessTokenInterceptor attaches the access token and, when the server
// answers Unauthenticated, rotates the refresh token once and retries.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if anonymousMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	accessToken, refreshToken := s.Tokens()

	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	if status.Code(err) != codes.Unauthenticated || refreshToken == "" {
		return err
	}

	session, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshToken})
	if rerr != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = session.AccessToken
	s.refreshToken = session.RefreshToken
	onRefresh := s.onRefresh
	s.mu.Unlock()

	if onRefresh != nil {
		onRefresh(session)
	}

	return invoker(withAccessToken(ctx, session.AccessToken), method, req, reply, cc, opts...)
}

// NewTaskJournalClient dials endpointURL lazily; no traffic happens until the
// first call.
func NewTaskJournalClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, s.dialOpts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewTaskJournalServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// SetTokens installs a session restored from local storage.
func (s *GRPCClient) SetTokens(accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

// OnTokensRefreshed registers fn to be called after a transparent refresh.
func (s *GRPCClient) OnTokensRefreshed(fn func(*api.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password, name string) (*api.Profile, error) {
	req := &api.RegisterUserRequest{Email: email, Password: password, Name: name}

	resp, err := s.client.RegisterUser(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*api.Session, error) {
	req := &api.LoginRequest{Email: email, Password: password}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return resp, nil
}

// Logout revokes the refresh token server-side and forgets both tokens.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refreshToken := s.Tokens()

	_, err := s.client.Logout(ctx, &api.LogoutRequest{RefreshToken: refreshToken})
	s.SetTokens("", "")
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetProfile(ctx context.Context) (*api.Profile, error) {
	resp, err := s.client.GetProfile(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Profile, error) {
	resp, err := s.client.UpdateProfile(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	req := &api.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	if _, err := s.client.ChangePassword(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetTheme(ctx context.Context) (string, error) {
	resp, err := s.client.GetTheme(ctx, &api.Empty{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Theme, nil
}

// ChangeTheme stores the re-minted access token carrying the new theme.
func (s *GRPCClient) ChangeTheme(ctx context.Context, theme string) (string, error) {
	resp, err := s.client.ChangeTheme(ctx, &api.ChangeThemeRequest{Theme: theme})
	if err != nil {
		return "", s.mapError(err)
	}

	s.mu.Lock()
	s.accessToken = resp.AccessToken
	s.mu.Unlock()

	return resp.Theme, nil
}

func (s *GRPCClient) DeleteAccount(ctx context.Context) error {
	if _, err := s.client.DeleteAccount(ctx, &api.Empty{}); err != nil {
		return s.mapError(err)
	}
	s.SetTokens("", "")
	return nil
}

func (s *GRPCClient) AddTask(ctx context.Context, task, dueDate string) (*api.Task, error) {
	resp, err := s.client.AddTask(ctx, &api.AddTaskRequest{Task: task, DueDate: dueDate})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CompleteTask(ctx context.Context, id int64) (*api.Task, error) {
	resp, err := s.client.CompleteTask(ctx, &api.TaskIDRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ReopenTask(ctx context.Context, id int64) (*api.Task, error) {
	resp, err := s.client.ReopenTask(ctx, &api.TaskIDRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListInbox(ctx context.Context) ([]*api.Task, error) {
	resp, err := s.client.ListInbox(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

// ListToday lists open tasks due on date; an empty date means the server's
// local date.
func (s *GRPCClient) ListToday(ctx context.Context, date string) ([]*api.Task, error) {
	resp, err := s.client.ListToday(ctx, &api.ListTodayRequest{Date: date})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) ListCompleted(ctx context.Context) ([]*api.Task, error) {
	resp, err := s.client.ListCompleted(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument, codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
