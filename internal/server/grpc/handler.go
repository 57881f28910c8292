package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/api"
	"github.com/dmitrijs2005/taskjournal/internal/server/auth"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	"github.com/dmitrijs2005/taskjournal/internal/server/services"
)

func sessionToAPI(s *services.Session) *api.Session {
	return &api.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		UserID:       s.UserID,
		Theme:        string(s.Theme),
	}
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *api.RegisterUserRequest) (*api.Profile, error) {

	s.logger.Info(ctx, "Registration request", "request_id", requestID(ctx))

	user, err := s.accounts.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "request_id", requestID(ctx), "user_id", user.ID)
	return api.ProfileFromModel(user), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.Session, error) {

	session, err := s.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "login", err)
	}

	return sessionToAPI(session), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.Session, error) {

	session, err := s.accounts.RefreshSession(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "refresh token", err)
	}

	return sessionToAPI(session), nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.Empty, error) {

	if err := s.accounts.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, "logout", err)
	}

	return &api.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) GetProfile(ctx context.Context, _ *api.Empty) (*api.Profile, error) {

	user, err := s.accounts.GetProfile(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, "get profile", err)
	}

	return api.ProfileFromModel(user), nil
}

// UpdateProfile applies the change set and answers with the stored profile.
func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Profile, error) {

	userID := auth.UserIDFromContext(ctx)

	if err := s.accounts.UpdateProfile(ctx, userID, req.Changes()); err != nil {
		return nil, s.toStatus(ctx, "update profile", err)
	}

	user, err := s.accounts.GetProfile(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "update profile", err)
	}

	return api.ProfileFromModel(user), nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.Empty, error) {

	if err := s.accounts.ChangePassword(ctx, auth.UserIDFromContext(ctx), req.CurrentPassword, req.NewPassword); err != nil {
		return nil, s.toStatus(ctx, "change password", err)
	}

	return &api.Empty{}, nil
}

func (s *GRPCServer) GetTheme(ctx context.Context, _ *api.Empty) (*api.ThemeResponse, error) {

	theme, err := s.accounts.GetTheme(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, "get theme", err)
	}

	return &api.ThemeResponse{Theme: string(theme)}, nil
}

func (s *GRPCServer) ChangeTheme(ctx context.Context, req *api.ChangeThemeRequest) (*api.ChangeThemeResponse, error) {

	token, err := s.accounts.ChangeTheme(ctx, auth.UserIDFromContext(ctx), models.Theme(req.Theme))
	if err != nil {
		return nil, s.toStatus(ctx, "change theme", err)
	}

	return &api.ChangeThemeResponse{Theme: req.Theme, AccessToken: token}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, _ *api.Empty) (*api.Empty, error) {

	userID := auth.UserIDFromContext(ctx)

	if err := s.accounts.DeleteAccount(ctx, userID); err != nil {
		return nil, s.toStatus(ctx, "delete account", err)
	}

	s.logger.Info(ctx, "Account deleted", "request_id", requestID(ctx), "user_id", userID)
	return &api.Empty{}, nil
}

func (s *GRPCServer) AddTask(ctx context.Context, req *api.AddTaskRequest) (*api.Task, error) {

	task, err := s.tasks.AddTask(ctx, auth.UserIDFromContext(ctx), req.Task, req.DueDate)
	if err != nil {
		return nil, s.toStatus(ctx, "add task", err)
	}

	return api.TaskFromModel(task), nil
}

func (s *GRPCServer) CompleteTask(ctx context.Context, req *api.TaskIDRequest) (*api.Task, error) {

	task, err := s.tasks.CompleteTask(ctx, auth.UserIDFromContext(ctx), req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, "complete task", err)
	}

	return api.TaskFromModel(task), nil
}

func (s *GRPCServer) ReopenTask(ctx context.Context, req *api.TaskIDRequest) (*api.Task, error) {

	task, err := s.tasks.ReopenTask(ctx, auth.UserIDFromContext(ctx), req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, "reopen task", err)
	}

	return api.TaskFromModel(task), nil
}

func (s *GRPCServer) ListInbox(ctx context.Context, _ *api.Empty) (*api.TaskList, error) {

	tasks, err := s.tasks.ListInbox(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, "list inbox", err)
	}

	return api.TaskListFromModels(tasks), nil
}

func (s *GRPCServer) ListToday(ctx context.Context, req *api.ListTodayRequest) (*api.TaskList, error) {

	date := req.Date
	if date == "" {
		date = time.Now().Format(services.DateLayout)
	}

	tasks, err := s.tasks.ListToday(ctx, auth.UserIDFromContext(ctx), date)
	if err != nil {
		return nil, s.toStatus(ctx, "list today", err)
	}

	return api.TaskListFromModels(tasks), nil
}

func (s *GRPCServer) ListCompleted(ctx context.Context, _ *api.Empty) (*api.TaskList, error) {

	tasks, err := s.tasks.ListCompleted(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, "list completed", err)
	}

	return api.TaskListFromModels(tasks), nil
}
