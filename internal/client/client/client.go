package client

import (
	"context"

	"github.com/dmitrijs2005/taskjournal/internal/api"
)

// Client is the CLI's view of the TaskJournal backend.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, email, password, name string) (*api.Profile, error)
	Login(ctx context.Context, email, password string) (*api.Session, error)
	Logout(ctx context.Context) error
	SetTokens(accessToken, refreshToken string)
	Tokens() (accessToken, refreshToken string)
	OnTokensRefreshed(fn func(*api.Session))

	GetProfile(ctx context.Context) (*api.Profile, error)
	UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Profile, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	GetTheme(ctx context.Context) (string, error)
	ChangeTheme(ctx context.Context, theme string) (string, error)
	DeleteAccount(ctx context.Context) error

	AddTask(ctx context.Context, task, dueDate string) (*api.Task, error)
	CompleteTask(ctx context.Context, id int64) (*api.Task, error)
	ReopenTask(ctx context.Context, id int64) (*api.Task, error)
	ListInbox(ctx context.Context) ([]*api.Task, error)
	ListToday(ctx context.Context, date string) ([]*api.Task, error)
	ListCompleted(ctx context.Context) ([]*api.Task, error)
}
