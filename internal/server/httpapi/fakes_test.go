package httpapi

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskjournal/internal/common"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	"github.com/dmitrijs2005/taskjournal/internal/server/services"
)

// fakeManagers rejects anonymous callers like the real managers and
// otherwise returns the configured outputs.
type fakeManagers struct {
	mu       sync.Mutex
	userID   int64
	lastDate string
	changes  models.ProfileChanges

	user    *models.User
	session *services.Session
	task    *models.Task
	tasks   []*models.Task
	token   string
	theme   models.Theme
	err     error
}

func (f *fakeManagers) identify(userID int64) error {
	f.mu.Lock()
	f.userID = userID
	f.mu.Unlock()
	if userID == models.Anonymous {
		return common.ErrorUnauthorized
	}
	return f.err
}

func (f *fakeManagers) Register(context.Context, string, string, string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeManagers) Authenticate(context.Context, string, string) (*services.Session, error) {
	return f.session, f.err
}

func (f *fakeManagers) RefreshSession(context.Context, string) (*services.Session, error) {
	return f.session, f.err
}

func (f *fakeManagers) Logout(context.Context, string) error { return f.err }

func (f *fakeManagers) GetProfile(_ context.Context, userID int64) (*models.User, error) {
	if err := f.identify(userID); err != nil {
		return nil, err
	}
	return f.user, nil
}

func (f *fakeManagers) GetTheme(_ context.Context, userID int64) (models.Theme, error) {
	if err := f.identify(userID); err != nil {
		return "", err
	}
	return f.theme, nil
}

func (f *fakeManagers) UpdateProfile(_ context.Context, userID int64, changes models.ProfileChanges) error {
	f.mu.Lock()
	f.changes = changes
	f.mu.Unlock()
	return f.identify(userID)
}

func (f *fakeManagers) ChangePassword(_ context.Context, userID int64, _, _ string) error {
	return f.identify(userID)
}

func (f *fakeManagers) ChangeTheme(_ context.Context, userID int64, _ models.Theme) (string, error) {
	if err := f.identify(userID); err != nil {
		return "", err
	}
	return f.token, nil
}

func (f *fakeManagers) DeleteAccount(_ context.Context, userID int64) error {
	return f.identify(userID)
}

func (f *fakeManagers) AddTask(_ context.Context, userID int64, _, _ string) (*models.Task, error) {
	if err := f.identify(userID); err != nil {
		return nil, err
	}
	return f.task, nil
}

func (f *fakeManagers) CompleteTask(_ context.Context, userID, _ int64) (*models.Task, error) {
	if err := f.identify(userID); err != nil {
		return nil, err
	}
	return f.task, nil
}

func (f *fakeManagers) ReopenTask(_ context.Context, userID, _ int64) (*models.Task, error) {
	if err := f.identify(userID); err != nil {
		return nil, err
	}
	return f.task, nil
}

func (f *fakeManagers) ListInbox(_ context.Context, userID int64) ([]*models.Task, error) {
	if err := f.identify(userID); err != nil {
		return nil, err
	}
	return f.tasks, nil
}

func (f *fakeManagers) ListToday(_ context.Context, userID int64, today string) ([]*models.Task, error) {
	f.mu.Lock()
	f.lastDate = today
	f.mu.Unlock()
	if err := f.identify(userID); err != nil {
		return nil, err
	}
	return f.tasks, nil
}

func (f *fakeManagers) ListCompleted(_ context.Context, userID int64) ([]*models.Task, error) {
	if err := f.identify(userID); err != nil {
		return nil, err
	}
	return f.tasks, nil
}
