package grpc

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	"github.com/dmitrijs2005/taskjournal/internal/server/services"
)

// fakeManagers records the user id each call was made with and returns the
// configured outputs.
type fakeManagers struct {
	mu       sync.Mutex
	calls    []string
	userIDs  []int64
	lastDate string

	user    *models.User
	session *services.Session
	task    *models.Task
	tasks   []*models.Task
	token   string
	theme   models.Theme
	err     error
}

func (f *fakeManagers) record(call string, userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.userIDs = append(f.userIDs, userID)
}

func (f *fakeManagers) lastUserID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.userIDs) == 0 {
		return -1
	}
	return f.userIDs[len(f.userIDs)-1]
}

func (f *fakeManagers) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	f.record("Register", 0)
	return f.user, f.err
}

func (f *fakeManagers) Authenticate(ctx context.Context, email, password string) (*services.Session, error) {
	f.record("Authenticate", 0)
	return f.session, f.err
}

func (f *fakeManagers) RefreshSession(ctx context.Context, refreshToken string) (*services.Session, error) {
	f.record("RefreshSession", 0)
	return f.session, f.err
}

func (f *fakeManagers) Logout(ctx context.Context, refreshToken string) error {
	f.record("Logout", 0)
	return f.err
}

func (f *fakeManagers) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	f.record("GetProfile", userID)
	return f.user, f.err
}

func (f *fakeManagers) GetTheme(ctx context.Context, userID int64) (models.Theme, error) {
	f.record("GetTheme", userID)
	return f.theme, f.err
}

func (f *fakeManagers) UpdateProfile(ctx context.Context, userID int64, changes models.ProfileChanges) error {
	f.record("UpdateProfile", userID)
	return f.err
}

func (f *fakeManagers) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	f.record("ChangePassword", userID)
	return f.err
}

func (f *fakeManagers) ChangeTheme(ctx context.Context, userID int64, theme models.Theme) (string, error) {
	f.record("ChangeTheme", userID)
	return f.token, f.err
}

func (f *fakeManagers) DeleteAccount(ctx context.Context, userID int64) error {
	f.record("DeleteAccount", userID)
	return f.err
}

func (f *fakeManagers) AddTask(ctx context.Context, userID int64, description, dueDate string) (*models.Task, error) {
	f.record("AddTask", userID)
	return f.task, f.err
}

func (f *fakeManagers) CompleteTask(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	f.record("CompleteTask", userID)
	return f.task, f.err
}

func (f *fakeManagers) ReopenTask(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	f.record("ReopenTask", userID)
	return f.task, f.err
}

func (f *fakeManagers) ListInbox(ctx context.Context, userID int64) ([]*models.Task, error) {
	f.record("ListInbox", userID)
	return f.tasks, f.err
}

func (f *fakeManagers) ListToday(ctx context.Context, userID int64, today string) ([]*models.Task, error) {
	f.record("ListToday", userID)
	f.mu.Lock()
	f.lastDate = today
	f.mu.Unlock()
	return f.tasks, f.err
}

func (f *fakeManagers) ListCompleted(ctx context.Context, userID int64) ([]*models.Task, error) {
	f.record("ListCompleted", userID)
	return f.tasks, f.err
}
