package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/api"
	"github.com/dmitrijs2005/taskjournal/internal/client/config"
	"github.com/dmitrijs2005/taskjournal/internal/client/repositories/session"
)

type fakeClient struct {
	access, refresh string
	onRefresh       func(*api.Session)

	calls         []string
	lastEmail     string
	lastPassword  string
	lastName      string
	lastTask      string
	lastDue       string
	lastDate      string
	lastID        int64
	lastTheme     string
	lastUpdate    *api.UpdateProfileRequest
	lastPasswords [2]string

	profile *api.Profile
	session *api.Session
	tasks   []*api.Task
	err     error
}

func (f *fakeClient) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeClient) Close() error                            { f.record("close"); return nil }
func (f *fakeClient) Ping(context.Context) error              { return f.err }
func (f *fakeClient) SetTokens(access, refresh string)        { f.access, f.refresh = access, refresh }
func (f *fakeClient) Tokens() (string, string)                { return f.access, f.refresh }
func (f *fakeClient) OnTokensRefreshed(fn func(*api.Session)) { f.onRefresh = fn }

func (f *fakeClient) Register(_ context.Context, email, password, name string) (*api.Profile, error) {
	f.record("register")
	f.lastEmail, f.lastPassword, f.lastName = email, password, name
	if f.err != nil {
		return nil, f.err
	}
	return &api.Profile{ID: 1, Email: email, Name: name}, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*api.Session, error) {
	f.record("login")
	f.lastEmail, f.lastPassword = email, password
	if f.err != nil {
		return nil, f.err
	}
	f.access, f.refresh = f.session.AccessToken, f.session.RefreshToken
	return f.session, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.record("logout")
	f.access, f.refresh = "", ""
	return f.err
}

func (f *fakeClient) GetProfile(context.Context) (*api.Profile, error) {
	f.record("profile")
	return f.profile, f.err
}

func (f *fakeClient) UpdateProfile(_ context.Context, req *api.UpdateProfileRequest) (*api.Profile, error) {
	f.record("update")
	f.lastUpdate = req
	if f.err != nil {
		return nil, f.err
	}
	p := *f.profile
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Age != nil {
		p.Age = *req.Age
	}
	return &p, nil
}

func (f *fakeClient) ChangePassword(_ context.Context, current, next string) error {
	f.record("passwd")
	f.lastPasswords = [2]string{current, next}
	return f.err
}

func (f *fakeClient) GetTheme(context.Context) (string, error) {
	f.record("theme")
	return "default", f.err
}

func (f *fakeClient) ChangeTheme(_ context.Context, theme string) (string, error) {
	f.record("change theme")
	f.lastTheme = theme
	if f.err != nil {
		return "", f.err
	}
	f.access = "A-" + theme
	return theme, nil
}

func (f *fakeClient) DeleteAccount(context.Context) error {
	f.record("delete")
	return f.err
}

func (f *fakeClient) AddTask(_ context.Context, task, due string) (*api.Task, error) {
	f.record("add")
	f.lastTask, f.lastDue = task, due
	if f.err != nil {
		return nil, f.err
	}
	return &api.Task{ID: 5, Task: task, DueDate: due}, nil
}

func (f *fakeClient) CompleteTask(_ context.Context, id int64) (*api.Task, error) {
	f.record("complete")
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &api.Task{ID: id, Completed: true}, nil
}

func (f *fakeClient) ReopenTask(_ context.Context, id int64) (*api.Task, error) {
	f.record("reopen")
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &api.Task{ID: id}, nil
}

func (f *fakeClient) ListInbox(context.Context) ([]*api.Task, error) {
	f.record("inbox")
	return f.tasks, f.err
}

func (f *fakeClient) ListToday(_ context.Context, date string) ([]*api.Task, error) {
	f.record("today")
	f.lastDate = date
	return f.tasks, f.err
}

func (f *fakeClient) ListCompleted(context.Context) ([]*api.Task, error) {
	f.record("completed")
	return f.tasks, f.err
}

type memSession struct {
	state session.State
	saves int
}

func (m *memSession) Load(context.Context) (*session.State, error) {
	s := m.state
	return &s, nil
}

func (m *memSession) Save(_ context.Context, s *session.State) error {
	m.saves++
	m.state = *s
	return nil
}

func (m *memSession) Clear(context.Context) error {
	m.state = session.State{}
	return nil
}

// newTestApp builds an App reading input from the given lines.
func newTestApp(t *testing.T, f *fakeClient, store *memSession, input ...string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n"))

	c := &config.Config{}
	c.LoadDefaults()

	a := newApp(c, f, store, r, &out)
	a.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local) }
	return a, &out
}

// stubPasswords makes getPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })

	i := 0
	getPassword = func(string, io.Writer) ([]byte, error) {
		pw := []byte(answers[i])
		i++
		return pw, nil
	}
}
