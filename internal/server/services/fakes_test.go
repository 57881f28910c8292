package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskjournal/internal/common"
	"github.com/dmitrijs2005/taskjournal/internal/dbx"
	"github.com/dmitrijs2005/taskjournal/internal/server/auth"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	refreshtokensrepo "github.com/dmitrijs2005/taskjournal/internal/server/repositories/refreshtokens"
	tasksrepo "github.com/dmitrijs2005/taskjournal/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskjournal/internal/server/repositories/users"
)

var testSecret = []byte("k")

// --- sqlmock helpers: the fakes ignore the DBTX, sqlmock only sees the
// transaction boundaries ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectCommit(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func expectRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

// --- in-memory store ---

type memStore struct {
	mu         sync.Mutex
	users      map[int64]*models.User
	tasks      map[int64]*models.Task
	tokens     map[string]*models.RefreshToken
	nextUserID int64
	nextTaskID int64

	// err, when set, is returned by every store call
	err error
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[int64]*models.User{},
		tasks:  map[int64]*models.Task{},
		tokens: map[string]*models.RefreshToken{},
	}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *memStore) Users(dbx.DBTX) usersrepo.Repository                 { return memUsers{m} }
func (m *memStore) Tasks(dbx.DBTX) tasksrepo.Repository                 { return memTasks{m} }
func (m *memStore) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return memTokens{m} }

func (m *memStore) taskCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *memStore) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *memStore) task(id int64) models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.tasks[id]
}

func (m *memStore) user(id int64) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, false
	}
	return *u, true
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	for _, existing := range r.m.users {
		if existing.Email == u.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}
	r.m.nextUserID++
	c := *u
	c.ID = r.m.nextUserID
	c.CreatedAt = time.Now()
	r.m.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	for _, u := range r.m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) Update(_ context.Context, id int64, c models.ProfileChanges) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return r.m.err
	}
	u, ok := r.m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	if c.Email != nil {
		for _, other := range r.m.users {
			if other.ID != id && other.Email == *c.Email {
				return common.ErrorDuplicateEmail
			}
		}
		u.Email = *c.Email
	}
	if c.Name != nil {
		u.Name = *c.Name
	}
	if c.Age != nil {
		u.Age = *c.Age
	}
	if c.Theme != nil {
		u.Theme = *c.Theme
	}
	if c.HasAddedTask != nil {
		u.HasAddedTask = *c.HasAddedTask
	}
	return nil
}

func (r memUsers) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return r.m.err
	}
	u, ok := r.m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return r.m.err
	}
	if _, ok := r.m.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.users, id)
	return nil
}

type memTasks struct{ m *memStore }

func (r memTasks) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	r.m.nextTaskID++
	c := *t
	c.ID = r.m.nextTaskID
	r.m.tasks[c.ID] = &c
	out := c
	return &out, nil
}

func (r memTasks) GetByID(_ context.Context, id int64) (*models.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	t, ok := r.m.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *t
	return &out, nil
}

func (r memTasks) ListForUser(_ context.Context, userID int64, f models.TaskFilter) ([]*models.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := []*models.Task{}
	for _, t := range r.m.tasks {
		if !t.OwnedBy(userID) {
			continue
		}
		if f.Status == models.StatusOpen && t.Completed || f.Status == models.StatusCompleted && !t.Completed {
			continue
		}
		if f.DueOn != "" && t.DueDate != f.DueOn {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memTasks) SetCompletion(_ context.Context, id, userID int64, completed bool) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return r.m.err
	}
	t, ok := r.m.tasks[id]
	if !ok || !t.OwnedBy(userID) {
		return common.ErrorNotFound
	}
	t.Completed = completed
	return nil
}

func (r memTasks) DetachOwner(_ context.Context, userID int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return 0, r.m.err
	}
	var n int64
	for _, t := range r.m.tasks {
		if t.OwnedBy(userID) {
			t.UserID = nil
			n++
		}
	}
	return n, nil
}

type memTokens struct{ m *memStore }

func (r memTokens) Create(_ context.Context, userID int64, token string, validity time.Duration) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return r.m.err
	}
	r.m.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r memTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	t, ok := r.m.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *t
	return &out, nil
}

func (r memTokens) Delete(_ context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return r.m.err
	}
	delete(r.m.tokens, token)
	return nil
}

func (r memTokens) DeleteForUser(_ context.Context, userID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return r.m.err
	}
	for k, t := range r.m.tokens {
		if t.UserID == userID {
			delete(r.m.tokens, k)
		}
	}
	return nil
}

// plainHasher keeps tests fast; bcrypt is covered in package auth.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(p, h string) bool      { return h == "hashed:"+p }

func newServices(t *testing.T) (*AccountService, *TaskService, *memStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	accounts := NewAccountService(db, store, plainHasher{}, auth.NewIssuer(testSecret, time.Hour), time.Hour)
	tasks := NewTaskService(db, store)
	return accounts, tasks, store, mock
}

// register creates a user through the service and returns its id.
func register(t *testing.T, s *AccountService, mock sqlmock.Sqlmock, email string) int64 {
	t.Helper()
	expectCommit(mock)
	u, err := s.Register(context.Background(), email, "pw-"+email, "Name "+email)
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u.ID
}

func addTask(t *testing.T, s *TaskService, mock sqlmock.Sqlmock, userID int64, desc, due string) *models.Task {
	t.Helper()
	expectCommit(mock)
	task, err := s.AddTask(context.Background(), userID, desc, due)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	return task
}
