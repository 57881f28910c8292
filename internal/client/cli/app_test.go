package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskjournal/internal/api"
	"github.com/dmitrijs2005/taskjournal/internal/client/client"
	"github.com/dmitrijs2005/taskjournal/internal/client/repositories/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreSession(t *testing.T) {
	f := &fakeClient{}
	store := &memSession{state: session.State{Email: "a@b.c", AccessToken: "A", RefreshToken: "R", Theme: "dark"}}
	a, _ := newTestApp(t, f, store)

	require.NoError(t, a.restoreSession(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(a@b.c)", a.getStatus())
	assert.Equal(t, "A", f.access)
	assert.Equal(t, "R", f.refresh)
}

func TestRestoreSession_NothingStored(t *testing.T) {
	f := &fakeClient{}
	a, _ := newTestApp(t, f, &memSession{})

	require.NoError(t, a.restoreSession(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.getStatus())
}

func TestRegister(t *testing.T) {
	stubPasswords(t, "pw")
	f := &fakeClient{}
	a, out := newTestApp(t, f, &memSession{}, "a@b.c", "Ann")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "a@b.c", f.lastEmail)
	assert.Equal(t, "Ann", f.lastName)
	assert.Equal(t, "pw", f.lastPassword)
	assert.Contains(t, out.String(), "Registered a@b.c")
	assert.False(t, a.isLoggedIn())
}

func TestLogin_SavesSession(t *testing.T) {
	stubPasswords(t, "pw")
	f := &fakeClient{session: &api.Session{AccessToken: "A", RefreshToken: "R", UserID: 1, Theme: "pastel"}}
	store := &memSession{}
	a, _ := newTestApp(t, f, store, "a@b.c")

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, session.State{Email: "a@b.c", AccessToken: "A", RefreshToken: "R", Theme: "pastel"}, store.state)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	stubPasswords(t, "bad")
	f := &fakeClient{err: client.ErrUnauthorized}
	store := &memSession{}
	a, _ := newTestApp(t, f, store, "a@b.c")

	err := a.Login(context.Background())
	require.EqualError(t, err, "invalid credentials")
	assert.False(t, a.isLoggedIn())
	assert.Zero(t, store.saves)
}

func TestLogout_ClearsLocalSessionEvenIfServerFails(t *testing.T) {
	f := &fakeClient{err: client.ErrUnavailable}
	store := &memSession{state: session.State{Email: "a@b.c", RefreshToken: "R"}}
	a, _ := newTestApp(t, f, store)
	a.email = "a@b.c"

	err := a.Logout(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, session.State{}, store.state)
}

func TestOnTokensRefreshed_PersistsRotatedTokens(t *testing.T) {
	f := &fakeClient{}
	store := &memSession{}
	a, _ := newTestApp(t, f, store)
	a.email = "a@b.c"

	require.NotNil(t, f.onRefresh)
	f.access, f.refresh = "A2", "R2"
	f.onRefresh(&api.Session{AccessToken: "A2", RefreshToken: "R2", Theme: "dark"})

	assert.Equal(t, session.State{Email: "a@b.c", AccessToken: "A2", RefreshToken: "R2", Theme: "dark"}, store.state)
}

func TestAdd_DefaultsDueDateToToday(t *testing.T) {
	f := &fakeClient{}
	a, out := newTestApp(t, f, &memSession{}, "Buy milk", "")

	require.NoError(t, a.Add(context.Background()))
	assert.Equal(t, "Buy milk", f.lastTask)
	assert.Equal(t, "2025-03-01", f.lastDue)
	assert.Contains(t, out.String(), "Added task 5 due 2025-03-01")
}

func TestAdd_ExplicitDueDate(t *testing.T) {
	f := &fakeClient{}
	a, _ := newTestApp(t, f, &memSession{}, "Pay rent", "2025-04-01")

	require.NoError(t, a.Add(context.Background()))
	assert.Equal(t, "2025-04-01", f.lastDue)
}

func TestToday(t *testing.T) {
	f := &fakeClient{tasks: []*api.Task{{ID: 1, Task: "Buy milk", DueDate: "2025-03-01"}}}
	a, out := newTestApp(t, f, &memSession{})

	require.NoError(t, a.Today(context.Background(), nil))
	assert.Equal(t, "2025-03-01", f.lastDate)
	assert.Contains(t, out.String(), "Today 2025-03-01 (1)")
	assert.Contains(t, out.String(), "Buy milk")

	require.NoError(t, a.Today(context.Background(), []string{"2025-03-02"}))
	assert.Equal(t, "2025-03-02", f.lastDate)
}

func TestLists(t *testing.T) {
	f := &fakeClient{tasks: []*api.Task{{ID: 2, Task: "Done thing", Completed: true}}}
	a, out := newTestApp(t, f, &memSession{})

	require.NoError(t, a.Inbox(context.Background()))
	require.NoError(t, a.Completed(context.Background()))
	assert.Equal(t, []string{"inbox", "completed"}, f.calls)
	assert.Contains(t, out.String(), "Completed (1)")

	f.tasks = nil
	out.Reset()
	require.NoError(t, a.Inbox(context.Background()))
	assert.Equal(t, "Inbox (0)\n", out.String())
}

func TestDoneAndUndo(t *testing.T) {
	f := &fakeClient{}
	a, _ := newTestApp(t, f, &memSession{})

	require.NoError(t, a.Done(context.Background(), []string{"7"}))
	assert.Equal(t, int64(7), f.lastID)
	require.NoError(t, a.Undo(context.Background(), []string{"7"}))
	assert.Equal(t, []string{"complete", "reopen"}, f.calls)

	require.ErrorContains(t, a.Done(context.Background(), nil), "missing task id")
	require.ErrorContains(t, a.Done(context.Background(), []string{"abc"}), "invalid task id")
	require.ErrorContains(t, a.Undo(context.Background(), []string{"-1"}), "invalid task id")
	assert.Len(t, f.calls, 2)

	f.err = client.ErrNotFound
	require.ErrorIs(t, a.Done(context.Background(), []string{"99"}), client.ErrNotFound)
}

func TestEdit_SendsOnlyChangedFields(t *testing.T) {
	f := &fakeClient{profile: &api.Profile{ID: 1, Email: "a@b.c", Name: "Ann", Age: 18}}
	store := &memSession{}
	a, out := newTestApp(t, f, store, "", "new@b.c", "30")
	a.email = "a@b.c"

	require.NoError(t, a.Edit(context.Background()))
	require.NotNil(t, f.lastUpdate)
	assert.Nil(t, f.lastUpdate.Name)
	require.NotNil(t, f.lastUpdate.Email)
	assert.Equal(t, "new@b.c", *f.lastUpdate.Email)
	require.NotNil(t, f.lastUpdate.Age)
	assert.Equal(t, 30, *f.lastUpdate.Age)

	assert.Equal(t, "new@b.c", a.email)
	assert.Equal(t, "new@b.c", store.state.Email)
	assert.Contains(t, out.String(), "Age:   30")
}

func TestEdit_NothingChanged(t *testing.T) {
	f := &fakeClient{profile: &api.Profile{ID: 1, Email: "a@b.c", Name: "Ann", Age: 18}}
	a, _ := newTestApp(t, f, &memSession{}, "", "", "")

	require.ErrorIs(t, a.Edit(context.Background()), errNoChanges)
	assert.NotContains(t, f.calls, "update")
}

func TestEdit_InvalidAge(t *testing.T) {
	f := &fakeClient{profile: &api.Profile{ID: 1, Email: "a@b.c", Name: "Ann", Age: 18}}
	a, _ := newTestApp(t, f, &memSession{}, "", "", "old")

	require.ErrorContains(t, a.Edit(context.Background()), "invalid age")
}

func TestTheme(t *testing.T) {
	f := &fakeClient{refresh: "R"}
	store := &memSession{}
	a, out := newTestApp(t, f, store)
	a.email = "a@b.c"

	require.NoError(t, a.Theme(context.Background(), nil))
	assert.Contains(t, out.String(), "Theme: default")

	require.NoError(t, a.Theme(context.Background(), []string{"Dark"}))
	assert.Equal(t, "dark", f.lastTheme)
	assert.Equal(t, session.State{Email: "a@b.c", AccessToken: "A-dark", RefreshToken: "R", Theme: "dark"}, store.state)
}

func TestPasswd(t *testing.T) {
	stubPasswords(t, "old", "new")
	f := &fakeClient{}
	a, out := newTestApp(t, f, &memSession{})

	require.NoError(t, a.Passwd(context.Background()))
	assert.Equal(t, [2]string{"old", "new"}, f.lastPasswords)
	assert.Contains(t, out.String(), "Password changed")
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	f := &fakeClient{}
	store := &memSession{state: session.State{Email: "a@b.c", RefreshToken: "R"}}
	a, out := newTestApp(t, f, store, "no", "yes")
	a.email = "a@b.c"

	require.NoError(t, a.Delete(context.Background()))
	assert.Contains(t, out.String(), "Cancelled")
	assert.NotContains(t, f.calls, "delete")
	assert.True(t, a.isLoggedIn())

	require.NoError(t, a.Delete(context.Background()))
	assert.Contains(t, f.calls, "delete")
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, session.State{}, store.state)
}

func TestDelete_ServerErrorKeepsSession(t *testing.T) {
	f := &fakeClient{err: errors.New("boom")}
	store := &memSession{state: session.State{Email: "a@b.c", RefreshToken: "R"}}
	a, _ := newTestApp(t, f, store, "yes")
	a.email = "a@b.c"

	require.Error(t, a.Delete(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "R", store.state.RefreshToken)
}
