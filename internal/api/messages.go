package api

import (
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/server/models"
)

type Empty struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Session is returned by Login and RefreshToken.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       int64  `json:"userId"`
	Theme        string `json:"theme"`
}

// Profile is the public view of a user; it never carries the password hash.
type Profile struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Theme        string `json:"theme"`
	HasAddedTask int    `json:"hasAddedTask"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// UpdateProfileRequest carries only the fields to change; absent (null)
// fields are left untouched.
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Age          *int    `json:"age,omitempty"`
	Theme        *string `json:"theme,omitempty"`
	HasAddedTask *int    `json:"hasAddedTask,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}

type ChangeThemeRequest struct {
	Theme string `json:"theme"`
}

// ChangeThemeResponse carries an access token re-minted with the new theme.
type ChangeThemeResponse struct {
	Theme       string `json:"theme"`
	AccessToken string `json:"accessToken"`
}

type AddTaskRequest struct {
	Task    string `json:"task"`
	DueDate string `json:"dueDate"`
}

type TaskIDRequest struct {
	ID int64 `json:"id"`
}

type ListTodayRequest struct {
	Date string `json:"date"`
}

type Task struct {
	ID        int64  `json:"id"`
	Task      string `json:"task"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

type TaskList struct {
	Tasks []*Task `json:"tasks"`
}

func ProfileFromModel(u *models.User) *Profile {
	p := &Profile{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Age:          u.Age,
		Theme:        string(u.Theme),
		HasAddedTask: u.HasAddedTask,
	}
	if !u.CreatedAt.IsZero() {
		p.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return p
}

func TaskFromModel(t *models.Task) *Task {
	return &Task{
		ID:        t.ID,
		Task:      t.Description,
		DueDate:   t.DueDate,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}

func TaskListFromModels(tasks []*models.Task) *TaskList {
	out := &TaskList{Tasks: make([]*Task, 0, len(tasks))}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, TaskFromModel(t))
	}
	return out
}

// Changes converts the request into a models.ProfileChanges.
func (r *UpdateProfileRequest) Changes() models.ProfileChanges {
	c := models.ProfileChanges{
		Name:         r.Name,
		Email:        r.Email,
		Age:          r.Age,
		HasAddedTask: r.HasAddedTask,
	}
	if r.Theme != nil {
		th := models.Theme(*r.Theme)
		c.Theme = &th
	}
	return c
}
