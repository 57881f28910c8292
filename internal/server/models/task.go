package models

// Task is a single journal item. UserID is nil once the owner account has
// been deleted; such tasks are kept but belong to no view.
type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"task"`
	DueDate     string `json:"dueDate"`
	UserID      *int64 `json:"userId"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
}

// OwnedBy reports whether the task belongs to userID.
func (t *Task) OwnedBy(userID int64) bool {
	return t.UserID != nil && *t.UserID == userID
}

// TaskStatus narrows a task listing by completion state.
type TaskStatus string

const (
	StatusAll       TaskStatus = "all"
	StatusOpen      TaskStatus = "open"
	StatusCompleted TaskStatus = "completed"
)

// TaskFilter selects an owner-scoped task listing. DueOn, when set, is a
// YYYY-MM-DD date.
type TaskFilter struct {
	Status TaskStatus
	DueOn  string
}
