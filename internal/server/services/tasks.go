package services

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskjournal/internal/common"
	"github.com/dmitrijs2005/taskjournal/internal/dbx"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	"github.com/dmitrijs2005/taskjournal/internal/server/repositories/repomanager"
)

const (
	MaxDescriptionLength = 500
	DateLayout           = "2006-01-02"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TaskService manages tasks: (none) -> Open -> Completed <-> Open. Every
// operation is scoped to the caller's user id.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m, now: time.Now}
}

// ValidateDate checks that s is a YYYY-MM-DD calendar date.
func ValidateDate(field, s string) error {
	if !datePattern.MatchString(s) {
		return common.NewValidationError(field, "must be in YYYY-MM-DD format")
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return common.NewValidationError(field, "is not a valid calendar date")
	}
	// PostgreSQL DATE has no year 0
	if d.Year() < 1 {
		return common.NewValidationError(field, "year must be 1 or later")
	}
	return nil
}

// AddTask creates an open task owned by userID and marks the owner's first
// task on their profile.
func (s *TaskService) AddTask(ctx context.Context, userID int64, description, dueDate string) (*models.Task, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	switch n := utf8.RuneCountInString(description); {
	case n == 0:
		return nil, common.NewValidationError("task", "is required")
	case n > MaxDescriptionLength:
		return nil, common.NewValidationError("task", "must be at most 500 characters")
	}
	dueDate = strings.TrimSpace(dueDate)
	if err := ValidateDate("dueDate", dueDate); err != nil {
		return nil, err
	}

	var created *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)

		owner, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		created, err = s.repomanager.Tasks(tx).Create(ctx, &models.Task{
			Description: description,
			DueDate:     dueDate,
			UserID:      &userID,
			CreatedAt:   s.now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}

		if owner.HasAddedTask == 0 {
			flag := 1
			return users.Update(ctx, userID, models.ProfileChanges{HasAddedTask: &flag})
		}
		return nil
	})
	if err != nil {
		return nil, classify("add task", err)
	}
	return created, nil
}

func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	return s.setCompletion(ctx, "complete task", userID, taskID, true)
}

func (s *TaskService) ReopenTask(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	return s.setCompletion(ctx, "reopen task", userID, taskID, false)
}

// setCompletion is idempotent. Tasks that are missing, detached or owned by
// someone else are all reported as common.ErrorNotFound.
func (s *TaskService) setCompletion(ctx context.Context, op string, userID, taskID int64, completed bool) (*models.Task, error) {
	if taskID <= 0 {
		return nil, common.NewValidationError("id", "must be a positive integer")
	}
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Tasks(s.db)

	if err := repo.SetCompletion(ctx, taskID, userID, completed); err != nil {
		return nil, classify(op, err)
	}

	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, classify(op, err)
	}
	if !task.OwnedBy(userID) {
		return nil, common.ErrorNotFound
	}
	return task, nil
}

// ListInbox returns the user's open tasks, newest first.
func (s *TaskService) ListInbox(ctx context.Context, userID int64) ([]*models.Task, error) {
	return s.list(ctx, "list inbox", userID, models.TaskFilter{Status: models.StatusOpen})
}

// ListToday returns the user's open tasks due on today, newest first.
func (s *TaskService) ListToday(ctx context.Context, userID int64, today string) ([]*models.Task, error) {
	if err := ValidateDate("date", today); err != nil {
		return nil, err
	}
	return s.list(ctx, "list today", userID, models.TaskFilter{Status: models.StatusOpen, DueOn: today})
}

// ListCompleted returns the user's completed tasks, newest first.
func (s *TaskService) ListCompleted(ctx context.Context, userID int64) ([]*models.Task, error) {
	return s.list(ctx, "list completed", userID, models.TaskFilter{Status: models.StatusCompleted})
}

func (s *TaskService) list(ctx context.Context, op string, userID int64, filter models.TaskFilter) ([]*models.Task, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}
	tasks, err := s.repomanager.Tasks(s.db).ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, classify(op, err)
	}
	return tasks, nil
}
