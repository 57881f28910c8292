package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskjournal/internal/server/models"
)

// Repository is the task store. Inputs are assumed to be validated by the
// caller.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListForUser(ctx context.Context, userID int64, filter models.TaskFilter) ([]*models.Task, error)
	SetCompletion(ctx context.Context, id, userID int64, completed bool) error
	DetachOwner(ctx context.Context, userID int64) (int64, error)
}
