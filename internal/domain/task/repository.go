package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	// Update writes every mutable column of t.
	Update(ctx context.Context, t Task) (Task, error)
	SoftDelete(ctx context.Context, id string) error

	AddComment(ctx context.Context, c TaskComment) (TaskComment, error)
	ListComments(ctx context.Context, taskID string) ([]TaskComment, error)

	// Stats counts active tasks; userID limits the count to tasks assigned to
	// or created by that user.
	Stats(ctx context.Context, userID *string) (TaskStats, error)
}
