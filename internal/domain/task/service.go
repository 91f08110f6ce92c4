package task

import (
	"context"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
)

type TaskService interface {
	CreateTask(ctx context.Context, caller user.Identity, req CreateTaskRequest) (Task, error)
	// GetTask returns the task with its comments
	GetTask(ctx context.Context, caller user.Identity, id string) (Task, error)
	ListTasks(ctx context.Context, caller user.Identity, filter TaskFilter) (ListTaskResponse, error)
	UpdateTask(ctx context.Context, caller user.Identity, req UpdateTaskRequest) (Task, error)
	DeleteTask(ctx context.Context, caller user.Identity, id string) error
	AddComment(ctx context.Context, caller user.Identity, req AddCommentRequest) (TaskComment, error)
	GetStats(ctx context.Context, caller user.Identity) (TaskStats, error)
}
