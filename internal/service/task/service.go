package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
)

type taskServiceImpl struct {
	taskRepo     task.TaskRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewTaskService(taskRepo task.TaskRepository, employeeRepo employee.EmployeeRepository) task.TaskService {
	return &taskServiceImpl{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *taskServiceImpl) ensureAssignee(ctx context.Context, id string) error {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return task.ErrAssigneeNotFound
		}
		return err
	}
	if !emp.IsActive {
		return task.ErrAssigneeNotFound
	}
	return nil
}

// CreateTask implements task.TaskService.
func (s *taskServiceImpl) CreateTask(ctx context.Context, caller user.Identity, req task.CreateTaskRequest) (task.Task, error) {
	if err := caller.Validate(); err != nil {
		return task.Task{}, err
	}
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}
	if err := s.ensureAssignee(ctx, req.AssignedTo); err != nil {
		return task.Task{}, err
	}

	dueDate, _ := time.Parse("2006-01-02", req.DueDate)

	created, err := s.taskRepo.Create(ctx, task.Task{
		Title:          req.Title,
		Description:    req.Description,
		AssignedTo:     req.AssignedTo,
		AssignedBy:     caller.UserID,
		Priority:       task.Priority(req.Priority),
		Status:         task.StatusPending,
		Category:       task.Category(req.Category),
		DueDate:        dueDate,
		EstimatedHours: req.EstimatedHours,
		Tags:           req.Tags,
	})
	if err != nil {
		return task.Task{}, err
	}

	slog.Info("Task created", "task_id", created.ID, "assigned_to", created.AssignedTo, "by", caller.UserID)

	return s.taskRepo.GetByID(ctx, created.ID)
}

// GetTask implements task.TaskService.
func (s *taskServiceImpl) GetTask(ctx context.Context, caller user.Identity, id string) (task.Task, error) {
	if err := caller.Validate(); err != nil {
		return task.Task{}, err
	}

	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	if !t.CanView(caller.UserID, caller.Can(user.PermissionTaskViewAll)) {
		return task.Task{}, task.ErrUnauthorized
	}

	comments, err := s.taskRepo.ListComments(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	t.Comments = comments

	return t, nil
}

// ListTasks implements task.TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context, caller user.Identity, filter task.TaskFilter) (task.ListTaskResponse, error) {
	if err := caller.Validate(); err != nil {
		return task.ListTaskResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return task.ListTaskResponse{}, err
	}

	filter.AssignedTo, filter.AssignedBy = nil, nil
	switch filter.View {
	case task.ViewAssigned:
		filter.AssignedTo = &caller.UserID
	case task.ViewCreated:
		filter.AssignedBy = &caller.UserID
	default:
		// Everything visible to the caller
		if !caller.Can(user.PermissionTaskViewAll) {
			filter.AssignedTo = &caller.UserID
			filter.AssignedBy = &caller.UserID
		}
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return task.ListTaskResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return task.ListTaskResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Tasks:      tasks,
	}, nil
}

// UpdateTask implements task.TaskService.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, caller user.Identity, req task.UpdateTaskRequest) (task.Task, error) {
	if err := caller.Validate(); err != nil {
		return task.Task{}, err
	}
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}

	t, err := s.taskRepo.GetByID(ctx, req.ID)
	if err != nil {
		return task.Task{}, err
	}

	isAdmin := caller.Can(user.PermissionTaskManage)
	if !t.CanView(caller.UserID, isAdmin) {
		return task.Task{}, task.ErrUnauthorized
	}
	if !t.CanManage(caller.UserID, isAdmin) && !req.TouchesOnlyAssigneeFields() {
		return task.Task{}, task.ErrAssigneeOnlyFields
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.AssignedTo != nil && *req.AssignedTo != t.AssignedTo {
		if err := s.ensureAssignee(ctx, *req.AssignedTo); err != nil {
			return task.Task{}, err
		}
		t.AssignedTo = *req.AssignedTo
	}
	if req.Priority != nil {
		t.Priority = task.Priority(*req.Priority)
	}
	if req.Category != nil {
		t.Category = task.Category(*req.Category)
	}
	if req.DueDate != nil {
		t.DueDate, _ = time.Parse("2006-01-02", *req.DueDate)
	}
	if req.EstimatedHours != nil {
		t.EstimatedHours = *req.EstimatedHours
	}
	if req.ActualHours != nil {
		t.ActualHours = *req.ActualHours
	}
	if req.Progress != nil {
		t.Progress = *req.Progress
	}
	if req.Tags != nil {
		t.Tags = *req.Tags
	}

	previous := t.Status
	if req.Status != nil {
		if err := t.TransitionTo(task.Status(*req.Status), s.now()); err != nil {
			return task.Task{}, err
		}
	}

	if _, err := s.taskRepo.Update(ctx, t); err != nil {
		return task.Task{}, err
	}

	if t.Status != previous {
		slog.Info("Task status changed", "task_id", t.ID, "from", previous, "to", t.Status, "by", caller.UserID)
	}

	return s.taskRepo.GetByID(ctx, t.ID)
}

// DeleteTask implements task.TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, caller user.Identity, id string) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !t.CanManage(caller.UserID, caller.Can(user.PermissionTaskManage)) {
		return task.ErrUnauthorized
	}

	if err := s.taskRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	slog.Info("Task deleted", "task_id", id, "by", caller.UserID)
	return nil
}

// AddComment implements task.TaskService.
func (s *taskServiceImpl) AddComment(ctx context.Context, caller user.Identity, req task.AddCommentRequest) (task.TaskComment, error) {
	if err := caller.Validate(); err != nil {
		return task.TaskComment{}, err
	}
	if err := req.Validate(); err != nil {
		return task.TaskComment{}, err
	}

	t, err := s.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		return task.TaskComment{}, err
	}
	if !t.CanView(caller.UserID, caller.Can(user.PermissionTaskViewAll)) {
		return task.TaskComment{}, task.ErrUnauthorized
	}

	return s.taskRepo.AddComment(ctx, task.TaskComment{
		TaskID:  req.TaskID,
		UserID:  caller.UserID,
		Comment: req.Comment,
	})
}

// GetStats implements task.TaskService.
func (s *taskServiceImpl) GetStats(ctx context.Context, caller user.Identity) (task.TaskStats, error) {
	if err := caller.Validate(); err != nil {
		return task.TaskStats{}, err
	}

	var scope *string
	if !caller.Can(user.PermissionTaskViewAll) {
		scope = &caller.UserID
	}
	return s.taskRepo.Stats(ctx, scope)
}
