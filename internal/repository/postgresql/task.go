package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskSelect = `
	SELECT t.id, t.title, t.description, t.assigned_to, t.assigned_by, t.priority, t.status, t.category,
		   t.due_date, t.start_date, t.completed_at, t.estimated_hours, t.actual_hours, t.progress, t.tags,
		   t.is_active, t.created_at, t.updated_at,
		   ea.full_name, eb.full_name
	FROM tasks t
	LEFT JOIN employees ea ON ea.id = t.assigned_to
	LEFT JOIN employees eb ON eb.id = t.assigned_by`

func scanTask(row pgx.Row, t *task.Task) error {
	return row.Scan(
		&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.AssignedBy, &t.Priority, &t.Status, &t.Category,
		&t.DueDate, &t.StartDate, &t.CompletedAt, &t.EstimatedHours, &t.ActualHours, &t.Progress, &t.Tags,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		&t.AssignedToName, &t.AssignedByName,
	)
}

func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (
			title, description, assigned_to, assigned_by, priority, status, category,
			due_date, start_date, completed_at, estimated_hours, actual_hours, progress, tags
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, COALESCE($14::text[], '{}'))
		RETURNING id, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.Title, t.Description, t.AssignedTo, t.AssignedBy, t.Priority, t.Status, t.Category,
		t.DueDate, t.StartDate, t.CompletedAt, t.EstimatedHours, t.ActualHours, t.Progress, t.Tags,
	).Scan(&t.ID, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return t, nil
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	var t task.Task
	if err := scanTask(q.QueryRow(ctx, taskSelect+` WHERE t.id = $1 AND t.is_active = TRUE`, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

func (r *taskRepositoryImpl) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "t.is_active = TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.AssignedTo != nil && filter.AssignedBy != nil {
		where += fmt.Sprintf(" AND (t.assigned_to = $%d OR t.assigned_by = $%d)", argIdx, argIdx+1)
		args = append(args, *filter.AssignedTo, *filter.AssignedBy)
		argIdx += 2
	} else if filter.AssignedTo != nil {
		where += fmt.Sprintf(" AND t.assigned_to = $%d", argIdx)
		args = append(args, *filter.AssignedTo)
		argIdx++
	} else if filter.AssignedBy != nil {
		where += fmt.Sprintf(" AND t.assigned_by = $%d", argIdx)
		args = append(args, *filter.AssignedBy)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Priority != nil && *filter.Priority != "" {
		where += fmt.Sprintf(" AND t.priority = $%d", argIdx)
		args = append(args, *filter.Priority)
		argIdx++
	}
	if filter.Category != nil && *filter.Category != "" {
		where += fmt.Sprintf(" AND t.category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (t.title ILIKE $%d OR t.description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks t WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY t.due_date, t.created_at DESC LIMIT $%d OFFSET $%d",
		taskSelect, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		var t task.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, assigned_to = $4, priority = $5, status = $6, category = $7,
			due_date = $8, start_date = $9, completed_at = $10, estimated_hours = $11, actual_hours = $12,
			progress = $13, tags = COALESCE($14::text[], '{}'), updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.AssignedTo, t.Priority, t.Status, t.Category,
		t.DueDate, t.StartDate, t.CompletedAt, t.EstimatedHours, t.ActualHours,
		t.Progress, t.Tags,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return t, nil
}

func (r *taskRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE tasks SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepositoryImpl) AddComment(ctx context.Context, c task.TaskComment) (task.TaskComment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO task_comments (task_id, user_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := q.QueryRow(ctx, query, c.TaskID, c.UserID, c.Comment).Scan(&c.ID, &c.CreatedAt); err != nil {
		return task.TaskComment{}, fmt.Errorf("failed to add task comment: %w", err)
	}

	return c, nil
}

func (r *taskRepositoryImpl) ListComments(ctx context.Context, taskID string) ([]task.TaskComment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.task_id, c.user_id, c.comment, c.created_at, e.full_name
		FROM task_comments c
		LEFT JOIN employees e ON e.id = c.user_id
		WHERE c.task_id = $1
		ORDER BY c.created_at
	`

	rows, err := q.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task comments: %w", err)
	}
	defer rows.Close()

	comments := make([]task.TaskComment, 0)
	for rows.Next() {
		var c task.TaskComment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Comment, &c.CreatedAt, &c.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan task comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *taskRepositoryImpl) Stats(ctx context.Context, userID *string) (task.TaskStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'in-progress'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status IN ('pending', 'in-progress') AND due_date < CURRENT_DATE),
			COUNT(*) FILTER (WHERE status IN ('pending', 'in-progress') AND priority IN ('high', 'urgent'))
		FROM tasks
		WHERE is_active = TRUE
		  AND ($1::uuid IS NULL OR assigned_to = $1::uuid OR assigned_by = $1::uuid)
	`

	var s task.TaskStats
	err := q.QueryRow(ctx, query, userID).Scan(&s.Total, &s.Pending, &s.InProgress, &s.Completed, &s.Overdue, &s.HighPriority)
	if err != nil {
		return task.TaskStats{}, fmt.Errorf("failed to get task stats: %w", err)
	}

	return s, nil
}
