package task

import "errors"

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrInvalidStateTransition = errors.New("invalid task status transition")
	ErrUnauthorized           = errors.New("unauthorized to access this task")
	ErrAssigneeOnlyFields     = errors.New("assignee may only update status, progress and actual hours")
	ErrAssigneeNotFound       = errors.New("assignee does not exist")
)
