package service

import (
	"context"
	"fmt"

	"github.com/amanops/fieldforce/internal/domain"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	SetCompleted(ctx context.Context, id string, outcome domain.TaskOutcome) (*domain.Task, error)
}

// TaskFilter is the single-predicate filter exposed by the task list.
type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "ALL"
	TaskFilterOpen      TaskFilter = "OPEN"
	TaskFilterHigh      TaskFilter = "HIGH"
	TaskFilterCompleted TaskFilter = "COMPLETED"
)

func ParseTaskFilter(s string) (TaskFilter, bool) {
	switch TaskFilter(s) {
	case TaskFilterAll, TaskFilterOpen, TaskFilterHigh, TaskFilterCompleted:
		return TaskFilter(s), true
	case "":
		return TaskFilterAll, true
	}
	return "", false
}

func (f TaskFilter) matches(t domain.Task) bool {
	switch f {
	case TaskFilterOpen:
		return t.Status == domain.TaskStatusOpen
	case TaskFilterHigh:
		return t.Priority == domain.TaskPriorityHigh
	case TaskFilterCompleted:
		return t.Status == domain.TaskStatusCompleted
	}
	return true
}

type TaskService struct {
	tasks TaskRepository
}

func NewTaskService(tasks TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// CompleteTask marks a task COMPLETED with an optional outcome. Completing an
// already completed task is a no-op returning the stored task; completed
// tasks are otherwise immutable, there is no reopen.
func (s *TaskService) CompleteTask(ctx context.Context, id string, outcome domain.TaskOutcome) (*domain.Task, error) {
	if outcome != "" && !outcome.Valid() {
		return nil, domain.NewValidationError("invalid outcome", map[string]string{
			"outcome": "unknown task outcome",
		})
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task for completion: %w", err)
	}

	if !task.IsOpen() {
		return task, nil
	}

	updated, err := s.tasks.SetCompleted(ctx, id, outcome)
	if err != nil {
		return nil, fmt.Errorf("set task completed: %w", err)
	}
	return updated, nil
}
