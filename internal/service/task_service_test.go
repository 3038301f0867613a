package service

import (
	"context"
	"errors"
	"testing"

	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/service/mocks"
)

func TestParseTaskFilter(t *testing.T) {
	for _, valid := range []string{"", "ALL", "OPEN", "HIGH", "COMPLETED"} {
		if _, ok := ParseTaskFilter(valid); !ok {
			t.Errorf("expected %q to parse", valid)
		}
	}
	if _, ok := ParseTaskFilter("URGENT"); ok {
		t.Error("expected URGENT to be rejected")
	}
}

func TestTaskService_ListTasks(t *testing.T) {
	stored := []domain.Task{
		{ID: "t1", Status: domain.TaskStatusOpen, Priority: domain.TaskPriorityHigh},
		{ID: "t2", Status: domain.TaskStatusOpen, Priority: domain.TaskPriorityLow},
		{ID: "t3", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityHigh},
	}

	tests := []struct {
		name    string
		filter  TaskFilter
		wantIDs []string
	}{
		{name: "all", filter: TaskFilterAll, wantIDs: []string{"t1", "t2", "t3"}},
		{name: "open", filter: TaskFilterOpen, wantIDs: []string{"t1", "t2"}},
		{name: "high priority regardless of status", filter: TaskFilterHigh, wantIDs: []string{"t1", "t3"}},
		{name: "completed", filter: TaskFilterCompleted, wantIDs: []string{"t3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTaskService(&mocks.MockTaskRepository{ListResult: stored})

			result, err := svc.ListTasks(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result) != len(tt.wantIDs) {
				t.Fatalf("expected %d tasks, got %d", len(tt.wantIDs), len(result))
			}
			for i, id := range tt.wantIDs {
				if result[i].ID != id {
					t.Errorf("expected task %s at %d, got %s", id, i, result[i].ID)
				}
			}
		})
	}
}

func TestTaskService_CompleteTask(t *testing.T) {
	open := &domain.Task{ID: "t1", Status: domain.TaskStatusOpen}
	completed := &domain.Task{ID: "t1", Status: domain.TaskStatusCompleted, Outcome: domain.OutcomeInterested}

	t.Run("completes an open task", func(t *testing.T) {
		tasks := &mocks.MockTaskRepository{
			GetByIDResult:      open,
			SetCompletedResult: completed,
		}
		svc := NewTaskService(tasks)

		result, err := svc.CompleteTask(context.Background(), "t1", domain.OutcomeInterested)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != domain.TaskStatusCompleted {
			t.Errorf("expected COMPLETED, got %s", result.Status)
		}
		if tasks.SetCompletedCalls != 1 {
			t.Errorf("expected 1 completion call, got %d", tasks.SetCompletedCalls)
		}
	})

	t.Run("completing a completed task is a no-op", func(t *testing.T) {
		tasks := &mocks.MockTaskRepository{GetByIDResult: completed}
		svc := NewTaskService(tasks)

		result, err := svc.CompleteTask(context.Background(), "t1", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome != domain.OutcomeInterested {
			t.Errorf("expected stored outcome kept, got %s", result.Outcome)
		}
		if tasks.SetCompletedCalls != 0 {
			t.Errorf("expected no completion call, got %d", tasks.SetCompletedCalls)
		}
	})

	t.Run("unknown outcome rejected", func(t *testing.T) {
		svc := NewTaskService(&mocks.MockTaskRepository{GetByIDResult: open})

		_, err := svc.CompleteTask(context.Background(), "t1", domain.TaskOutcome("MAYBE"))
		var de *domain.DomainError
		if !errors.As(err, &de) || de.Code != domain.ErrorCodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
