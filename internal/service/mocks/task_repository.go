package mocks

import (
	"context"

	"github.com/amanops/fieldforce/internal/domain"
)

type MockTaskRepository struct {
	GetByIDResult      *domain.Task
	GetByIDErr         error
	ListResult         []domain.Task
	ListErr            error
	SetCompletedResult *domain.Task
	SetCompletedErr    error
	SetCompletedCalls  int
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return m.GetByIDResult, m.GetByIDErr
}

func (m *MockTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	return m.ListResult, m.ListErr
}

func (m *MockTaskRepository) SetCompleted(ctx context.Context, id string, outcome domain.TaskOutcome) (*domain.Task, error) {
	m.SetCompletedCalls++
	return m.SetCompletedResult, m.SetCompletedErr
}
