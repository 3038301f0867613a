package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/amanops/fieldforce/internal/access"
	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/workload"
)

type WorkloadUserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
}

type WorkloadTaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
}

type WorkloadService struct {
	users WorkloadUserRepository
	tasks WorkloadTaskRepository
}

func NewWorkloadService(users WorkloadUserRepository, tasks WorkloadTaskRepository) *WorkloadService {
	return &WorkloadService{
		users: users,
		tasks: tasks,
	}
}

// Report computes the load distribution for one territory. Non-super-admin
// actors are forced to their own territory, matching the console behavior.
func (s *WorkloadService) Report(ctx context.Context, actor *domain.User, territory string) (*workload.Report, error) {
	territory = access.EffectiveTerritory(actor, territory)
	if strings.TrimSpace(territory) == "" || territory == domain.TerritoryAll {
		return nil, domain.NewValidationError("invalid workload query", map[string]string{
			"territory": "territory is required",
		})
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users for workload: %w", err)
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks for workload: %w", err)
	}

	report := workload.Calculate(territory, users, tasks)
	return &report, nil
}
