package service

import (
	"context"
	"errors"
	"testing"

	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/service/mocks"
)

func TestWorkloadService_Report(t *testing.T) {
	users := &mocks.MockUserRepository{
		ListResult: []domain.User{
			{ID: "u1", Role: domain.RoleLoanOfficer, Territory: "Cairo - Nasr City"},
			{ID: "u2", Role: domain.RoleLoanOfficer, Territory: "Cairo - Nasr City"},
			{ID: "u3", Role: domain.RoleCrossSell, Territory: "Cairo - Nasr City"},
			{ID: "tm1", Role: domain.RoleTerritoryManager, Territory: "Cairo - Nasr City"},
		},
	}
	tasks := &mocks.MockTaskRepository{}
	for _, assignee := range []struct {
		id string
		n  int
	}{{"u1", 1}, {"u2", 1}, {"u3", 10}} {
		for i := 0; i < assignee.n; i++ {
			tasks.ListResult = append(tasks.ListResult, domain.Task{
				AssignedToID: assignee.id,
				Status:       domain.TaskStatusOpen,
			})
		}
	}

	svc := NewWorkloadService(users, tasks)
	admin := &domain.User{Role: domain.RoleSuperAdmin, Territory: domain.TerritoryAll}

	report, err := svc.Report(context.Background(), admin, "Cairo - Nasr City")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Average != 4.0 {
		t.Errorf("expected average 4.0, got %f", report.Average)
	}
	if len(report.Entries) != 3 {
		t.Fatalf("expected 3 entries (manager excluded), got %d", len(report.Entries))
	}
	for _, e := range report.Entries {
		wantImbalanced := e.User.ID == "u3"
		if e.IsImbalanced != wantImbalanced {
			t.Errorf("rep %s: expected imbalanced=%v, got %v", e.User.ID, wantImbalanced, e.IsImbalanced)
		}
	}
}

func TestWorkloadService_ReportForcesTerritory(t *testing.T) {
	users := &mocks.MockUserRepository{
		ListResult: []domain.User{
			{ID: "u1", Role: domain.RoleLoanOfficer, Territory: "Giza - Dokki"},
		},
	}
	svc := NewWorkloadService(users, &mocks.MockTaskRepository{})

	tm := &domain.User{Role: domain.RoleTerritoryManager, Territory: "Giza - Dokki"}
	report, err := svc.Report(context.Background(), tm, "Cairo - Nasr City")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Territory != "Giza - Dokki" {
		t.Errorf("expected report forced to caller territory, got %s", report.Territory)
	}
}

func TestWorkloadService_ReportRequiresTerritory(t *testing.T) {
	svc := NewWorkloadService(&mocks.MockUserRepository{}, &mocks.MockTaskRepository{})
	admin := &domain.User{Role: domain.RoleSuperAdmin, Territory: domain.TerritoryAll}

	_, err := svc.Report(context.Background(), admin, "")
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
