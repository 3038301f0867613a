package workload

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amanops/fieldforce/internal/domain"
)

const territory = "Cairo - Nasr City"

func fieldRep(id string, role domain.Role) domain.User {
	return domain.User{ID: id, Role: role, Territory: territory, Status: domain.UserStatusActive}
}

func openTasks(assignee string, n int) []domain.Task {
	tasks := make([]domain.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, domain.Task{AssignedToID: assignee, Status: domain.TaskStatusOpen})
	}
	return tasks
}

func TestCalculateImbalance(t *testing.T) {
	users := []domain.User{
		fieldRep("u1", domain.RoleLoanOfficer),
		fieldRep("u2", domain.RoleLoanOfficer),
		fieldRep("u3", domain.RoleCrossSell),
	}
	tasks := append(openTasks("u1", 1), openTasks("u2", 1)...)
	tasks = append(tasks, openTasks("u3", 10)...)

	report := Calculate(territory, users, tasks)

	require.Equal(t, 4.0, report.Average)
	require.Len(t, report.Entries, 3)

	byID := make(map[string]Entry, len(report.Entries))
	for _, e := range report.Entries {
		byID[e.User.ID] = e
	}

	require.Equal(t, 1, byID["u1"].PendingCount)
	require.False(t, byID["u1"].IsImbalanced)
	require.False(t, byID["u2"].IsImbalanced)

	// 10 >= 2*4 and 10 > 2.
	require.Equal(t, 10, byID["u3"].PendingCount)
	require.True(t, byID["u3"].IsImbalanced)
	require.Equal(t, 100.0, byID["u3"].Percent)
}

func TestCalculateZeroEligibleStaff(t *testing.T) {
	users := []domain.User{
		{ID: "tm1", Role: domain.RoleTerritoryManager, Territory: territory},
		{ID: "a1", Role: domain.RoleSuperAdmin, Territory: domain.TerritoryAll},
	}

	report := Calculate(territory, users, openTasks("tm1", 5))

	require.Equal(t, 0.0, report.Average)
	require.Empty(t, report.Entries)
}

func TestCalculateLowCountsNeverImbalanced(t *testing.T) {
	// Counts of 2 or less are never flagged even when they exceed twice the
	// territory average.
	users := []domain.User{
		fieldRep("u1", domain.RoleLoanOfficer),
		fieldRep("u2", domain.RoleCrossSell),
	}

	report := Calculate(territory, users, openTasks("u1", 2))
	for _, e := range report.Entries {
		require.False(t, e.IsImbalanced, "rep %s with count %d", e.User.ID, e.PendingCount)
	}
}

func TestCalculateIgnoresCompletedAndForeign(t *testing.T) {
	users := []domain.User{
		fieldRep("u1", domain.RoleLoanOfficer),
		{ID: "u9", Role: domain.RoleLoanOfficer, Territory: "Giza - Dokki"},
	}
	tasks := []domain.Task{
		{AssignedToID: "u1", Status: domain.TaskStatusOpen},
		{AssignedToID: "u1", Status: domain.TaskStatusCompleted},
		{AssignedToID: "u9", Status: domain.TaskStatusOpen},
	}

	report := Calculate(territory, users, tasks)

	require.Len(t, report.Entries, 1)
	require.Equal(t, "u1", report.Entries[0].User.ID)
	require.Equal(t, 1, report.Entries[0].PendingCount)
	require.Equal(t, 1.0, report.Average)
}

func TestLoadPercentClamped(t *testing.T) {
	require.Equal(t, 100.0, loadPercent(10, 1))
	require.Equal(t, 50.0, loadPercent(2, 2))
	require.Equal(t, 0.0, loadPercent(0, 3))
	// Zero average falls back to a denominator of 1.
	require.Equal(t, 100.0, loadPercent(4, 0))
}
