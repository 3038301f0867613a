// Package workload computes per-rep open-task load within a territory and
// flags reps whose load is disproportionately high. It is a pure function of
// the user and task collections so it can be re-run from scratch on every
// request.
package workload

import "github.com/amanops/fieldforce/internal/domain"

type Entry struct {
	User         domain.User
	PendingCount int
	IsImbalanced bool
	Percent      float64
}

type Report struct {
	Territory string
	Average   float64
	Entries   []Entry
}

// imbalanceFloor guards near-zero-average territories where any nonzero
// count would trivially exceed twice the average.
const imbalanceFloor = 2

// Calculate builds the load report for one territory. Eligible staff are
// loan officers and cross-sell reps in the territory; managers and admins
// are excluded from workload accounting.
func Calculate(territory string, users []domain.User, tasks []domain.Task) Report {
	eligible := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Territory == territory && u.Role.IsFieldRep() {
			eligible = append(eligible, u)
		}
	}

	pending := make(map[string]int, len(eligible))
	for _, t := range tasks {
		if t.IsOpen() {
			pending[t.AssignedToID]++
		}
	}

	total := 0
	for _, u := range eligible {
		total += pending[u.ID]
	}

	avg := 0.0
	if len(eligible) > 0 {
		avg = float64(total) / float64(len(eligible))
	}

	entries := make([]Entry, 0, len(eligible))
	for _, u := range eligible {
		count := pending[u.ID]
		entries = append(entries, Entry{
			User:         u,
			PendingCount: count,
			IsImbalanced: float64(count) >= 2*avg && count > imbalanceFloor,
			Percent:      loadPercent(count, avg),
		})
	}

	return Report{
		Territory: territory,
		Average:   avg,
		Entries:   entries,
	}
}

// loadPercent maps a pending count onto a 0-100 scale where 100 means twice
// the territory average, clamped so the bar never overflows.
func loadPercent(count int, avg float64) float64 {
	denom := 2 * avg
	if denom == 0 {
		denom = 1
	}
	percent := float64(count) / denom * 100
	if percent > 100 {
		return 100
	}
	return percent
}
