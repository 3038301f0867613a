package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amanops/fieldforce/internal/domain"
)

func TestCanSee(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name      string
		viewer    *domain.User
		territory string
		want      bool
	}{
		{
			name:      "super admin sees any territory",
			viewer:    &domain.User{Role: domain.RoleSuperAdmin, Territory: domain.TerritoryAll},
			territory: "Giza - Dokki",
			want:      true,
		},
		{
			name:      "territory manager sees own territory",
			viewer:    &domain.User{Role: domain.RoleTerritoryManager, Territory: "Cairo - Nasr City"},
			territory: "Cairo - Nasr City",
			want:      true,
		},
		{
			name:      "territory manager blocked for foreign territory",
			viewer:    &domain.User{Role: domain.RoleTerritoryManager, Territory: "Cairo - Nasr City"},
			territory: "Giza - Dokki",
			want:      false,
		},
		{
			name:      "territory manager match is exact, no prefix hierarchy",
			viewer:    &domain.User{Role: domain.RoleTerritoryManager, Territory: "Cairo"},
			territory: "Cairo - Nasr City",
			want:      false,
		},
		{
			name:      "loan officer sees all under default policy",
			viewer:    &domain.User{Role: domain.RoleLoanOfficer, Territory: "Cairo - Heliopolis"},
			territory: "Giza - Dokki",
			want:      true,
		},
		{
			name:      "nil viewer sees nothing",
			viewer:    nil,
			territory: "Cairo - Nasr City",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, policy.CanSee(tt.viewer, tt.territory))
		})
	}
}

func TestCanSeeScopedFieldReps(t *testing.T) {
	policy := Policy{FieldRepsAllTerritories: false}

	rep := &domain.User{Role: domain.RoleCrossSell, Territory: "Cairo - Downtown"}
	require.True(t, policy.CanSee(rep, "Cairo - Downtown"))
	require.False(t, policy.CanSee(rep, "Giza - Dokki"))
}

func TestCanReview(t *testing.T) {
	policy := DefaultPolicy()

	tm := &domain.User{Role: domain.RoleTerritoryManager, Territory: "Cairo - Nasr City"}
	require.True(t, policy.CanReview(tm, "Cairo - Nasr City"))
	require.False(t, policy.CanReview(tm, "Giza - Dokki"))

	admin := &domain.User{Role: domain.RoleSuperAdmin, Territory: domain.TerritoryAll}
	require.True(t, policy.CanReview(admin, "Giza - Dokki"))

	// Field reps never review, even though the default policy lets them see.
	lo := &domain.User{Role: domain.RoleLoanOfficer, Territory: "Cairo - Nasr City"}
	require.False(t, policy.CanReview(lo, "Cairo - Nasr City"))

	cs := &domain.User{Role: domain.RoleCrossSell, Territory: "Cairo - Nasr City"}
	require.False(t, policy.CanReview(cs, "Cairo - Nasr City"))
}

func TestCanSuspend(t *testing.T) {
	require.True(t, CanSuspend(&domain.User{Role: domain.RoleLoanOfficer}))
	require.True(t, CanSuspend(&domain.User{Role: domain.RoleCrossSell}))
	require.True(t, CanSuspend(&domain.User{Role: domain.RoleTerritoryManager}))
	require.False(t, CanSuspend(&domain.User{Role: domain.RoleSuperAdmin}))
	require.False(t, CanSuspend(nil))
}

func TestEffectiveTerritory(t *testing.T) {
	admin := &domain.User{Role: domain.RoleSuperAdmin, Territory: domain.TerritoryAll}
	require.Equal(t, "Giza - Dokki", EffectiveTerritory(admin, "Giza - Dokki"))

	tm := &domain.User{Role: domain.RoleTerritoryManager, Territory: "Cairo - Nasr City"}
	require.Equal(t, "Cairo - Nasr City", EffectiveTerritory(tm, "Giza - Dokki"))
}
