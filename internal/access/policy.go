// Package access holds the role and territory scoping rules shared by the
// mobile app and the admin console. Everything here is a pure predicate so
// screens and services stop re-deriving visibility rules locally.
package access

import "github.com/amanops/fieldforce/internal/domain"

// Policy captures the configurable parts of the visibility rules.
type Policy struct {
	// FieldRepsAllTerritories keeps the mobile behavior where loan officers
	// and cross-sell reps see records from every territory. When false they
	// are scoped to their own territory like territory managers.
	FieldRepsAllTerritories bool
}

// DefaultPolicy matches the behavior observed in the field app.
func DefaultPolicy() Policy {
	return Policy{FieldRepsAllTerritories: true}
}

// CanSee reports whether the viewer may see a record belonging to the given
// territory. Super admins see everything, territory managers only an exact
// territory match.
func (p Policy) CanSee(viewer *domain.User, territory string) bool {
	if viewer == nil {
		return false
	}

	switch viewer.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleTerritoryManager:
		return viewer.Territory == territory
	case domain.RoleLoanOfficer, domain.RoleCrossSell:
		if p.FieldRepsAllTerritories {
			return true
		}
		return viewer.Territory == territory
	}
	return false
}

// CanReview reports whether the viewer may approve or reject an edit request
// scoped to the given territory. Only territory managers and super admins
// review, and only within what they can see.
func (p Policy) CanReview(viewer *domain.User, territory string) bool {
	if viewer == nil {
		return false
	}
	if viewer.Role != domain.RoleTerritoryManager && viewer.Role != domain.RoleSuperAdmin {
		return false
	}
	return p.CanSee(viewer, territory)
}

// CanSuspend reports whether the target account may be suspended at all.
// Super admin accounts are never suspendable, regardless of caller.
func CanSuspend(target *domain.User) bool {
	if target == nil {
		return false
	}
	return target.Role != domain.RoleSuperAdmin
}

// EffectiveTerritory resolves the territory an actor may operate on. Super
// admins may pick any territory; everyone else is forced to their own.
func EffectiveTerritory(actor *domain.User, requested string) string {
	if actor != nil && actor.Role == domain.RoleSuperAdmin {
		return requested
	}
	if actor == nil {
		return requested
	}
	return actor.Territory
}
