package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/amanops/fieldforce/internal/access"
	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/search"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error)
	ExistsByHRID(ctx context.Context, hrid string) (bool, error)
}

type UserService struct {
	users  UserRepository
	policy access.Policy
	newID  func() string
}

func NewUserService(users UserRepository, policy access.Policy, newID func() string) *UserService {
	if newID == nil {
		newID = uuid.NewString
	}
	return &UserService{
		users:  users,
		policy: policy,
		newID:  newID,
	}
}

type CreateUserInput struct {
	Name      string
	Mobile    string
	HRID      string
	Role      domain.Role
	Territory string
}

// CreateUser creates an ACTIVE user. Non-super-admin actors cannot place the
// user outside their own territory.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.User, in CreateUserInput) (*domain.User, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if !domain.ValidMobile(in.Mobile) {
		fields["mobile"] = "mobile must be 11 digits starting with 010, 011, 012 or 015"
	}
	if strings.TrimSpace(in.HRID) == "" {
		fields["hrid"] = "hrid is required"
	}
	if !in.Role.Valid() {
		fields["role"] = "unknown role"
	}

	territory := access.EffectiveTerritory(actor, in.Territory)
	if strings.TrimSpace(territory) == "" {
		fields["territory"] = "territory is required"
	}
	if territory == domain.TerritoryAll && in.Role != domain.RoleSuperAdmin {
		fields["territory"] = "global territory is reserved for super admins"
	}

	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid user", fields)
	}

	exists, err := s.users.ExistsByHRID(ctx, in.HRID)
	if err != nil {
		return nil, fmt.Errorf("check hrid exists: %w", err)
	}
	if exists {
		return nil, domain.NewDomainError(domain.ErrorCodeUserExists, "a user with this hrid already exists")
	}

	user := &domain.User{
		ID:        s.newID(),
		Name:      in.Name,
		Mobile:    in.Mobile,
		HRID:      in.HRID,
		Role:      in.Role,
		Territory: territory,
		Status:    domain.UserStatusActive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// SetStatus toggles a user between ACTIVE and SUSPENDED. Super admin
// accounts are never suspendable.
func (s *UserService) SetStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("invalid status", map[string]string{
			"status": "status must be ACTIVE or SUSPENDED",
		})
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user for status change: %w", err)
	}

	if status == domain.UserStatusSuspended && !access.CanSuspend(target) {
		return nil, domain.NewDomainError(domain.ErrorCodeSuperAdminImmutable, "super admin accounts cannot be suspended")
	}

	updated, err := s.users.SetStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("set user status: %w", err)
	}
	return updated, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListUsers returns users matching the console filters: a folded substring
// search over name, mobile and hrid, and an optional role filter.
func (s *UserService) ListUsers(ctx context.Context, query string, role domain.Role) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if role != "" && u.Role != role {
			continue
		}
		if !search.Matches(query, u.Name, u.Mobile, u.HRID) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}
