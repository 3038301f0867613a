package mocks

import (
	"context"

	"github.com/amanops/fieldforce/internal/domain"
)

type MockUserRepository struct {
	CreateErr         error
	CreatedUser       *domain.User
	GetByIDResult     *domain.User
	GetByIDErr        error
	ListResult        []domain.User
	ListErr           error
	SetStatusResult   *domain.User
	SetStatusErr      error
	ExistsByHRIDValue bool
	ExistsByHRIDErr   error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.CreatedUser = user
	return m.CreateErr
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.GetByIDResult, m.GetByIDErr
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return m.ListResult, m.ListErr
}

func (m *MockUserRepository) SetStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	return m.SetStatusResult, m.SetStatusErr
}

func (m *MockUserRepository) ExistsByHRID(ctx context.Context, hrid string) (bool, error) {
	return m.ExistsByHRIDValue, m.ExistsByHRIDErr
}
