package mocks

import (
	"context"

	"github.com/amanops/fieldforce/internal/domain"
)

type MockMerchantRepository struct {
	CreateErr       error
	CreatedMerchant *domain.Merchant
	GetByIDResult   *domain.Merchant
	GetByIDErr      error
	ListResult      []domain.Merchant
	ListErr         error
	AddNoteErr      error
	AddedNote       *domain.Note
	AddProductErr   error
	AddedProduct    *domain.ProductHolding
}

func (m *MockMerchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	m.CreatedMerchant = merchant
	return m.CreateErr
}

func (m *MockMerchantRepository) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	return m.GetByIDResult, m.GetByIDErr
}

func (m *MockMerchantRepository) List(ctx context.Context) ([]domain.Merchant, error) {
	return m.ListResult, m.ListErr
}

func (m *MockMerchantRepository) AddNote(ctx context.Context, merchantID string, note domain.Note) error {
	m.AddedNote = &note
	return m.AddNoteErr
}

func (m *MockMerchantRepository) AddProduct(ctx context.Context, merchantID string, holding domain.ProductHolding) error {
	m.AddedProduct = &holding
	return m.AddProductErr
}
