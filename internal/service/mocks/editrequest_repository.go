package mocks

import (
	"context"
	"time"

	"github.com/amanops/fieldforce/internal/domain"
)

type MockEditRequestRepository struct {
	CreateErr       error
	CreatedRequest  *domain.EditRequest
	GetByIDResult   *domain.EditRequest
	GetByIDErr      error
	ListResult      []domain.EditRequest
	ListErr         error
	ApproveResult   *domain.EditRequest
	ApproveErr      error
	ApproveCalls    int
	RejectResult    *domain.EditRequest
	RejectErr       error
	RejectCalls     int
	EscalatedCount  int64
	EscalateErr     error
	EscalatedBefore time.Time
}

func (m *MockEditRequestRepository) Create(ctx context.Context, req *domain.EditRequest) error {
	m.CreatedRequest = req
	return m.CreateErr
}

func (m *MockEditRequestRepository) GetByID(ctx context.Context, id string) (*domain.EditRequest, error) {
	return m.GetByIDResult, m.GetByIDErr
}

func (m *MockEditRequestRepository) List(ctx context.Context) ([]domain.EditRequest, error) {
	return m.ListResult, m.ListErr
}

func (m *MockEditRequestRepository) ApproveAndApplyField(ctx context.Context, id string) (*domain.EditRequest, error) {
	m.ApproveCalls++
	return m.ApproveResult, m.ApproveErr
}

func (m *MockEditRequestRepository) Reject(ctx context.Context, id, reason string) (*domain.EditRequest, error) {
	m.RejectCalls++
	return m.RejectResult, m.RejectErr
}

func (m *MockEditRequestRepository) EscalateOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.EscalatedBefore = cutoff
	return m.EscalatedCount, m.EscalateErr
}
