package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amanops/fieldforce/internal/access"
	"github.com/amanops/fieldforce/internal/domain"
)

type EditRequestRepository interface {
	Create(ctx context.Context, req *domain.EditRequest) error
	GetByID(ctx context.Context, id string) (*domain.EditRequest, error)
	List(ctx context.Context) ([]domain.EditRequest, error)
	// ApproveAndApplyField flips the request to APPROVED and writes the new
	// value onto the merchant in one transaction. It fails with a
	// NOT_REVIEWABLE domain error when the request is already terminal.
	ApproveAndApplyField(ctx context.Context, id string) (*domain.EditRequest, error)
	Reject(ctx context.Context, id, reason string) (*domain.EditRequest, error)
	EscalateOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type EditRequestMerchantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Merchant, error)
}

// EditRequestStatusFilter mirrors the console tabs: PENDING includes
// ESCALATED, HISTORY is the terminal states.
type EditRequestStatusFilter string

const (
	EditRequestFilterPending   EditRequestStatusFilter = "PENDING"
	EditRequestFilterEscalated EditRequestStatusFilter = "ESCALATED"
	EditRequestFilterHistory   EditRequestStatusFilter = "HISTORY"
	EditRequestFilterAll       EditRequestStatusFilter = "ALL"
)

func ParseEditRequestStatusFilter(s string) (EditRequestStatusFilter, bool) {
	switch EditRequestStatusFilter(s) {
	case EditRequestFilterPending, EditRequestFilterEscalated, EditRequestFilterHistory, EditRequestFilterAll:
		return EditRequestStatusFilter(s), true
	case "":
		return EditRequestFilterAll, true
	}
	return "", false
}

func (f EditRequestStatusFilter) matches(r domain.EditRequest) bool {
	switch f {
	case EditRequestFilterPending:
		return r.IsReviewable()
	case EditRequestFilterEscalated:
		return r.Status == domain.EditRequestEscalated
	case EditRequestFilterHistory:
		return r.Status == domain.EditRequestApproved || r.Status == domain.EditRequestRejected
	}
	return true
}

type EditRequestService struct {
	requests  EditRequestRepository
	merchants EditRequestMerchantRepository
	policy    access.Policy
	sla       time.Duration
	newID     func() string
	nowFunc   func() time.Time
}

func NewEditRequestService(
	requests EditRequestRepository,
	merchants EditRequestMerchantRepository,
	policy access.Policy,
	sla time.Duration,
	newID func() string,
	nowFunc func() time.Time,
) *EditRequestService {
	if newID == nil {
		newID = uuid.NewString
	}
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return &EditRequestService{
		requests:  requests,
		merchants: merchants,
		policy:    policy,
		sla:       sla,
		newID:     newID,
		nowFunc:   nowFunc,
	}
}

// CreateRequest files a proposed single-field edit against a merchant. The
// proposed value must differ from the current one and pass the
// field-specific rule; the reason is required and capped at 200 characters.
func (s *EditRequestService) CreateRequest(
	ctx context.Context,
	actor *domain.User,
	merchantID string,
	field domain.EditableField,
	newValue string,
	reason string,
) (*domain.EditRequest, error) {
	if actor == nil {
		return nil, domain.NewDomainError(domain.ErrorCodeForbidden, "an acting user is required")
	}
	if !field.Valid() {
		return nil, domain.NewValidationError("invalid edit request", map[string]string{
			"field": "unknown editable field",
		})
	}

	merchant, err := s.merchants.GetByID(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("get merchant for edit request: %w", err)
	}

	oldValue, _ := merchant.FieldValue(field)

	fields := map[string]string{}
	if msg := domain.ValidateFieldValue(field, newValue); msg != "" {
		fields["newValue"] = msg
	} else if newValue == oldValue {
		fields["newValue"] = "new value must differ from the current value"
	}
	if msg := domain.ValidateReason(reason); msg != "" {
		fields["reason"] = msg
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid edit request", fields)
	}

	req := &domain.EditRequest{
		ID:           s.newID(),
		MerchantID:   merchant.ID,
		MerchantName: merchant.BusinessName,
		Field:        field,
		OldValue:     oldValue,
		NewValue:     newValue,
		RequestedBy: domain.Requester{
			ID:   actor.ID,
			Name: actor.Name,
			Role: actor.Role,
		},
		RequestedAt: s.nowFunc(),
		Reason:      reason,
		Status:      domain.EditRequestPending,
		Territory:   merchant.Territory,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create edit request: %w", err)
	}

	return req, nil
}

// ListRequests returns the requests visible to the actor, filtered by the
// console status tabs.
func (s *EditRequestService) ListRequests(
	ctx context.Context,
	actor *domain.User,
	filter EditRequestStatusFilter,
) ([]domain.EditRequest, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list edit requests: %w", err)
	}

	out := make([]domain.EditRequest, 0, len(requests))
	for _, r := range requests {
		if !s.policy.CanSee(actor, r.Territory) {
			continue
		}
		if !filter.matches(r) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Approve transitions a PENDING or ESCALATED request to APPROVED and applies
// the proposed value to the merchant atomically. Terminal requests are not
// re-approved, so the merchant field is written at most once per request.
func (s *EditRequestService) Approve(ctx context.Context, actor *domain.User, id string) (*domain.EditRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get edit request for approve: %w", err)
	}

	if !s.policy.CanReview(actor, req.Territory) {
		return nil, domain.NewDomainError(domain.ErrorCodeForbidden, "not allowed to review requests for this territory")
	}
	if !req.IsReviewable() {
		return nil, domain.NewDomainError(domain.ErrorCodeNotReviewable, "request is already resolved")
	}

	approved, err := s.requests.ApproveAndApplyField(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("approve edit request: %w", err)
	}
	return approved, nil
}

// Reject transitions a PENDING or ESCALATED request to REJECTED. A non-empty
// rejection reason is required; the merchant is not touched.
func (s *EditRequestService) Reject(ctx context.Context, actor *domain.User, id, reason string) (*domain.EditRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.NewValidationError("invalid rejection", map[string]string{
			"rejectionReason": "rejection reason is required",
		})
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get edit request for reject: %w", err)
	}

	if !s.policy.CanReview(actor, req.Territory) {
		return nil, domain.NewDomainError(domain.ErrorCodeForbidden, "not allowed to review requests for this territory")
	}
	if !req.IsReviewable() {
		return nil, domain.NewDomainError(domain.ErrorCodeNotReviewable, "request is already resolved")
	}

	rejected, err := s.requests.Reject(ctx, id, reason)
	if err != nil {
		return nil, fmt.Errorf("reject edit request: %w", err)
	}
	return rejected, nil
}

// EscalateOverdue moves PENDING requests older than the SLA to ESCALATED and
// returns how many were escalated. Run periodically by the sweeper.
func (s *EditRequestService) EscalateOverdue(ctx context.Context) (int64, error) {
	cutoff := s.nowFunc().Add(-s.sla)
	n, err := s.requests.EscalateOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("escalate overdue edit requests: %w", err)
	}
	return n, nil
}
