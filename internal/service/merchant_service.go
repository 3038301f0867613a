package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amanops/fieldforce/internal/access"
	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/search"
)

type MerchantRepository interface {
	Create(ctx context.Context, m *domain.Merchant) error
	GetByID(ctx context.Context, id string) (*domain.Merchant, error)
	List(ctx context.Context) ([]domain.Merchant, error)
	AddNote(ctx context.Context, merchantID string, note domain.Note) error
	AddProduct(ctx context.Context, merchantID string, holding domain.ProductHolding) error
}

type MerchantService struct {
	merchants MerchantRepository
	policy    access.Policy
	newID     func() string
	nowFunc   func() time.Time
}

func NewMerchantService(
	merchants MerchantRepository,
	policy access.Policy,
	newID func() string,
	nowFunc func() time.Time,
) *MerchantService {
	if newID == nil {
		newID = uuid.NewString
	}
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return &MerchantService{
		merchants: merchants,
		policy:    policy,
		newID:     newID,
		nowFunc:   nowFunc,
	}
}

type OnboardInput struct {
	BusinessName string
	PersonalName string
	NID          string
	Mobile       string
	Address      string
	Territory    string
	AmanScore    domain.AmanScore
	Products     []domain.ProductType
}

// Onboard creates a merchant from the field onboarding flow. Selected
// products start in PENDING. The onboarding rep becomes the owner.
func (s *MerchantService) Onboard(ctx context.Context, actor *domain.User, in OnboardInput) (*domain.Merchant, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.BusinessName) == "" {
		fields["businessName"] = "business name is required"
	}
	if strings.TrimSpace(in.PersonalName) == "" {
		fields["personalName"] = "personal name is required"
	}
	if !domain.ValidNID(in.NID) {
		fields["nid"] = "national id must be 14 digits"
	}
	if !domain.ValidMobile(in.Mobile) {
		fields["mobile"] = "mobile must be 11 digits starting with 010, 011, 012 or 015"
	}

	territory := access.EffectiveTerritory(actor, in.Territory)
	if strings.TrimSpace(territory) == "" || territory == domain.TerritoryAll {
		fields["territory"] = "territory is required"
	}

	score := in.AmanScore
	if score == "" {
		score = domain.AmanScoreMedium
	}
	if !score.Valid() {
		fields["amanScore"] = "unknown aman score"
	}

	seen := map[domain.ProductType]bool{}
	products := make([]domain.ProductHolding, 0, len(in.Products))
	for _, t := range in.Products {
		if !t.Valid() {
			fields["products"] = "unknown product type"
			break
		}
		if seen[t] {
			return nil, domain.NewDomainError(domain.ErrorCodeDuplicateHolding, "at most one holding per product type")
		}
		seen[t] = true
		products = append(products, domain.ProductHolding{Type: t, Status: domain.ProductStatusPending})
	}

	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid merchant", fields)
	}

	ownerID := ""
	if actor != nil && actor.Role.IsFieldRep() {
		ownerID = actor.ID
	}

	merchant := &domain.Merchant{
		ID:           s.newID(),
		BusinessName: in.BusinessName,
		PersonalName: in.PersonalName,
		NID:          in.NID,
		Mobile:       in.Mobile,
		Address:      in.Address,
		Territory:    territory,
		AmanScore:    score,
		Products:     products,
		OwnerID:      ownerID,
		Notes:        nil,
	}

	if err := s.merchants.Create(ctx, merchant); err != nil {
		return nil, fmt.Errorf("create merchant: %w", err)
	}

	return merchant, nil
}

// Search matches the query against business name, personal name, mobile and
// national id, OR-combined and diacritics-insensitive, then applies the
// actor's visibility scope.
func (s *MerchantService) Search(ctx context.Context, actor *domain.User, query string) ([]domain.Merchant, error) {
	merchants, err := s.merchants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}

	out := make([]domain.Merchant, 0, len(merchants))
	for _, m := range merchants {
		if !s.policy.CanSee(actor, m.Territory) {
			continue
		}
		if !search.Matches(query, m.BusinessName, m.PersonalName, m.Mobile, m.NID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Get returns one merchant profile. Records outside the actor's scope are
// reported as absent, not forbidden.
func (s *MerchantService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Merchant, error) {
	merchant, err := s.merchants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get merchant: %w", err)
	}

	if !s.policy.CanSee(actor, merchant.Territory) {
		return nil, domain.NewDomainError(domain.ErrorCodeNotFound, "merchant not found")
	}
	return merchant, nil
}

func (s *MerchantService) AddNote(ctx context.Context, actor *domain.User, merchantID, content string) (*domain.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewValidationError("invalid note", map[string]string{
			"content": "note content is required",
		})
	}
	if actor == nil {
		return nil, domain.NewDomainError(domain.ErrorCodeForbidden, "an acting user is required")
	}

	if _, err := s.Get(ctx, actor, merchantID); err != nil {
		return nil, err
	}

	note := domain.Note{
		ID:         s.newID(),
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Content:    content,
		CreatedAt:  s.nowFunc(),
	}

	if err := s.merchants.AddNote(ctx, merchantID, note); err != nil {
		return nil, fmt.Errorf("add merchant note: %w", err)
	}
	return &note, nil
}

// AddProduct attaches a new product holding, enforcing at most one holding
// per product type per merchant.
func (s *MerchantService) AddProduct(ctx context.Context, actor *domain.User, merchantID string, productType domain.ProductType) (*domain.ProductHolding, error) {
	if !productType.Valid() {
		return nil, domain.NewValidationError("invalid product", map[string]string{
			"type": "unknown product type",
		})
	}

	merchant, err := s.Get(ctx, actor, merchantID)
	if err != nil {
		return nil, err
	}

	if merchant.HasProduct(productType) {
		return nil, domain.NewDomainError(domain.ErrorCodeDuplicateHolding, "merchant already holds this product")
	}

	holding := domain.ProductHolding{Type: productType, Status: domain.ProductStatusPending}
	if err := s.merchants.AddProduct(ctx, merchantID, holding); err != nil {
		return nil, fmt.Errorf("add merchant product: %w", err)
	}
	return &holding, nil
}
