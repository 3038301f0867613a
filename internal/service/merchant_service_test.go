package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amanops/fieldforce/internal/access"
	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/service/mocks"
)

func newMerchantService(merchants *mocks.MockMerchantRepository, policy access.Policy) *MerchantService {
	newID := func() string { return "m-1" }
	nowFunc := func() time.Time { return time.Unix(2000, 0) }
	return NewMerchantService(merchants, policy, newID, nowFunc)
}

func TestMerchantService_Onboard(t *testing.T) {
	rep := &domain.User{ID: "u1", Name: "Sara Ali", Role: domain.RoleLoanOfficer, Territory: "Cairo - Nasr City"}

	tests := []struct {
		name           string
		actor          *domain.User
		input          OnboardInput
		wantErr        bool
		wantErrCode    domain.ErrorCode
		validateResult func(t *testing.T, m *domain.Merchant)
	}{
		{
			name:  "valid onboarding",
			actor: rep,
			input: OnboardInput{
				BusinessName: "Al Amana Market",
				PersonalName: "Ahmed Hassan",
				NID:          "29001011234567",
				Mobile:       "01012345678",
				Address:      "12 Makram Ebeid St",
				Territory:    "Giza - Dokki",
				Products:     []domain.ProductType{domain.ProductMicrofinance, domain.ProductPayments},
			},
			validateResult: func(t *testing.T, m *domain.Merchant) {
				// Non-admin onboarding is pinned to the rep's own territory.
				if m.Territory != "Cairo - Nasr City" {
					t.Errorf("expected territory forced to rep's, got %s", m.Territory)
				}
				if m.OwnerID != "u1" {
					t.Errorf("expected owner set to onboarding rep, got %s", m.OwnerID)
				}
				if m.AmanScore != domain.AmanScoreMedium {
					t.Errorf("expected default MEDIUM score, got %s", m.AmanScore)
				}
				if len(m.Products) != 2 {
					t.Fatalf("expected 2 holdings, got %d", len(m.Products))
				}
				for _, p := range m.Products {
					if p.Status != domain.ProductStatusPending {
						t.Errorf("expected holding %s PENDING, got %s", p.Type, p.Status)
					}
				}
			},
		},
		{
			name:  "short nid rejected",
			actor: rep,
			input: OnboardInput{
				BusinessName: "Al Amana Market",
				PersonalName: "Ahmed Hassan",
				NID:          "123",
				Mobile:       "01012345678",
			},
			wantErr:     true,
			wantErrCode: domain.ErrorCodeValidation,
		},
		{
			name:  "duplicate product type rejected",
			actor: rep,
			input: OnboardInput{
				BusinessName: "Al Amana Market",
				PersonalName: "Ahmed Hassan",
				NID:          "29001011234567",
				Mobile:       "01012345678",
				Products:     []domain.ProductType{domain.ProductPayments, domain.ProductPayments},
			},
			wantErr:     true,
			wantErrCode: domain.ErrorCodeDuplicateHolding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merchants := &mocks.MockMerchantRepository{}
			svc := newMerchantService(merchants, access.DefaultPolicy())

			result, err := svc.Onboard(context.Background(), tt.actor, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var de *domain.DomainError
				if !errors.As(err, &de) || de.Code != tt.wantErrCode {
					t.Fatalf("expected error code %s, got %v", tt.wantErrCode, err)
				}
				if merchants.CreatedMerchant != nil {
					t.Error("no merchant must be stored on failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validateResult != nil {
				tt.validateResult(t, result)
			}
		})
	}
}

func TestMerchantService_Search(t *testing.T) {
	stored := []domain.Merchant{
		{ID: "m1", BusinessName: "Al Amana Market", PersonalName: "Ahmed Hassan", Mobile: "01012345678", NID: "29001011234567", Territory: "Cairo - Nasr City"},
		{ID: "m2", BusinessName: "El Nour Pharmacy", PersonalName: "Sara Ali", Mobile: "01123456789", NID: "29002021234567", Territory: "Giza - Dokki"},
	}

	merchants := &mocks.MockMerchantRepository{ListResult: stored}
	svc := newMerchantService(merchants, access.DefaultPolicy())
	ctx := context.Background()

	lo := &domain.User{ID: "u1", Role: domain.RoleLoanOfficer, Territory: "Cairo - Nasr City"}

	byName, err := svc.Search(ctx, lo, "nour")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != "m2" {
		t.Fatalf("expected m2, got %v", byName)
	}

	byMobile, err := svc.Search(ctx, lo, "01012")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byMobile) != 1 || byMobile[0].ID != "m1" {
		t.Fatalf("expected m1, got %v", byMobile)
	}

	byNID, err := svc.Search(ctx, lo, "29002021234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byNID) != 1 || byNID[0].ID != "m2" {
		t.Fatalf("expected m2, got %v", byNID)
	}

	// Territory manager only sees own-territory matches.
	tm := &domain.User{ID: "tm1", Role: domain.RoleTerritoryManager, Territory: "Cairo - Nasr City"}
	scoped, err := svc.Search(ctx, tm, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != "m1" {
		t.Fatalf("expected m1 only, got %v", scoped)
	}
}

func TestMerchantService_Get(t *testing.T) {
	stored := &domain.Merchant{ID: "m1", BusinessName: "Al Amana Market", Territory: "Cairo - Nasr City"}
	merchants := &mocks.MockMerchantRepository{GetByIDResult: stored}
	svc := newMerchantService(merchants, access.DefaultPolicy())

	tm := &domain.User{ID: "tm1", Role: domain.RoleTerritoryManager, Territory: "Giza - Dokki"}
	_, err := svc.Get(context.Background(), tm, "m1")

	// Out-of-scope records surface as absent, not forbidden.
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestMerchantService_AddNote(t *testing.T) {
	stored := &domain.Merchant{ID: "m1", Territory: "Cairo - Nasr City"}
	merchants := &mocks.MockMerchantRepository{GetByIDResult: stored}
	svc := newMerchantService(merchants, access.DefaultPolicy())

	rep := &domain.User{ID: "u1", Name: "Sara Ali", Role: domain.RoleLoanOfficer, Territory: "Cairo - Nasr City"}

	note, err := svc.AddNote(context.Background(), rep, "m1", "visited the shop, owner interested in BP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.AuthorID != "u1" || note.AuthorName != "Sara Ali" {
		t.Errorf("expected author denormalized from actor, got %+v", note)
	}
	if !note.CreatedAt.Equal(time.Unix(2000, 0)) {
		t.Errorf("expected timestamp from nowFunc, got %v", note.CreatedAt)
	}

	if _, err := svc.AddNote(context.Background(), rep, "m1", "   "); err == nil {
		t.Fatal("expected validation error for empty note")
	}
}

func TestMerchantService_AddProductUniqueness(t *testing.T) {
	stored := &domain.Merchant{
		ID:        "m1",
		Territory: "Cairo - Nasr City",
		Products: []domain.ProductHolding{
			{Type: domain.ProductMicrofinance, Status: domain.ProductStatusActive},
		},
	}
	merchants := &mocks.MockMerchantRepository{GetByIDResult: stored}
	svc := newMerchantService(merchants, access.DefaultPolicy())

	rep := &domain.User{ID: "u1", Role: domain.RoleLoanOfficer, Territory: "Cairo - Nasr City"}
	ctx := context.Background()

	holding, err := svc.AddProduct(ctx, rep, "m1", domain.ProductPayments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if holding.Status != domain.ProductStatusPending {
		t.Errorf("expected new holding PENDING, got %s", holding.Status)
	}

	_, err = svc.AddProduct(ctx, rep, "m1", domain.ProductMicrofinance)
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeDuplicateHolding {
		t.Fatalf("expected DUPLICATE_HOLDING, got %v", err)
	}
}
