package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/service"
)

type productHoldingDTO struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

type noteDTO struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type merchantDTO struct {
	ID           string              `json:"id"`
	BusinessName string              `json:"business_name"`
	PersonalName string              `json:"personal_name"`
	NID          string              `json:"nid"`
	Mobile       string              `json:"mobile"`
	Address      string              `json:"address"`
	Territory    string              `json:"territory"`
	AmanScore    string              `json:"aman_score"`
	Products     []productHoldingDTO `json:"products"`
	OwnerID      string              `json:"owner_id,omitempty"`
	Notes        []noteDTO           `json:"notes,omitempty"`
}

func merchantToDTO(m *domain.Merchant) merchantDTO {
	dto := merchantDTO{
		ID:           m.ID,
		BusinessName: m.BusinessName,
		PersonalName: m.PersonalName,
		NID:          m.NID,
		Mobile:       m.Mobile,
		Address:      m.Address,
		Territory:    m.Territory,
		AmanScore:    string(m.AmanScore),
		OwnerID:      m.OwnerID,
		Products:     make([]productHoldingDTO, 0, len(m.Products)),
	}
	for _, p := range m.Products {
		dto.Products = append(dto.Products, productHoldingDTO{
			Type:   string(p.Type),
			Status: string(p.Status),
		})
	}
	for _, n := range m.Notes {
		dto.Notes = append(dto.Notes, noteDTO{
			ID:         n.ID,
			AuthorID:   n.AuthorID,
			AuthorName: n.AuthorName,
			Content:    n.Content,
			CreatedAt:  n.CreatedAt,
		})
	}
	return dto
}

type merchantSearchResponse struct {
	Merchants []merchantDTO `json:"merchants"`
}

func (s *Server) HandleMerchantSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	merchants, err := s.app.Merchant.Search(r.Context(), actorFrom(r), query)
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := merchantSearchResponse{
		Merchants: make([]merchantDTO, 0, len(merchants)),
	}
	for i := range merchants {
		resp.Merchants = append(resp.Merchants, merchantToDTO(&merchants[i]))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type merchantResponse struct {
	Merchant merchantDTO `json:"merchant"`
}

func (s *Server) HandleMerchantGet(w http.ResponseWriter, r *http.Request) {
	merchant, err := s.app.Merchant.Get(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, merchantResponse{Merchant: merchantToDTO(merchant)})
}

type onboardMerchantRequest struct {
	BusinessName string   `json:"business_name"`
	PersonalName string   `json:"personal_name"`
	NID          string   `json:"nid"`
	Mobile       string   `json:"mobile"`
	Address      string   `json:"address"`
	Territory    string   `json:"territory"`
	AmanScore    string   `json:"aman_score"`
	Products     []string `json:"products"`
}

func (s *Server) HandleMerchantOnboard(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req onboardMerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "invalid JSON body")
		return
	}

	products := make([]domain.ProductType, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, domain.ProductType(p))
	}

	merchant, err := s.app.Merchant.Onboard(r.Context(), actorFrom(r), service.OnboardInput{
		BusinessName: req.BusinessName,
		PersonalName: req.PersonalName,
		NID:          req.NID,
		Mobile:       req.Mobile,
		Address:      req.Address,
		Territory:    req.Territory,
		AmanScore:    domain.AmanScore(req.AmanScore),
		Products:     products,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, merchantResponse{Merchant: merchantToDTO(merchant)})
}

type addNoteRequest struct {
	Content string `json:"content"`
}

type noteResponse struct {
	Note noteDTO `json:"note"`
}

func (s *Server) HandleMerchantAddNote(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "invalid JSON body")
		return
	}

	note, err := s.app.Merchant.AddNote(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, noteResponse{
		Note: noteDTO{
			ID:         note.ID,
			AuthorID:   note.AuthorID,
			AuthorName: note.AuthorName,
			Content:    note.Content,
			CreatedAt:  note.CreatedAt,
		},
	})
}

type addProductRequest struct {
	Type string `json:"type"`
}

type productResponse struct {
	Product productHoldingDTO `json:"product"`
}

func (s *Server) HandleMerchantAddProduct(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "invalid JSON body")
		return
	}

	holding, err := s.app.Merchant.AddProduct(r.Context(), actorFrom(r), chi.URLParam(r, "id"), domain.ProductType(req.Type))
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, productResponse{
		Product: productHoldingDTO{
			Type:   string(holding.Type),
			Status: string(holding.Status),
		},
	})
}
