package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/service"
)

type requesterDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type editRequestDTO struct {
	ID              string       `json:"id"`
	MerchantID      string       `json:"merchant_id"`
	MerchantName    string       `json:"merchant_name"`
	Field           string       `json:"field"`
	OldValue        string       `json:"old_value"`
	NewValue        string       `json:"new_value"`
	RequestedBy     requesterDTO `json:"requested_by"`
	RequestedAt     time.Time    `json:"requested_at"`
	Reason          string       `json:"reason"`
	Status          string       `json:"status"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	Territory       string       `json:"territory"`
}

func editRequestToDTO(r domain.EditRequest) editRequestDTO {
	return editRequestDTO{
		ID:           r.ID,
		MerchantID:   r.MerchantID,
		MerchantName: r.MerchantName,
		Field:        string(r.Field),
		OldValue:     r.OldValue,
		NewValue:     r.NewValue,
		RequestedBy: requesterDTO{
			ID:   r.RequestedBy.ID,
			Name: r.RequestedBy.Name,
			Role: string(r.RequestedBy.Role),
		},
		RequestedAt:     r.RequestedAt,
		Reason:          r.Reason,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		Territory:       r.Territory,
	}
}

type createEditRequestRequest struct {
	MerchantID string `json:"merchant_id"`
	Field      string `json:"field"`
	NewValue   string `json:"new_value"`
	Reason     string `json:"reason"`
}

type editRequestResponse struct {
	Request editRequestDTO `json:"request"`
}

func (s *Server) HandleEditRequestCreate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req createEditRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "invalid JSON body")
		return
	}

	created, err := s.app.EditRequest.CreateRequest(
		r.Context(),
		actorFrom(r),
		req.MerchantID,
		domain.EditableField(req.Field),
		req.NewValue,
		req.Reason,
	)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, editRequestResponse{Request: editRequestToDTO(*created)})
}

type editRequestListResponse struct {
	Requests []editRequestDTO `json:"requests"`
}

func (s *Server) HandleEditRequestList(w http.ResponseWriter, r *http.Request) {
	filter, ok := service.ParseEditRequestStatusFilter(r.URL.Query().Get("status"))
	if !ok {
		s.writeError(w, http.StatusUnprocessableEntity, domain.ErrorCodeValidation, "unknown status filter")
		return
	}

	requests, err := s.app.EditRequest.ListRequests(r.Context(), actorFrom(r), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := editRequestListResponse{Requests: make([]editRequestDTO, 0, len(requests))}
	for _, req := range requests {
		resp.Requests = append(resp.Requests, editRequestToDTO(req))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) HandleEditRequestApprove(w http.ResponseWriter, r *http.Request) {
	approved, err := s.app.EditRequest.Approve(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, editRequestResponse{Request: editRequestToDTO(*approved)})
}

type rejectEditRequestRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

func (s *Server) HandleEditRequestReject(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req rejectEditRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "invalid JSON body")
		return
	}

	rejected, err := s.app.EditRequest.Reject(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.RejectionReason)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, editRequestResponse{Request: editRequestToDTO(*rejected)})
}
