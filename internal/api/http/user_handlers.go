package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/service"
)

type userDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	HRID      string `json:"hrid"`
	Role      string `json:"role"`
	Territory string `json:"territory"`
	Status    string `json:"status"`
}

func userToDTO(u domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Name:      u.Name,
		Mobile:    u.Mobile,
		HRID:      u.HRID,
		Role:      string(u.Role),
		Territory: u.Territory,
		Status:    string(u.Status),
	}
}

type userListResponse struct {
	Users []userDTO `json:"users"`
}

func (s *Server) HandleUserList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	role := domain.Role(r.URL.Query().Get("role"))
	if role != "" && !role.Valid() {
		s.writeError(w, http.StatusUnprocessableEntity, domain.ErrorCodeValidation, "unknown role")
		return
	}

	users, err := s.app.User.ListUsers(r.Context(), query, role)
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := userListResponse{Users: make([]userDTO, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, userToDTO(u))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type createUserRequest struct {
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	HRID      string `json:"hrid"`
	Role      string `json:"role"`
	Territory string `json:"territory"`
}

type userResponse struct {
	User userDTO `json:"user"`
}

func (s *Server) HandleUserCreate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "invalid JSON body")
		return
	}

	user, err := s.app.User.CreateUser(r.Context(), actorFrom(r), service.CreateUserInput{
		Name:      req.Name,
		Mobile:    req.Mobile,
		HRID:      req.HRID,
		Role:      domain.Role(req.Role),
		Territory: req.Territory,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, userResponse{User: userToDTO(*user)})
}

type setUserStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) HandleUserSetStatus(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req setUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "invalid JSON body")
		return
	}

	status := domain.UserStatus(req.Status)
	if !status.Valid() {
		s.writeError(w, http.StatusUnprocessableEntity, domain.ErrorCodeValidation, "unknown user status")
		return
	}

	user, err := s.app.User.SetStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, userResponse{User: userToDTO(*user)})
}
