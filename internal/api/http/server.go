package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/service"
)

type Server struct {
	app    *service.App
	logger *slog.Logger
}

func NewServer(app *service.App, logger *slog.Logger) *Server {
	return &Server{
		app:    app,
		logger: logger,
	}
}

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code domain.ErrorCode, message string) {
	s.writeJSON(w, status, errorResponse{
		Error: apiError{
			Code:    string(code),
			Message: message,
		},
	})
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var de *domain.DomainError
	if errors.As(err, &de) {
		status := http.StatusInternalServerError

		switch de.Code {
		case domain.ErrorCodeValidation:
			status = http.StatusUnprocessableEntity
		case domain.ErrorCodeForbidden:
			status = http.StatusForbidden
		case domain.ErrorCodeNotFound:
			status = http.StatusNotFound
		case domain.ErrorCodeNotReviewable,
			domain.ErrorCodeUserExists,
			domain.ErrorCodeDuplicateHolding,
			domain.ErrorCodeSuperAdminImmutable:
			status = http.StatusConflict
		}

		s.writeJSON(w, status, errorResponse{
			Error: apiError{
				Code:    string(de.Code),
				Message: de.Message,
				Fields:  de.Fields,
			},
		})
		return
	}

	if errors.Is(err, sql.ErrNoRows) {
		s.writeError(w, http.StatusNotFound, domain.ErrorCodeNotFound, "resource not found")
		return
	}

	s.logger.Error("unexpected error", "error", err)
	s.writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
