package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amanops/fieldforce/internal/domain"
	"github.com/amanops/fieldforce/internal/service"
)

type taskDTO struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	MerchantID   string    `json:"merchant_id"`
	AssignedToID string    `json:"assigned_to_id"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	DueDate      time.Time `json:"due_date"`
	CreatedAt    time.Time `json:"created_at"`
	Outcome      string    `json:"outcome,omitempty"`
}

func taskToDTO(t domain.Task) taskDTO {
	return taskDTO{
		ID:           t.ID,
		Type:         string(t.Type),
		MerchantID:   t.MerchantID,
		AssignedToID: t.AssignedToID,
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		DueDate:      t.DueDate,
		CreatedAt:    t.CreatedAt,
		Outcome:      string(t.Outcome),
	}
}

type taskListResponse struct {
	Tasks []taskDTO `json:"tasks"`
}

func (s *Server) HandleTaskList(w http.ResponseWriter, r *http.Request) {
	filter, ok := service.ParseTaskFilter(r.URL.Query().Get("filter"))
	if !ok {
		s.writeError(w, http.StatusUnprocessableEntity, domain.ErrorCodeValidation, "unknown task filter")
		return
	}

	tasks, err := s.app.Task.ListTasks(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := taskListResponse{Tasks: make([]taskDTO, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, taskToDTO(t))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type completeTaskRequest struct {
	Outcome string `json:"outcome"`
}

type taskResponse struct {
	Task taskDTO `json:"task"`
}

func (s *Server) HandleTaskComplete(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req completeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "invalid JSON body")
		return
	}

	task, err := s.app.Task.CompleteTask(r.Context(), chi.URLParam(r, "id"), domain.TaskOutcome(req.Outcome))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, taskResponse{Task: taskToDTO(*task)})
}
