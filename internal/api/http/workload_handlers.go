package http

import (
	"net/http"

	"github.com/amanops/fieldforce/internal/workload"
)

type workloadEntryDTO struct {
	User         userDTO `json:"user"`
	PendingCount int     `json:"pending_count"`
	IsImbalanced bool    `json:"is_imbalanced"`
	Percent      float64 `json:"percent"`
}

type workloadReportResponse struct {
	Territory string             `json:"territory"`
	Average   float64            `json:"average"`
	Entries   []workloadEntryDTO `json:"entries"`
}

func workloadToResponse(report *workload.Report) workloadReportResponse {
	resp := workloadReportResponse{
		Territory: report.Territory,
		Average:   report.Average,
		Entries:   make([]workloadEntryDTO, 0, len(report.Entries)),
	}
	for _, e := range report.Entries {
		resp.Entries = append(resp.Entries, workloadEntryDTO{
			User:         userToDTO(e.User),
			PendingCount: e.PendingCount,
			IsImbalanced: e.IsImbalanced,
			Percent:      e.Percent,
		})
	}
	return resp
}

func (s *Server) HandleWorkloadReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.app.Workload.Report(r.Context(), actorFrom(r), r.URL.Query().Get("territory"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, workloadToResponse(report))
}
