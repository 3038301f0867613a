package http

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
)

func NewRouter(server *Server, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", server.HealthCheck)

	r.Get("/merchants/search", server.withActor(server.HandleMerchantSearch))
	r.Get("/merchants/{id}", server.withActor(server.HandleMerchantGet))
	r.Post("/merchants", server.withActor(server.HandleMerchantOnboard))
	r.Post("/merchants/{id}/notes", server.withActor(server.HandleMerchantAddNote))
	r.Post("/merchants/{id}/products", server.withActor(server.HandleMerchantAddProduct))

	r.Get("/tasks", server.withActor(server.HandleTaskList))
	r.Post("/tasks/{id}/complete", server.withActor(server.HandleTaskComplete))

	r.Post("/edit-requests", server.withActor(server.HandleEditRequestCreate))
	r.Get("/edit-requests", server.withActor(server.HandleEditRequestList))
	r.Post("/edit-requests/{id}/approve", server.withActor(server.HandleEditRequestApprove))
	r.Post("/edit-requests/{id}/reject", server.withActor(server.HandleEditRequestReject))

	r.Get("/workload", server.withActor(server.HandleWorkloadReport))

	r.Get("/users", server.withActor(server.HandleUserList))
	r.Post("/users", server.withActor(server.HandleUserCreate))
	r.Post("/users/{id}/status", server.withActor(server.HandleUserSetStatus))

	return r
}
