package http

import (
	"context"
	"net/http"

	"github.com/amanops/fieldforce/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// ActorHeader carries the acting user's id. There is no token handling in
// this system; identity is resolved against the user store per request.
const ActorHeader = "X-Actor-ID"

// withActor resolves the acting user and rejects suspended accounts.
func (s *Server) withActor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID := r.Header.Get(ActorHeader)
		if actorID == "" {
			s.writeError(w, http.StatusUnauthorized, domain.ErrorCodeForbidden, "X-Actor-ID header is required")
			return
		}

		actor, err := s.app.User.GetByID(r.Context(), actorID)
		if err != nil {
			s.handleError(w, err)
			return
		}
		if actor.Status == domain.UserStatusSuspended {
			s.writeError(w, http.StatusForbidden, domain.ErrorCodeForbidden, "account is suspended")
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next(w, r.WithContext(ctx))
	}
}

func actorFrom(r *http.Request) *domain.User {
	actor, _ := r.Context().Value(actorKey).(*domain.User)
	return actor
}
