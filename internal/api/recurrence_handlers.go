package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/xrjjing/moo-todo/internal/model"
	"github.com/xrjjing/moo-todo/internal/recurrence"
)

func (s *Server) handleAttachRecurrence(w http.ResponseWriter, r *http.Request) {
	// The raw rule stays an open map: the normalizer owns coercion, the
	// adapter must not reject shapes the engine can degrade safely.
	var raw map[string]any
	if err := decode(r, &raw); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	task, err := s.recur.Attach(r.Context(), mux.Vars(r)["id"], raw)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, task)
}

func (s *Server) handleDetachRecurrence(w http.ResponseWriter, r *http.Request) {
	task, err := s.recur.Detach(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	if task == nil {
		// Missing task: detaching is idempotent, nothing to report.
		s.respond(w, http.StatusNoContent, nil)
		return
	}
	s.respond(w, http.StatusOK, task)
}

func (s *Server) handleRunDuePass(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := recurrence.ParseDate(raw)
		if err != nil {
			s.respond(w, http.StatusBadRequest, errorResponse{Error: "as_of must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	created, err := s.recur.RunDuePass(r.Context(), asOf)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if created == nil {
		created = []model.Task{}
	}
	s.respond(w, http.StatusOK, created)
}
