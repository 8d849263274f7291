package api

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

// ----- Categories -----

type categoryRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	name, icon, color := "", "", ""
	if req.Name != nil {
		name = *req.Name
	}
	if req.Icon != nil {
		icon = *req.Icon
	}
	if req.Color != nil {
		color = *req.Color
	}

	category, err := s.categories.Create(r.Context(), name, icon, color)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, category)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, categories)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	category, err := s.categories.Update(r.Context(), mux.Vars(r)["id"], req.Name, req.Icon, req.Color)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

// ----- Pomodoro -----

type startPomodoroRequest struct {
	TaskID   string `json:"task_id"`
	Duration int    `json:"duration"`
}

func (s *Server) handleStartPomodoro(w http.ResponseWriter, r *http.Request) {
	var req startPomodoroRequest
	if err := decode(r, &req); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	record, err := s.pomodoros.Start(r.Context(), req.TaskID, req.Duration)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, record)
}

func (s *Server) handleCompletePomodoro(w http.ResponseWriter, r *http.Request) {
	record, err := s.pomodoros.Complete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, record)
}

func (s *Server) handleCancelPomodoro(w http.ResponseWriter, r *http.Request) {
	if err := s.pomodoros.Cancel(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

// ----- Settings -----

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := decode(r, &patch); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	settings, err := s.settings.Update(r.Context(), patch)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, settings)
}

// ----- Stats -----

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := s.stats.Overview(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, stats)
}

func (s *Server) handleDataStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Data(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, stats)
}

// ----- Export / import -----

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.data.ExportJSON(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="mootodo-export.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.Error().Err(err).Msg("write export")
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "read body"})
		return
	}
	if err := s.data.ImportJSON(r.Context(), body); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]bool{"success": true})
}
