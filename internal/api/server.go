package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/xrjjing/moo-todo/internal/service"
)

// Server is the thin HTTP adapter the UI process talks to. Handlers decode,
// call a service, encode; business rules live in the services.
type Server struct {
	tasks      *service.TaskService
	categories *service.CategoryService
	recur      *service.RecurrenceService
	pomodoros  *service.PomodoroService
	settings   *service.SettingsService
	stats      *service.StatsService
	data       *service.DataService
	log        zerolog.Logger
}

func NewServer(
	tasks *service.TaskService,
	categories *service.CategoryService,
	recur *service.RecurrenceService,
	pomodoros *service.PomodoroService,
	settings *service.SettingsService,
	stats *service.StatsService,
	data *service.DataService,
	log zerolog.Logger,
) *Server {
	return &Server{
		tasks:      tasks,
		categories: categories,
		recur:      recur,
		pomodoros:  pomodoros,
		settings:   settings,
		stats:      stats,
		data:       data,
		log:        log,
	}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/tags", s.handleAllTags).Methods(http.MethodGet)
	api.HandleFunc("/tasks/today", s.handleTodayTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks/reorder", s.handleReorderTasks).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", s.handleGetTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", s.handleUpdateTask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}", s.handleDeleteTask).Methods(http.MethodDelete)

	api.HandleFunc("/tasks/{id}/subtasks", s.handleAddSubtask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}/subtasks/reorder", s.handleReorderSubtasks).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}/subtasks/progress", s.handleSubtaskProgress).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}/subtasks/{subtaskID}", s.handleUpdateSubtask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}/subtasks/{subtaskID}", s.handleDeleteSubtask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id}/subtasks/{subtaskID}/toggle", s.handleToggleSubtask).Methods(http.MethodPost)

	api.HandleFunc("/tasks/{id}/recurrence", s.handleAttachRecurrence).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}/recurrence", s.handleDetachRecurrence).Methods(http.MethodDelete)
	api.HandleFunc("/recurrence/run", s.handleRunDuePass).Methods(http.MethodPost)

	api.HandleFunc("/categories", s.handleCreateCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", s.handleUpdateCategory).Methods(http.MethodPatch)
	api.HandleFunc("/categories/{id}", s.handleDeleteCategory).Methods(http.MethodDelete)

	api.HandleFunc("/pomodoros", s.handleStartPomodoro).Methods(http.MethodPost)
	api.HandleFunc("/pomodoros/{id}/complete", s.handleCompletePomodoro).Methods(http.MethodPost)
	api.HandleFunc("/pomodoros/{id}", s.handleCancelPomodoro).Methods(http.MethodDelete)

	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handleUpdateSettings).Methods(http.MethodPatch)

	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/stats/data", s.handleDataStats).Methods(http.MethodGet)

	api.HandleFunc("/data/export", s.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/data/import", s.handleImport).Methods(http.MethodPost)

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

// respondError maps service error kinds onto HTTP statuses.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		s.respond(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		s.respond(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.log.Error().Err(err).Msg("internal error")
		s.respond(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decode(r *http.Request, into any) error {
	return json.NewDecoder(r.Body).Decode(into)
}
