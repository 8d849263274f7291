package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/xrjjing/moo-todo/internal/repository"
	"github.com/xrjjing/moo-todo/internal/service"
)

type createTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	CategoryID  string   `json:"category_id"`
	DueDate     string   `json:"due_date"`
	Tags        []string `json:"tags"`
	Quadrant    string   `json:"quadrant"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decode(r, &req); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	task, err := s.tasks.Create(r.Context(), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		CategoryID:  req.CategoryID,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		Quadrant:    req.Quadrant,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.TaskFilter{
		Status:     q.Get("status"),
		CategoryID: q.Get("category_id"),
		Priority:   q.Get("priority"),
		Quadrant:   q.Get("quadrant"),
		DueDate:    q.Get("due_date"),
		Tag:        q.Get("tag"),
		Search:     q.Get("search"),
		FromDate:   q.Get("from"),
		ToDate:     q.Get("to"),
	}

	tasks, err := s.tasks.List(r.Context(), filter)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, tasks)
}

func (s *Server) handleTodayTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListToday(r.Context(), time.Now())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, tasks)
}

func (s *Server) handleAllTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tasks.AllTags(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, tags)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, task)
}

type updateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	Priority    *string   `json:"priority"`
	Quadrant    *string   `json:"quadrant"`
	CategoryID  *string   `json:"category_id"`
	DueDate     *string   `json:"due_date"`
	Tags        *[]string `json:"tags"`
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decode(r, &req); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	task, err := s.tasks.Update(r.Context(), mux.Vars(r)["id"], service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Quadrant:    req.Quadrant,
		CategoryID:  req.CategoryID,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleReorderTasks(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decode(r, &req); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := s.tasks.Reorder(r.Context(), req.IDs); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

// ----- Subtasks -----

type subtaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (s *Server) handleAddSubtask(w http.ResponseWriter, r *http.Request) {
	var req subtaskRequest
	if err := decode(r, &req); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	title := ""
	if req.Title != nil {
		title = *req.Title
	}

	subtask, err := s.tasks.AddSubtask(r.Context(), mux.Vars(r)["id"], title)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, subtask)
}

func (s *Server) handleUpdateSubtask(w http.ResponseWriter, r *http.Request) {
	var req subtaskRequest
	if err := decode(r, &req); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	vars := mux.Vars(r)
	subtask, err := s.tasks.UpdateSubtask(r.Context(), vars["id"], vars["subtaskID"], req.Title, req.Completed)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, subtask)
}

func (s *Server) handleToggleSubtask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subtask, err := s.tasks.ToggleSubtask(r.Context(), vars["id"], vars["subtaskID"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, subtask)
}

func (s *Server) handleDeleteSubtask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.tasks.DeleteSubtask(r.Context(), vars["id"], vars["subtaskID"]); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleReorderSubtasks(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decode(r, &req); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := s.tasks.ReorderSubtasks(r.Context(), mux.Vars(r)["id"], req.IDs); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleSubtaskProgress(w http.ResponseWriter, r *http.Request) {
	completed, total, err := s.tasks.SubtaskProgress(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]int{"completed": completed, "total": total})
}
