package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xrjjing/moo-todo/internal/model"
	"github.com/xrjjing/moo-todo/internal/recurrence"
	"github.com/xrjjing/moo-todo/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	CategoryID  string
	DueDate     string
	Tags        []string
	Quadrant    string
}

// TaskUpdate carries a partial update; nil fields are left alone.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Quadrant    *string
	CategoryID  *string
	DueDate     *string
	Tags        *[]string
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo    *repository.TaskRepository
	subtaskRepo *repository.SubtaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, subtaskRepo *repository.SubtaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, subtaskRepo: subtaskRepo}
}

func (s *TaskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", ErrValidation)
	}
	if input.DueDate != "" {
		if _, err := recurrence.ParseDate(input.DueDate); err != nil {
			return nil, fmt.Errorf("due date %q is not YYYY-MM-DD: %w", input.DueDate, ErrValidation)
		}
	}

	maxOrder, err := s.taskRepo.MaxOrderIndex(ctx)
	if err != nil {
		return nil, err
	}

	task := model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Status:      model.StatusNotStarted,
		Priority:    normalizePriority(input.Priority),
		Quadrant:    normalizeQuadrant(input.Quadrant),
		CategoryID:  input.CategoryID,
		DueDate:     input.DueDate,
		Tags:        cleanTags(input.Tags),
		OrderIndex:  maxOrder + 1,
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	return s.taskRepo.List(ctx, filter)
}

// ListToday returns tasks due on the given day.
func (s *TaskService) ListToday(ctx context.Context, today time.Time) ([]model.Task, error) {
	return s.taskRepo.List(ctx, repository.TaskFilter{DueDate: recurrence.FormatDate(today)})
}

func (s *TaskService) ListByDateRange(ctx context.Context, from, to string) ([]model.Task, error) {
	return s.taskRepo.List(ctx, repository.TaskFilter{FromDate: from, ToDate: to})
}

func (s *TaskService) Update(ctx context.Context, id string, update TaskUpdate) (*model.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("title is required: %w", ErrValidation)
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		applyStatus(task, *update.Status)
	}
	if update.Priority != nil {
		task.Priority = normalizePriority(*update.Priority)
	}
	if update.Quadrant != nil {
		task.Quadrant = normalizeQuadrant(*update.Quadrant)
	}
	if update.CategoryID != nil {
		task.CategoryID = *update.CategoryID
	}
	if update.DueDate != nil {
		due := *update.DueDate
		if due != "" {
			if _, err := recurrence.ParseDate(due); err != nil {
				return nil, fmt.Errorf("due date %q is not YYYY-MM-DD: %w", due, ErrValidation)
			}
		}
		task.DueDate = due
	}
	if update.Tags != nil {
		task.Tags = cleanTags(*update.Tags)
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	n, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *TaskService) Reorder(ctx context.Context, ids []string) error {
	return s.taskRepo.SetOrder(ctx, ids)
}

// AllTags returns every tag in use: trimmed, deduplicated, sorted.
func (s *TaskService) AllTags(ctx context.Context) ([]string, error) {
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	tags := []string{}
	for _, task := range tasks {
		for _, tag := range task.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// ListByTag returns tasks carrying the tag; a blank tag matches nothing.
func (s *TaskService) ListByTag(ctx context.Context, tag string) ([]model.Task, error) {
	if strings.TrimSpace(tag) == "" {
		return []model.Task{}, nil
	}
	return s.taskRepo.List(ctx, repository.TaskFilter{Tag: tag})
}

// ----- Subtasks -----

func (s *TaskService) AddSubtask(ctx context.Context, taskID, title string) (*model.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("subtask title is required: %w", ErrValidation)
	}
	if _, err := s.Get(ctx, taskID); err != nil {
		return nil, err
	}

	existing, err := s.subtaskRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	subtask := model.Subtask{
		ID:         uuid.NewString(),
		TaskID:     taskID,
		Title:      title,
		OrderIndex: len(existing),
	}
	if err := s.subtaskRepo.Create(ctx, &subtask); err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (s *TaskService) UpdateSubtask(ctx context.Context, taskID, subtaskID string, title *string, completed *bool) (*model.Subtask, error) {
	subtask, err := s.getSubtask(ctx, taskID, subtaskID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, fmt.Errorf("subtask title is required: %w", ErrValidation)
		}
		subtask.Title = trimmed
	}
	if completed != nil {
		subtask.Completed = *completed
	}

	if err := s.subtaskRepo.Save(ctx, subtask); err != nil {
		return nil, err
	}
	return subtask, nil
}

func (s *TaskService) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (*model.Subtask, error) {
	subtask, err := s.getSubtask(ctx, taskID, subtaskID)
	if err != nil {
		return nil, err
	}

	subtask.Completed = !subtask.Completed
	if err := s.subtaskRepo.Save(ctx, subtask); err != nil {
		return nil, err
	}
	return subtask, nil
}

func (s *TaskService) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	n, err := s.subtaskRepo.Delete(ctx, taskID, subtaskID)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("subtask %s: %w", subtaskID, ErrNotFound)
	}
	return nil
}

func (s *TaskService) ReorderSubtasks(ctx context.Context, taskID string, ids []string) error {
	return s.subtaskRepo.SetOrder(ctx, taskID, ids)
}

// SubtaskProgress reports completed vs. total subtasks for a task.
func (s *TaskService) SubtaskProgress(ctx context.Context, taskID string) (completed, total int, err error) {
	subtasks, err := s.subtaskRepo.ListByTask(ctx, taskID)
	if err != nil {
		return 0, 0, err
	}
	for _, sub := range subtasks {
		if sub.Completed {
			completed++
		}
	}
	return completed, len(subtasks), nil
}

func (s *TaskService) getSubtask(ctx context.Context, taskID, subtaskID string) (*model.Subtask, error) {
	subtask, err := s.subtaskRepo.FindByID(ctx, taskID, subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subtask %s: %w", subtaskID, ErrNotFound)
		}
		return nil, err
	}
	return subtask, nil
}

// ----- Helpers -----

// applyStatus sets the status, stamping completed_at on completion and
// clearing it when the task reopens. Unknown statuses are ignored.
func applyStatus(task *model.Task, status string) {
	if !slices.Contains(model.ValidStatuses, status) {
		return
	}
	if status == model.StatusCompleted && task.Status != model.StatusCompleted {
		task.CompletedAt = time.Now().Format(time.RFC3339)
	}
	if status != model.StatusCompleted {
		task.CompletedAt = ""
	}
	task.Status = status
}

func normalizePriority(priority string) string {
	if slices.Contains(model.ValidPriorities, priority) {
		return priority
	}
	return model.PriorityMedium
}

func normalizeQuadrant(quadrant string) string {
	if slices.Contains(model.ValidQuadrants, quadrant) {
		return quadrant
	}
	return ""
}

func cleanTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
