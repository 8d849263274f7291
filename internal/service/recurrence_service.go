package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/xrjjing/moo-todo/internal/model"
	"github.com/xrjjing/moo-todo/internal/recurrence"
	"github.com/xrjjing/moo-todo/internal/repository"
)

// RecurrenceService owns the recurring-task engine: attaching and clearing
// rules on template tasks and materializing due occurrences.
type RecurrenceService struct {
	taskRepo *repository.TaskRepository
	log      zerolog.Logger
}

func NewRecurrenceService(taskRepo *repository.TaskRepository, log zerolog.Logger) *RecurrenceService {
	return &RecurrenceService{taskRepo: taskRepo, log: log}
}

// Attach sets a repetition rule on a task. The raw rule is normalized, never
// rejected: a malformed rule degrades to an inert one that simply never
// schedules. The task must exist and carry a due date; the generation
// counter restarts at zero even when replacing a previous rule.
func (s *RecurrenceService) Attach(ctx context.Context, taskID string, raw map[string]any) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
		}
		return nil, err
	}
	if task.DueDate == "" {
		return nil, fmt.Errorf("task %s has no due date: %w", taskID, ErrValidation)
	}

	rule := recurrence.Normalize(raw)
	rule.GeneratedCount = 0
	task.Recurrence = &rule

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Detach clears the repetition rule, leaving every other field untouched.
// It is idempotent: a missing task or an already-bare task is a no-op.
func (s *RecurrenceService) Detach(ctx context.Context, taskID string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if task.Recurrence == nil {
		return task, nil
	}

	task.Recurrence = nil
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// RunDuePass walks all template tasks and, for each one whose due date is at
// or before asOf and whose rule's end condition still allows it, materializes
// exactly one occurrence: a plain copy dated at the due date that just came
// up. The template's own due date advances one cadence step and its
// generation counter increments, so a backlog of missed passes never floods
// the list with catch-up occurrences.
//
// Store failures on one task are logged and skipped; the pass continues.
func (s *RecurrenceService) RunDuePass(ctx context.Context, asOf time.Time) ([]model.Task, error) {
	templates, err := s.taskRepo.ListRecurring(ctx)
	if err != nil {
		return nil, err
	}

	var created []model.Task
	for i := range templates {
		template := &templates[i]

		occurrence, ok := s.generateOne(template, asOf)
		if !ok {
			continue
		}

		if err := s.taskRepo.Create(ctx, &occurrence); err != nil {
			s.log.Error().Err(err).Str("task_id", template.ID).Msg("skip recurring task: create occurrence")
			continue
		}
		if err := s.taskRepo.Save(ctx, template); err != nil {
			s.log.Error().Err(err).Str("task_id", template.ID).Msg("skip recurring task: advance template")
			continue
		}

		s.log.Debug().
			Str("task_id", template.ID).
			Str("occurrence_due", occurrence.DueDate).
			Str("next_due", template.DueDate).
			Msg("materialized occurrence")
		created = append(created, occurrence)
	}
	return created, nil
}

// generateOne decides due-ness for a single template and, when due, returns
// the occurrence to create while mutating the template's rule state in
// memory. Corrupt state (no due date, inert rule, unparseable date) is not
// an error; the task is simply not due.
func (s *RecurrenceService) generateOne(template *model.Task, asOf time.Time) (model.Task, bool) {
	if template.Recurrence == nil || !template.Recurrence.Active() || template.DueDate == "" {
		return model.Task{}, false
	}

	due, err := recurrence.ParseDate(template.DueDate)
	if err != nil {
		s.log.Warn().Str("task_id", template.ID).Str("due_date", template.DueDate).Msg("skip recurring task: bad due date")
		return model.Task{}, false
	}
	if due.After(asOf) {
		return model.Task{}, false
	}
	if !recurrence.ShouldGenerate(*template.Recurrence, due) {
		return model.Task{}, false
	}

	occurrence := newOccurrence(template)

	template.DueDate = recurrence.FormatDate(recurrence.NextOccurrence(*template.Recurrence, due))
	template.Recurrence.GeneratedCount++
	return occurrence, true
}

// newOccurrence copies the template into a concrete, non-recurring task
// dated at the template's current due date.
func newOccurrence(template *model.Task) model.Task {
	return model.Task{
		ID:           uuid.NewString(),
		Title:        template.Title,
		Description:  template.Description,
		Status:       model.StatusNotStarted,
		Priority:     template.Priority,
		Quadrant:     template.Quadrant,
		CategoryID:   template.CategoryID,
		DueDate:      template.DueDate,
		Tags:         append([]string(nil), template.Tags...),
		ParentTaskID: template.ID,
	}
}
