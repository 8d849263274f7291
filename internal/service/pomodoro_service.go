package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xrjjing/moo-todo/internal/model"
	"github.com/xrjjing/moo-todo/internal/recurrence"
	"github.com/xrjjing/moo-todo/internal/repository"
)

// PomodoroService manages focus sessions and the per-task counters they feed.
type PomodoroService struct {
	repo     *repository.PomodoroRepository
	taskRepo *repository.TaskRepository
}

func NewPomodoroService(repo *repository.PomodoroRepository, taskRepo *repository.TaskRepository) *PomodoroService {
	return &PomodoroService{repo: repo, taskRepo: taskRepo}
}

// Start opens a session against an existing task. Duration is minutes;
// values below one fall back to the classic 25.
func (s *PomodoroService) Start(ctx context.Context, taskID string, duration int) (*model.PomodoroRecord, error) {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
		}
		return nil, err
	}
	if duration < 1 {
		duration = 25
	}

	record := model.PomodoroRecord{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		StartedAt: time.Now().Format(time.RFC3339),
		Duration:  duration,
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Complete closes a session and bumps the owning task's pomodoro count.
func (s *PomodoroService) Complete(ctx context.Context, id string) (*model.PomodoroRecord, error) {
	record, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Completed {
		return record, nil
	}

	record.Completed = true
	record.EndedAt = time.Now().Format(time.RFC3339)
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	if task, err := s.taskRepo.FindByID(ctx, record.TaskID); err == nil {
		task.PomodoroCount++
		if err := s.taskRepo.Save(ctx, task); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// Cancel discards an unfinished session; the task counter is untouched.
func (s *PomodoroService) Cancel(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("pomodoro %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *PomodoroService) ListByTask(ctx context.Context, taskID string) ([]model.PomodoroRecord, error) {
	return s.repo.ListByTask(ctx, taskID)
}

// TodayCount counts sessions completed since the local midnight of today.
func (s *PomodoroService) TodayCount(ctx context.Context, today time.Time) (int64, error) {
	return s.repo.CountCompletedSince(ctx, recurrence.FormatDate(today))
}

func (s *PomodoroService) get(ctx context.Context, id string) (*model.PomodoroRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pomodoro %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return record, nil
}
