package service

import (
	"context"
	"time"

	"github.com/xrjjing/moo-todo/internal/model"
	"github.com/xrjjing/moo-todo/internal/recurrence"
	"github.com/xrjjing/moo-todo/internal/repository"
)

// Stats aggregates task counts by status over an optional date range.
type Stats struct {
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	NotStartedTasks int     `json:"not_started_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
}

// DataStats reports row counts per entity, for the data management screen.
type DataStats struct {
	Tasks      int64 `json:"tasks"`
	Categories int64 `json:"categories"`
	Pomodoros  int64 `json:"pomodoros"`
}

// StatsService builds aggregate figures for the dashboard.
type StatsService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	pomodoroRepo *repository.PomodoroRepository
}

func NewStatsService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository, pomodoroRepo *repository.PomodoroRepository) *StatsService {
	return &StatsService{taskRepo: taskRepo, categoryRepo: categoryRepo, pomodoroRepo: pomodoroRepo}
}

// Overview counts tasks by status. A non-empty from/to restricts the count
// to tasks due inside the range.
func (s *StatsService) Overview(ctx context.Context, from, to string) (Stats, error) {
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{FromDate: from, ToDate: to})
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, task := range tasks {
		stats.TotalTasks++
		switch task.Status {
		case model.StatusCompleted:
			stats.CompletedTasks++
		case model.StatusInProgress:
			stats.InProgressTasks++
		default:
			stats.NotStartedTasks++
		}
	}
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks)
	}
	return stats, nil
}

// Daily counts tasks due on one specific day.
func (s *StatsService) Daily(ctx context.Context, day time.Time) (Stats, error) {
	date := recurrence.FormatDate(day)
	return s.Overview(ctx, date, date)
}

func (s *StatsService) Data(ctx context.Context) (DataStats, error) {
	var stats DataStats
	var err error
	if stats.Tasks, err = s.taskRepo.Count(ctx); err != nil {
		return stats, err
	}
	if stats.Categories, err = s.categoryRepo.Count(ctx); err != nil {
		return stats, err
	}
	if stats.Pomodoros, err = s.pomodoroRepo.Count(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}
