package service

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/xrjjing/moo-todo/internal/repository"
)

// newTestDB opens a throwaway SQLite database under t.TempDir.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

type fixture struct {
	tasks      *TaskService
	categories *CategoryService
	recur      *RecurrenceService
	pomodoros  *PomodoroService
	settings   *SettingsService
	stats      *StatsService
	data       *DataService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := newTestDB(t)

	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	pomodoroRepo := repository.NewPomodoroRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	settings := NewSettingsService(settingRepo)
	return fixture{
		tasks:      NewTaskService(taskRepo, subtaskRepo),
		categories: NewCategoryService(categoryRepo, taskRepo),
		recur:      NewRecurrenceService(taskRepo, zerolog.Nop()),
		pomodoros:  NewPomodoroService(pomodoroRepo, taskRepo),
		settings:   settings,
		stats:      NewStatsService(taskRepo, categoryRepo, pomodoroRepo),
		data:       NewDataService(taskRepo, categoryRepo, pomodoroRepo, settings),
	}
}
