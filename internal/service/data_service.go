package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xrjjing/moo-todo/internal/model"
	"github.com/xrjjing/moo-todo/internal/repository"
)

// SnapshotVersion tags exported snapshots; import refuses other versions.
const SnapshotVersion = "1.0"

// Snapshot is the portable JSON form of the whole database.
type Snapshot struct {
	Version string       `json:"version"`
	Data    SnapshotData `json:"data"`
}

type SnapshotData struct {
	Tasks      []model.Task           `json:"tasks"`
	Categories []model.Category       `json:"categories"`
	Pomodoros  []model.PomodoroRecord `json:"pomodoros"`
	Settings   *model.Settings        `json:"settings,omitempty"`
}

// DataService handles whole-database export and import.
type DataService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	pomodoroRepo *repository.PomodoroRepository
	settings     *SettingsService
}

func NewDataService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository, pomodoroRepo *repository.PomodoroRepository, settings *SettingsService) *DataService {
	return &DataService{taskRepo: taskRepo, categoryRepo: categoryRepo, pomodoroRepo: pomodoroRepo, settings: settings}
}

// Export collects everything into a versioned snapshot.
func (s *DataService) Export(ctx context.Context) (Snapshot, error) {
	snapshot := Snapshot{Version: SnapshotVersion}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{})
	if err != nil {
		return snapshot, err
	}
	snapshot.Data.Tasks = tasks

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return snapshot, err
	}
	snapshot.Data.Categories = categories

	pomodoros, err := s.pomodoroRepo.ListAll(ctx)
	if err != nil {
		return snapshot, err
	}
	snapshot.Data.Pomodoros = pomodoros

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return snapshot, err
	}
	snapshot.Data.Settings = &settings

	return snapshot, nil
}

// ExportJSON renders the snapshot as indented JSON.
func (s *DataService) ExportJSON(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Import merges a snapshot into the database. Records keep their ids, so
// re-importing the same snapshot is idempotent (existing rows are saved
// over, not duplicated).
func (s *DataService) Import(ctx context.Context, snapshot Snapshot) error {
	if snapshot.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %q: %w", snapshot.Version, ErrValidation)
	}

	for i := range snapshot.Data.Categories {
		if err := s.categoryRepo.Save(ctx, &snapshot.Data.Categories[i]); err != nil {
			return err
		}
	}
	for i := range snapshot.Data.Tasks {
		if snapshot.Data.Tasks[i].ID == "" {
			return fmt.Errorf("task without id in snapshot: %w", ErrValidation)
		}
		if err := s.taskRepo.Save(ctx, &snapshot.Data.Tasks[i]); err != nil {
			return err
		}
	}
	for i := range snapshot.Data.Pomodoros {
		if err := s.pomodoroRepo.Save(ctx, &snapshot.Data.Pomodoros[i]); err != nil {
			return err
		}
	}
	if snapshot.Data.Settings != nil {
		encoded, err := json.Marshal(snapshot.Data.Settings)
		if err != nil {
			return fmt.Errorf("encode imported settings: %w", err)
		}
		var patch map[string]any
		if err := json.Unmarshal(encoded, &patch); err != nil {
			return fmt.Errorf("decode imported settings: %w", err)
		}
		if _, err := s.settings.Update(ctx, patch); err != nil {
			return err
		}
	}
	return nil
}

// ImportJSON decodes and imports a snapshot document.
func (s *DataService) ImportJSON(ctx context.Context, data []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode snapshot: %w", ErrValidation)
	}
	return s.Import(ctx, snapshot)
}
