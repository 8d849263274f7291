package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xrjjing/moo-todo/internal/model"
)

// PomodoroRepository handles pomodoro session records.
type PomodoroRepository struct {
	db *gorm.DB
}

func NewPomodoroRepository(db *gorm.DB) *PomodoroRepository {
	return &PomodoroRepository{db: db}
}

func (r *PomodoroRepository) Create(ctx context.Context, record *model.PomodoroRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create pomodoro: %w", err)
	}
	return nil
}

func (r *PomodoroRepository) FindByID(ctx context.Context, id string) (*model.PomodoroRecord, error) {
	var record model.PomodoroRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PomodoroRepository) ListByTask(ctx context.Context, taskID string) ([]model.PomodoroRecord, error) {
	var records []model.PomodoroRecord
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("started_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list pomodoros: %w", err)
	}
	return records, nil
}

func (r *PomodoroRepository) ListAll(ctx context.Context) ([]model.PomodoroRecord, error) {
	var records []model.PomodoroRecord
	if err := r.db.WithContext(ctx).Order("started_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list pomodoros: %w", err)
	}
	return records, nil
}

func (r *PomodoroRepository) Save(ctx context.Context, record *model.PomodoroRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("save pomodoro: %w", err)
	}
	return nil
}

func (r *PomodoroRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PomodoroRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete pomodoro: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// CountCompletedSince counts completed sessions started at or after the
// given RFC 3339 timestamp prefix (a bare date works too, string order).
func (r *PomodoroRepository) CountCompletedSince(ctx context.Context, since string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.PomodoroRecord{}).
		Where("completed = ? AND started_at >= ?", true, since).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count pomodoros: %w", err)
	}
	return n, nil
}

func (r *PomodoroRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.PomodoroRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count pomodoros: %w", err)
	}
	return n, nil
}
