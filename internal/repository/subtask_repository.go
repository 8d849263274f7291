package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xrjjing/moo-todo/internal/model"
)

// SubtaskRepository handles CRUD for subtasks.
type SubtaskRepository struct {
	db *gorm.DB
}

func NewSubtaskRepository(db *gorm.DB) *SubtaskRepository {
	return &SubtaskRepository{db: db}
}

func (r *SubtaskRepository) Create(ctx context.Context, subtask *model.Subtask) error {
	if err := r.db.WithContext(ctx).Create(subtask).Error; err != nil {
		return fmt.Errorf("create subtask: %w", err)
	}
	return nil
}

func (r *SubtaskRepository) FindByID(ctx context.Context, taskID, id string) (*model.Subtask, error) {
	var subtask model.Subtask
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND id = ?", taskID, id).
		First(&subtask).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (r *SubtaskRepository) ListByTask(ctx context.Context, taskID string) ([]model.Subtask, error) {
	var subtasks []model.Subtask
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("order_index ASC").
		Find(&subtasks).Error; err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	return subtasks, nil
}

func (r *SubtaskRepository) Save(ctx context.Context, subtask *model.Subtask) error {
	if err := r.db.WithContext(ctx).Save(subtask).Error; err != nil {
		return fmt.Errorf("save subtask: %w", err)
	}
	return nil
}

func (r *SubtaskRepository) Delete(ctx context.Context, taskID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("task_id = ? AND id = ?", taskID, id).
		Delete(&model.Subtask{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete subtask: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// SetOrder rewrites order_index for the given subtask ids, in sequence.
func (r *SubtaskRepository) SetOrder(ctx context.Context, taskID string, ids []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&model.Subtask{}).
				Where("task_id = ? AND id = ?", taskID, id).
				Update("order_index", i).Error; err != nil {
				return fmt.Errorf("reorder subtask %s: %w", id, err)
			}
		}
		return nil
	})
}
