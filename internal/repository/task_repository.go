package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/xrjjing/moo-todo/internal/model"
)

// TaskFilter narrows List results. Zero-value fields are ignored.
type TaskFilter struct {
	Status     string
	CategoryID string
	Priority   string
	Quadrant   string
	DueDate    string
	Tag        string
	Search     string
	FromDate   string
	ToDate     string
}

// TaskRepository handles CRUD for tasks and their subtasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		if err := r.db.WithContext(ctx).Where("task_id = ?", id).Delete(&model.Subtask{}).Error; err != nil {
			return res.RowsAffected, fmt.Errorf("delete subtasks: %w", err)
		}
	}
	return res.RowsAffected, nil
}

// List returns tasks matching the filter, in manual order. Tag and Search
// are applied in memory: tags live in a JSON column and search spans title
// and description case-insensitively.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.Quadrant != "" {
		q = q.Where("quadrant = ?", filter.Quadrant)
	}
	if filter.DueDate != "" {
		q = q.Where("due_date = ?", filter.DueDate)
	}
	if filter.FromDate != "" {
		q = q.Where("due_date >= ? AND due_date != ''", filter.FromDate)
	}
	if filter.ToDate != "" {
		q = q.Where("due_date <= ? AND due_date != ''", filter.ToDate)
	}

	var tasks []model.Task
	if err := q.Order("order_index ASC, created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if filter.Tag != "" {
		tasks = filterByTag(tasks, filter.Tag)
	}
	if filter.Search != "" {
		tasks = filterBySearch(tasks, filter.Search)
	}
	return tasks, nil
}

// ListRecurring returns tasks carrying a recurrence rule (template tasks).
func (r *TaskRepository) ListRecurring(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("recurrence IS NOT NULL AND recurrence != '' AND recurrence != 'null'").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list recurring tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

// MaxOrderIndex returns the highest order_index, or -1 on an empty table.
func (r *TaskRepository) MaxOrderIndex(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("MAX(order_index)").Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("max order index: %w", err)
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

// SetOrder rewrites order_index for the given ids, in sequence.
func (r *TaskRepository) SetOrder(ctx context.Context, ids []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&model.Task{}).Where("id = ?", id).
				Update("order_index", i).Error; err != nil {
				return fmt.Errorf("reorder task %s: %w", id, err)
			}
		}
		return nil
	})
}

// ClearCategory detaches all tasks from the given category.
func (r *TaskRepository) ClearCategory(ctx context.Context, categoryID string) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("category_id = ?", categoryID).
		Update("category_id", "").Error; err != nil {
		return fmt.Errorf("clear category: %w", err)
	}
	return nil
}

func filterByTag(tasks []model.Task, tag string) []model.Task {
	tag = strings.TrimSpace(tag)
	var out []model.Task
	for _, t := range tasks {
		for _, have := range t.Tags {
			if strings.TrimSpace(have) == tag {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func filterBySearch(tasks []model.Task, search string) []model.Task {
	needle := strings.ToLower(strings.TrimSpace(search))
	var out []model.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}
