package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xrjjing/moo-todo/internal/model"
	"github.com/xrjjing/moo-todo/internal/repository"
)

// CategoryService provides helpers around categories.
type CategoryService struct {
	repo     *repository.CategoryRepository
	taskRepo *repository.TaskRepository
}

func NewCategoryService(repo *repository.CategoryRepository, taskRepo *repository.TaskRepository) *CategoryService {
	return &CategoryService{repo: repo, taskRepo: taskRepo}
}

// SeedDefaults inserts the stock categories on a fresh database.
func (s *CategoryService) SeedDefaults(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	defaults := []model.Category{
		{Name: "Work", Icon: "💼", Color: "#A8D8EA"},
		{Name: "Study", Icon: "📚", Color: "#C7CEEA"},
		{Name: "Life", Icon: "🏠", Color: "#B5EAD7"},
		{Name: "Health", Icon: "💪", Color: "#FFDAC1"},
	}
	for i := range defaults {
		defaults[i].ID = uuid.NewString()
		defaults[i].OrderIndex = i
		if err := s.repo.Create(ctx, &defaults[i]); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, name, icon, color string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	category := model.Category{
		ID:         uuid.NewString(),
		Name:       name,
		OrderIndex: len(existing),
	}
	if icon != "" {
		category.Icon = icon
	}
	if color != "" {
		category.Color = color
	}

	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id string, name, icon, color *string) (*model.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("category name is required: %w", ErrValidation)
		}
		category.Name = trimmed
	}
	if icon != nil {
		category.Icon = *icon
	}
	if color != nil {
		category.Color = *color
	}

	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category and detaches its tasks; the tasks survive.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return s.taskRepo.ClearCategory(ctx, id)
}
