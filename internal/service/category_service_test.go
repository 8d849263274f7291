package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.categories.SeedDefaults(ctx))
	require.NoError(t, f.categories.SeedDefaults(ctx))

	categories, err := f.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 4)
}

func TestCreateCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.categories.Create(ctx, "  ", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	category, err := f.categories.Create(ctx, "Reading", "📖", "#FF0000")
	require.NoError(t, err)
	assert.Equal(t, "Reading", category.Name)
	assert.Equal(t, "📖", category.Icon)
	assert.Equal(t, "#FF0000", category.Color)
}

func TestDeleteCategoryDetachesTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	category, err := f.categories.Create(ctx, "Doomed", "", "")
	require.NoError(t, err)
	task, err := f.tasks.Create(ctx, TaskInput{Title: "orphan-to-be", CategoryID: category.ID})
	require.NoError(t, err)

	require.NoError(t, f.categories.Delete(ctx, category.ID))
	assert.ErrorIs(t, f.categories.Delete(ctx, category.ID), ErrNotFound)

	// The task survives with its category association cleared.
	loaded, err := f.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.CategoryID)
}
