package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrjjing/moo-todo/internal/repository"
)

func TestExportImportRoundTrip(t *testing.T) {
	source := newFixture(t)
	ctx := context.Background()

	require.NoError(t, source.categories.SeedDefaults(ctx))
	task, err := source.tasks.Create(ctx, TaskInput{Title: "take me along", DueDate: "2024-05-01", Tags: []string{"travel"}})
	require.NoError(t, err)
	_, err = source.recur.Attach(ctx, task.ID, map[string]any{"type": "monthly", "month_day": 1})
	require.NoError(t, err)
	_, err = source.settings.Update(ctx, map[string]any{"theme": "dark"})
	require.NoError(t, err)

	data, err := source.data.ExportJSON(ctx)
	require.NoError(t, err)

	target := newFixture(t)
	require.NoError(t, target.data.ImportJSON(ctx, data))

	tasks, err := target.tasks.List(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "take me along", tasks[0].Title)
	assert.Equal(t, []string{"travel"}, tasks[0].Tags)
	require.NotNil(t, tasks[0].Recurrence)
	assert.Equal(t, 1, tasks[0].Recurrence.MonthDay)

	categories, err := target.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 4)

	settings, err := target.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Theme)
}

func TestImportRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.data.ImportJSON(ctx, []byte("not json")), ErrValidation)
	assert.ErrorIs(t, f.data.ImportJSON(ctx, []byte(`{"version":"7.0","data":{}}`)), ErrValidation)
}

func TestImportIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tasks.Create(ctx, TaskInput{Title: "once"})
	require.NoError(t, err)

	data, err := f.data.ExportJSON(ctx)
	require.NoError(t, err)
	require.NoError(t, f.data.ImportJSON(ctx, data))
	require.NoError(t, f.data.ImportJSON(ctx, data))

	tasks, err := f.tasks.List(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestStatsOverview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t1, err := f.tasks.Create(ctx, TaskInput{Title: "done"})
	require.NoError(t, err)
	t2, err := f.tasks.Create(ctx, TaskInput{Title: "busy"})
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, TaskInput{Title: "fresh"})
	require.NoError(t, err)

	completed := "completed"
	_, err = f.tasks.Update(ctx, t1.ID, TaskUpdate{Status: &completed})
	require.NoError(t, err)
	inProgress := "in_progress"
	_, err = f.tasks.Update(ctx, t2.ID, TaskUpdate{Status: &inProgress})
	require.NoError(t, err)

	stats, err := f.stats.Overview(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 1, stats.InProgressTasks)
	assert.Equal(t, 1, stats.NotStartedTasks)
	assert.InDelta(t, 1.0/3.0, stats.CompletionRate, 1e-9)
}

func TestDataStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.categories.SeedDefaults(ctx))
	task, err := f.tasks.Create(ctx, TaskInput{Title: "stat me"})
	require.NoError(t, err)
	_, err = f.pomodoros.Start(ctx, task.ID, 25)
	require.NoError(t, err)

	stats, err := f.stats.Data(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Tasks)
	assert.EqualValues(t, 4, stats.Categories)
	assert.EqualValues(t, 1, stats.Pomodoros)
}
