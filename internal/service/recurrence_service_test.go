package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrjjing/moo-todo/internal/recurrence"
)

func asOf(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := recurrence.ParseDate(s)
	require.NoError(t, err)
	return parsed
}

func TestAttachRequiresDueDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "no deadline"})
	require.NoError(t, err)

	_, err = f.recur.Attach(ctx, task.ID, map[string]any{"type": "daily"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAttachUnknownTask(t *testing.T) {
	f := newFixture(t)

	_, err := f.recur.Attach(context.Background(), "nope", map[string]any{"type": "daily"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttachNormalizesAndResetsCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "weekly", DueDate: "2024-01-01"})
	require.NoError(t, err)

	attached, err := f.recur.Attach(ctx, task.ID, map[string]any{
		"type":     "weekly",
		"interval": 0,
		"weekdays": []any{4.0, 0.0, 9.0, 0.0},
	})
	require.NoError(t, err)
	require.NotNil(t, attached.Recurrence)
	assert.Equal(t, recurrence.TypeWeekly, attached.Recurrence.Type)
	assert.Equal(t, 1, attached.Recurrence.Interval)
	assert.Equal(t, []int{0, 4}, attached.Recurrence.Weekdays)
	assert.Zero(t, attached.Recurrence.GeneratedCount)

	// Replacing the rule restarts the generation counter even after passes.
	_, err = f.recur.RunDuePass(ctx, asOf(t, "2024-01-02"))
	require.NoError(t, err)
	reattached, err := f.recur.Attach(ctx, task.ID, map[string]any{"type": "daily"})
	require.NoError(t, err)
	assert.Zero(t, reattached.Recurrence.GeneratedCount)
}

func TestAttachMalformedRuleIsInertNotError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "odd rule", DueDate: "2024-01-01"})
	require.NoError(t, err)

	attached, err := f.recur.Attach(ctx, task.ID, map[string]any{"type": "fortnightly"})
	require.NoError(t, err)
	require.NotNil(t, attached.Recurrence)
	assert.False(t, attached.Recurrence.Active())

	// An inert rule never materializes anything.
	created, err := f.recur.RunDuePass(ctx, asOf(t, "2099-01-01"))
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestDetachIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "detach me", DueDate: "2024-01-01"})
	require.NoError(t, err)
	_, err = f.recur.Attach(ctx, task.ID, map[string]any{"type": "daily"})
	require.NoError(t, err)

	detached, err := f.recur.Detach(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.Recurrence)
	assert.Equal(t, "2024-01-01", detached.DueDate, "detach must not touch the due date")

	// Second detach and detach of a missing id are both no-ops.
	again, err := f.recur.Detach(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, again.Recurrence)

	missing, err := f.recur.Detach(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRunDuePassMaterializesOccurrence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{
		Title:    "water plants",
		DueDate:  "2024-01-01",
		Tags:     []string{"home"},
		Priority: "high",
	})
	require.NoError(t, err)
	_, err = f.recur.Attach(ctx, task.ID, map[string]any{"type": "daily", "interval": 1})
	require.NoError(t, err)

	created, err := f.recur.RunDuePass(ctx, asOf(t, "2024-01-01"))
	require.NoError(t, err)
	require.Len(t, created, 1)

	occurrence := created[0]
	assert.Equal(t, "water plants", occurrence.Title)
	assert.Equal(t, "2024-01-01", occurrence.DueDate, "occurrence carries the date that came due")
	assert.Equal(t, task.ID, occurrence.ParentTaskID)
	assert.Nil(t, occurrence.Recurrence)
	assert.Equal(t, []string{"home"}, occurrence.Tags)
	assert.Equal(t, "high", occurrence.Priority)

	template, err := f.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", template.DueDate)
	assert.Equal(t, 1, template.Recurrence.GeneratedCount)
}

func TestRunDuePassAtMostOnePerTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "daily drill", DueDate: "2024-01-01"})
	require.NoError(t, err)
	_, err = f.recur.Attach(ctx, task.ID, map[string]any{"type": "daily", "interval": 1})
	require.NoError(t, err)

	// Nine days of backlog still yield exactly one occurrence, and the
	// template advances by exactly one cadence step.
	created, err := f.recur.RunDuePass(ctx, asOf(t, "2024-01-10"))
	require.NoError(t, err)
	assert.Len(t, created, 1)

	template, err := f.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", template.DueDate)
	assert.Equal(t, 1, template.Recurrence.GeneratedCount)
}

func TestRunDuePassSkipsFutureTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "later", DueDate: "2024-06-01"})
	require.NoError(t, err)
	_, err = f.recur.Attach(ctx, task.ID, map[string]any{"type": "monthly"})
	require.NoError(t, err)

	created, err := f.recur.RunDuePass(ctx, asOf(t, "2024-01-01"))
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestRunDuePassHonorsCountLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "twice only", DueDate: "2024-01-01"})
	require.NoError(t, err)
	_, err = f.recur.Attach(ctx, task.ID, map[string]any{
		"type":      "daily",
		"end_type":  "count",
		"end_count": 2,
	})
	require.NoError(t, err)

	total := 0
	for day := 1; day <= 5; day++ {
		created, err := f.recur.RunDuePass(ctx, asOf(t, "2024-01-10"))
		require.NoError(t, err)
		total += len(created)
	}
	assert.Equal(t, 2, total)

	// The rule stays attached after the boundary; further passes are no-ops.
	template, err := f.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, template.Recurrence)
	assert.Equal(t, 2, template.Recurrence.GeneratedCount)
}

func TestRunDuePassHonorsEndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "short run", DueDate: "2024-01-01"})
	require.NoError(t, err)
	_, err = f.recur.Attach(ctx, task.ID, map[string]any{
		"type":     "daily",
		"end_type": "date",
		"end_date": "2024-01-02",
	})
	require.NoError(t, err)

	total := 0
	for i := 0; i < 5; i++ {
		created, err := f.recur.RunDuePass(ctx, asOf(t, "2024-01-31"))
		require.NoError(t, err)
		total += len(created)
	}
	// Occurrences for Jan 1 and Jan 2; Jan 3 lies past the end date.
	assert.Equal(t, 2, total)
}

func TestRunDuePassMultipleTemplates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		task, err := f.tasks.Create(ctx, TaskInput{Title: title, DueDate: "2024-01-01"})
		require.NoError(t, err)
		_, err = f.recur.Attach(ctx, task.ID, map[string]any{"type": "weekly"})
		require.NoError(t, err)
	}

	created, err := f.recur.RunDuePass(ctx, asOf(t, "2024-01-01"))
	require.NoError(t, err)
	assert.Len(t, created, 3)
}
