package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPomodoro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.pomodoros.Start(ctx, "ghost", 25)
	assert.ErrorIs(t, err, ErrNotFound)

	task, err := f.tasks.Create(ctx, TaskInput{Title: "focus"})
	require.NoError(t, err)

	record, err := f.pomodoros.Start(ctx, task.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, task.ID, record.TaskID)
	assert.Equal(t, 25, record.Duration, "duration defaults to 25 minutes")
	assert.False(t, record.Completed)
	assert.Empty(t, record.EndedAt)
}

func TestCompletePomodoroBumpsTaskCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "focus"})
	require.NoError(t, err)
	record, err := f.pomodoros.Start(ctx, task.ID, 25)
	require.NoError(t, err)

	completed, err := f.pomodoros.Complete(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	assert.NotEmpty(t, completed.EndedAt)

	loaded, err := f.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.PomodoroCount)

	// Completing twice does not double-count.
	_, err = f.pomodoros.Complete(ctx, record.ID)
	require.NoError(t, err)
	loaded, err = f.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.PomodoroCount)

	count, err := f.pomodoros.TodayCount(ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCancelPomodoro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, TaskInput{Title: "focus"})
	require.NoError(t, err)
	record, err := f.pomodoros.Start(ctx, task.ID, 25)
	require.NoError(t, err)

	require.NoError(t, f.pomodoros.Cancel(ctx, record.ID))
	assert.ErrorIs(t, f.pomodoros.Cancel(ctx, record.ID), ErrNotFound)

	loaded, err := f.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Zero(t, loaded.PomodoroCount)
}
