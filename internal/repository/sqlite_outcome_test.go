package repository

import (
	"context"
	"testing"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeRepo_CreateAndListByTask(t *testing.T) {
	database := testutil.NewTestDB(t)
	tasks := NewSQLiteTaskRepo(database)
	repo := NewSQLiteOutcomeRepo(database)
	ctx := context.Background()

	task := testutil.NewTestTask("Essay")
	require.NoError(t, tasks.Create(ctx, task))

	o := testutil.NewTestOutcome(task.ID, testutil.WithOnTime(false), testutil.WithMinutesSpent(95))
	require.NoError(t, repo.Create(ctx, o))

	history, err := repo.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].OnTime)
	assert.Equal(t, 95, history[0].MinutesSpent)
	require.NotNil(t, history[0].CompletedAt)
}

// ListByUser joins through tasks so the behavioral history never leaks
// across users.
func TestOutcomeRepo_ListByUserScopedThroughTasks(t *testing.T) {
	database := testutil.NewTestDB(t)
	tasks := NewSQLiteTaskRepo(database)
	repo := NewSQLiteOutcomeRepo(database)
	ctx := context.Background()

	mine := testutil.NewTestTask("Essay")
	theirs := testutil.NewTestTask("Lab report", testutil.WithTaskUser("someone-else"))
	require.NoError(t, tasks.Create(ctx, mine))
	require.NoError(t, tasks.Create(ctx, theirs))
	require.NoError(t, repo.Create(ctx, testutil.NewTestOutcome(mine.ID)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestOutcome(theirs.ID)))

	history, err := repo.ListByUser(ctx, testutil.TestUser)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, mine.ID, history[0].TaskID)
}

func TestOutcomeRepo_RejectsUnknownTask(t *testing.T) {
	repo := NewSQLiteOutcomeRepo(testutil.NewTestDB(t))

	err := repo.Create(context.Background(), testutil.NewTestOutcome("no-such-task"))
	assert.Error(t, err, "foreign key to tasks must hold")
}
