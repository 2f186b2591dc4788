package repository

import (
	"context"
	"testing"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityRepo_CreateAndList(t *testing.T) {
	repo := NewSQLiteAvailabilityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	monday := testutil.NewTestBlock(0, 9*60, 11*60)
	friday := testutil.NewTestBlock(4, 14*60, 16*60)
	require.NoError(t, repo.Create(ctx, friday))
	require.NoError(t, repo.Create(ctx, monday))

	blocks, err := repo.ListByUser(ctx, testutil.TestUser)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 0, blocks[0].Weekday, "blocks come back in weekday order")
	assert.Equal(t, 4, blocks[1].Weekday)
}

func TestAvailabilityRepo_UpdateWindow(t *testing.T) {
	repo := NewSQLiteAvailabilityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	block := testutil.NewTestBlock(2, 9*60, 10*60)
	require.NoError(t, repo.Create(ctx, block))

	block.StartMin = 8 * 60
	block.EndMin = 12 * 60
	require.NoError(t, repo.Update(ctx, block))

	got, err := repo.GetByID(ctx, testutil.TestUser, block.ID)
	require.NoError(t, err)
	assert.Equal(t, 8*60, got.StartMin)
	assert.Equal(t, 12*60, got.EndMin)
}

func TestAvailabilityRepo_DeleteMissing(t *testing.T) {
	repo := NewSQLiteAvailabilityRepo(testutil.NewTestDB(t))

	err := repo.Delete(context.Background(), testutil.TestUser, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailabilityRepo_ScopedToUser(t *testing.T) {
	repo := NewSQLiteAvailabilityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	block := testutil.NewTestBlock(0, 9*60, 10*60)
	require.NoError(t, repo.Create(ctx, block))

	_, err := repo.GetByID(ctx, "someone-else", block.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	blocks, err := repo.ListByUser(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}
