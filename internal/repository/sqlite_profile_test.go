package repository

import (
	"context"
	"testing"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *domain.PlannerProfile {
	return &domain.PlannerProfile{
		UserID:              testutil.TestUser,
		W1Urgency:           10.0,
		W2Importance:        1.0,
		W3Effort:            0.25,
		ImportanceDefault:   3.0,
		UrgencyCap:          1.0,
		AutoAcceptThreshold: 0.75,
		SlotGranularityMin:  30,
		RetryLimit:          3,
		UpdatedAt:           time.Now().UTC(),
	}
}

func TestProfileRepo_MissingProfile(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), testutil.TestUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepo_UpsertInsertsThenUpdates(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testProfile()
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx, testutil.TestUser)
	require.NoError(t, err)
	assert.Equal(t, 0.75, got.AutoAcceptThreshold)
	assert.Equal(t, 30, got.SlotGranularityMin)

	p.AutoAcceptThreshold = 0.9
	p.SlotGranularityMin = 15
	require.NoError(t, repo.Upsert(ctx, p))

	got, err = repo.Get(ctx, testutil.TestUser)
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.AutoAcceptThreshold)
	assert.Equal(t, 15, got.SlotGranularityMin)
}
