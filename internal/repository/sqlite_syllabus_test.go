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

func TestSyllabusRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteSyllabusRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	syl := testutil.NewTestSyllabus("CS 101", testutil.WithRawText("Week 1\nHomework due Sep 25"))
	require.NoError(t, repo.Create(ctx, syl))

	got, err := repo.GetByID(ctx, testutil.TestUser, syl.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS 101", got.Course)
	assert.Equal(t, "Fall 2026", got.Term)
	assert.Equal(t, domain.SyllabusUploaded, got.Status)
	assert.Contains(t, got.RawText, "Homework due")
}

func TestSyllabusRepo_UpdateStatusAndError(t *testing.T) {
	repo := NewSQLiteSyllabusRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	syl := testutil.NewTestSyllabus("CS 101")
	require.NoError(t, repo.Create(ctx, syl))

	syl.Status = domain.SyllabusFailed
	syl.ErrorMessage = "document produced no text"
	require.NoError(t, repo.Update(ctx, syl))

	got, err := repo.GetByID(ctx, testutil.TestUser, syl.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyllabusFailed, got.Status)
	assert.Equal(t, "document produced no text", got.ErrorMessage)
}

func TestSyllabusRepo_GetScopedToUser(t *testing.T) {
	repo := NewSQLiteSyllabusRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	syl := testutil.NewTestSyllabus("CS 101")
	require.NoError(t, repo.Create(ctx, syl))

	_, err := repo.GetByID(ctx, "someone-else", syl.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtractionRepo_ListOrderedBySourcePosition(t *testing.T) {
	database := testutil.NewTestDB(t)
	syllabi := NewSQLiteSyllabusRepo(database)
	repo := NewSQLiteExtractionRepo(database)
	ctx := context.Background()

	syl := testutil.NewTestSyllabus("CS 101")
	require.NoError(t, syllabi.Create(ctx, syl))

	due := time.Date(2026, time.October, 2, 0, 0, 0, 0, time.UTC)
	pageTwo := testutil.NewTestExtraction(syl.ID, "Final exam")
	pageTwo.SourcePage = 2
	pageOne := testutil.NewTestExtraction(syl.ID, "Homework 1", testutil.WithExtractionDue(due))
	pageOne.SourcePage = 1
	require.NoError(t, repo.Create(ctx, pageTwo))
	require.NoError(t, repo.Create(ctx, pageOne))

	list, err := repo.ListBySyllabus(ctx, syl.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Homework 1", list[0].Title)
	require.NotNil(t, list[0].DueDate)
	assert.True(t, list[0].DueDate.Equal(due))
}

func TestExtractionRepo_UpdateReviewDecision(t *testing.T) {
	database := testutil.NewTestDB(t)
	syllabi := NewSQLiteSyllabusRepo(database)
	repo := NewSQLiteExtractionRepo(database)
	ctx := context.Background()

	syl := testutil.NewTestSyllabus("CS 101")
	require.NoError(t, syllabi.Create(ctx, syl))
	e := testutil.NewTestExtraction(syl.ID, "Homework 1")
	require.NoError(t, repo.Create(ctx, e))

	e.ReviewStatus = domain.ReviewEdited
	e.Title = "Homework 1 (revised)"
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewEdited, got.ReviewStatus)
	assert.Equal(t, "Homework 1 (revised)", got.Title)
}

// Re-processing a failed syllabus starts from a clean slate; stale
// candidates must not pile up across runs.
func TestExtractionRepo_DeleteBySyllabus(t *testing.T) {
	database := testutil.NewTestDB(t)
	syllabi := NewSQLiteSyllabusRepo(database)
	repo := NewSQLiteExtractionRepo(database)
	ctx := context.Background()

	syl := testutil.NewTestSyllabus("CS 101")
	other := testutil.NewTestSyllabus("MATH 220")
	require.NoError(t, syllabi.Create(ctx, syl))
	require.NoError(t, syllabi.Create(ctx, other))
	require.NoError(t, repo.Create(ctx, testutil.NewTestExtraction(syl.ID, "Homework 1")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestExtraction(other.ID, "Problem set 1")))

	require.NoError(t, repo.DeleteBySyllabus(ctx, syl.ID))

	mine, err := repo.ListBySyllabus(ctx, syl.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := repo.ListBySyllabus(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1, "other syllabi keep their candidates")
}
