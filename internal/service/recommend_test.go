package service

import (
	"context"
	"testing"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recNow = time.Date(2026, time.September, 16, 12, 0, 0, 0, time.UTC)

func recommendFor(t *testing.T, env *testEnv) []contract.Recommendation {
	t.Helper()
	now := recNow
	out, err := env.recommendService().Recommend(context.Background(),
		contract.RecommendRequest{UserID: testutil.TestUser, Now: &now})
	require.NoError(t, err)
	return out
}

func TestRecommend_EmptyBacklogGetsEncouragement(t *testing.T) {
	env := newTestEnv(t)

	out := recommendFor(t, env)
	require.Len(t, out, 1)
	assert.Equal(t, contract.RecommendEncouragement, out[0].Code)
	assert.NotEmpty(t, out[0].Message)
}

func TestRecommend_CalmBacklogGetsEncouragement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Far-off deadline, modest effort: no rule has cause to fire.
	task := testutil.NewTestTask("Reading",
		testutil.WithDueDate(recNow.AddDate(0, 1, 0)), testutil.WithEstimate(60))
	require.NoError(t, env.tasks.Create(ctx, task))

	out := recommendFor(t, env)
	require.Len(t, out, 1)
	assert.Equal(t, contract.RecommendEncouragement, out[0].Code)
}

func TestRecommend_PrioritizeFlagsRiskyDeadline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	urgent := testutil.NewTestTask("Exam prep",
		testutil.WithDueDate(recNow.AddDate(0, 0, 1)), testutil.WithEstimate(60))
	require.NoError(t, env.tasks.Create(ctx, urgent))

	out := recommendFor(t, env)
	require.NotEmpty(t, out)
	assert.Equal(t, contract.RecommendPrioritize, out[0].Code)
	assert.Equal(t, urgent.ID, out[0].TaskID)
}

func TestRecommend_SplitFlagsLargeUnsplitTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	big := testutil.NewTestTask("Term paper",
		testutil.WithDueDate(recNow.AddDate(0, 1, 0)), testutil.WithEstimate(180))
	require.NoError(t, env.tasks.Create(ctx, big))

	out := recommendFor(t, env)
	require.Len(t, out, 1)
	assert.Equal(t, contract.RecommendSplit, out[0].Code)
	assert.Equal(t, big.ID, out[0].TaskID)
}

// A task already spread across two or more scheduled blocks does not
// trigger the split rule again.
func TestRecommend_SplitSkipsAlreadySplitTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	big := testutil.NewTestTask("Term paper",
		testutil.WithDueDate(recNow.AddDate(0, 1, 0)), testutil.WithEstimate(180))
	require.NoError(t, env.tasks.Create(ctx, big))

	require.NoError(t, env.blocks.Create(ctx, testutil.NewTestBlock(0, 9*60, 13*60)))
	now := recNow
	_, err := env.schedule.Recompute(ctx, contract.RecomputeRequest{
		UserID: testutil.TestUser, WeekStart: now, Trigger: contract.TriggerManual, Now: &now,
	})
	require.NoError(t, err)

	out := recommendFor(t, env)
	for _, r := range out {
		assert.NotEqual(t, contract.RecommendSplit, r.Code,
			"six scheduled half-hour blocks already split the work")
	}
}

func TestRecommend_ScheduleTimeForImminentUnplannedTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	soon := testutil.NewTestTask("Quiz review",
		testutil.WithDueDate(recNow.Add(36*time.Hour)), testutil.WithEstimate(30))
	require.NoError(t, env.tasks.Create(ctx, soon))

	out := recommendFor(t, env)
	codes := make(map[contract.RecommendationCode]string)
	for _, r := range out {
		codes[r.Code] = r.TaskID
	}
	assert.Equal(t, soon.ID, codes[contract.RecommendScheduleTime])
}

func TestRecommend_AddDueDateForDatelessTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	floating := testutil.NewTestTask("Someday project", testutil.WithEstimate(45))
	require.NoError(t, env.tasks.Create(ctx, floating))

	out := recommendFor(t, env)
	require.Len(t, out, 1)
	assert.Equal(t, contract.RecommendAddDueDate, out[0].Code)
	assert.Equal(t, floating.ID, out[0].TaskID)
}

// With every rule firing the output is capped at three, in ladder order.
func TestRecommend_LadderOrderAndCap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	urgent := testutil.NewTestTask("Exam prep",
		testutil.WithDueDate(recNow.AddDate(0, 0, 1)), testutil.WithEstimate(60))
	big := testutil.NewTestTask("Term paper",
		testutil.WithDueDate(recNow.AddDate(0, 1, 0)), testutil.WithEstimate(240))
	floating := testutil.NewTestTask("Someday project")
	require.NoError(t, env.tasks.Create(ctx, urgent))
	require.NoError(t, env.tasks.Create(ctx, big))
	require.NoError(t, env.tasks.Create(ctx, floating))

	out := recommendFor(t, env)
	require.Len(t, out, 3)
	assert.Equal(t, contract.RecommendPrioritize, out[0].Code)
	assert.Equal(t, contract.RecommendSplit, out[1].Code)
	assert.Equal(t, contract.RecommendScheduleTime, out[2].Code)
}

func TestRecommend_Deterministic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		task := testutil.NewTestTask(title, testutil.WithDueDate(recNow.AddDate(0, 0, 1)))
		require.NoError(t, env.tasks.Create(ctx, task))
	}

	first := recommendFor(t, env)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, recommendFor(t, env))
	}
}
