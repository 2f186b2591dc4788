package service

import (
	"context"
	"testing"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A user with no stored profile gets one synthesized from the process
// configuration rather than a not-found error.
func TestProfileService_GetSynthesizesDefaults(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.profileService().Get(context.Background(), testutil.TestUser)
	require.NoError(t, err)

	assert.Equal(t, testutil.TestUser, p.UserID)
	assert.Equal(t, env.cfg.Scoring.W1Urgency, p.W1Urgency)
	assert.Equal(t, env.cfg.Scoring.ImportanceDefault, p.ImportanceDefault)
	assert.Equal(t, env.cfg.Confidence.AutoAcceptThreshold, p.AutoAcceptThreshold)
	assert.Equal(t, env.cfg.SlotGranularityMin, p.SlotGranularityMin)
	assert.Equal(t, env.cfg.RecomputeRetryLimit, p.RetryLimit)
}

func TestProfileService_GetRequiresUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profileService().Get(context.Background(), "")
	assert.True(t, contract.HasCode(err, contract.ErrValidation), "%v", err)
}

func TestProfileService_UpdateThenGetReturnsStored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.profileService()

	p, err := svc.Get(ctx, testutil.TestUser)
	require.NoError(t, err)
	p.AutoAcceptThreshold = 0.9
	p.SlotGranularityMin = 15
	require.NoError(t, svc.Update(ctx, p))

	got, err := svc.Get(ctx, testutil.TestUser)
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.AutoAcceptThreshold)
	assert.Equal(t, 15, got.SlotGranularityMin)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestProfileService_UpdateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.profileService()

	base := func() *domain.PlannerProfile {
		p, err := svc.Get(ctx, testutil.TestUser)
		require.NoError(t, err)
		return p
	}

	cases := []struct {
		name   string
		mutate func(*domain.PlannerProfile)
	}{
		{"missing user", func(p *domain.PlannerProfile) { p.UserID = "" }},
		{"threshold above one", func(p *domain.PlannerProfile) { p.AutoAcceptThreshold = 1.2 }},
		{"negative threshold", func(p *domain.PlannerProfile) { p.AutoAcceptThreshold = -0.1 }},
		{"zero granularity", func(p *domain.PlannerProfile) { p.SlotGranularityMin = 0 }},
		{"zero retries", func(p *domain.PlannerProfile) { p.RetryLimit = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base()
			tc.mutate(p)
			err := svc.Update(ctx, p)
			assert.True(t, contract.HasCode(err, contract.ErrValidation), "%v", err)
		})
	}
}
