package service

import (
	"context"
	"errors"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/config"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
	cfg      config.Config
	obs      UseCaseObserver
}

func NewProfileService(profiles repository.ProfileRepo, cfg config.Config, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		profiles: profiles,
		cfg:      cfg,
		obs:      useCaseObserverOrNoop(observers),
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.PlannerProfile, error) {
	if userID == "" {
		return nil, contract.NewValidationError("user ID is required")
	}
	return profileOrDefault(ctx, s.profiles, s.cfg, userID)
}

func (s *profileService) Update(ctx context.Context, p *domain.PlannerProfile) error {
	return observe(ctx, s.obs, "profile.update", p.UserID, func() error {
		if p.UserID == "" {
			return contract.NewValidationError("user ID is required")
		}
		if p.AutoAcceptThreshold < 0 || p.AutoAcceptThreshold > 1 {
			return contract.NewValidationError("auto-accept threshold %v out of range [0,1]", p.AutoAcceptThreshold)
		}
		if p.SlotGranularityMin <= 0 {
			return contract.NewValidationError("slot granularity must be positive")
		}
		if p.RetryLimit < 1 {
			return contract.NewValidationError("retry limit must be at least 1")
		}
		p.UpdatedAt = time.Now().UTC()
		return s.profiles.Upsert(ctx, p)
	})
}

// profileOrDefault loads the stored per-user profile, synthesizing one
// from the process configuration when none exists.
func profileOrDefault(ctx context.Context, profiles repository.ProfileRepo, cfg config.Config, userID string) (*domain.PlannerProfile, error) {
	p, err := profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.PlannerProfile{
			UserID:              userID,
			W1Urgency:           cfg.Scoring.W1Urgency,
			W2Importance:        cfg.Scoring.W2Importance,
			W3Effort:            cfg.Scoring.W3Effort,
			ImportanceDefault:   cfg.Scoring.ImportanceDefault,
			UrgencyCap:          cfg.Scoring.UrgencyCap,
			AutoAcceptThreshold: cfg.Confidence.AutoAcceptThreshold,
			SlotGranularityMin:  cfg.SlotGranularityMin,
			RetryLimit:          cfg.RecomputeRetryLimit,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
