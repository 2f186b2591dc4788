package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
)

type availabilityService struct {
	blocks repository.AvailabilityRepo
	plans  repository.PlanRepo
	recomp Recomputer
	obs    UseCaseObserver
}

func NewAvailabilityService(blocks repository.AvailabilityRepo, plans repository.PlanRepo, recomp Recomputer, observers ...UseCaseObserver) AvailabilityService {
	return &availabilityService{
		blocks: blocks,
		plans:  plans,
		recomp: recomp,
		obs:    useCaseObserverOrNoop(observers),
	}
}

func (s *availabilityService) Create(ctx context.Context, b *domain.AvailabilityBlock, nowPtr *time.Time) error {
	return observe(ctx, s.obs, "availability.create", b.UserID, func() error {
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if err := b.Validate(); err != nil {
			return contract.NewValidationError("%s", err.Error())
		}
		now := nowOrDefault(nowPtr)
		b.CreatedAt = now
		b.UpdatedAt = now
		if err := s.blocks.Create(ctx, b); err != nil {
			return err
		}
		return s.recomputeAffected(ctx, b.UserID, now)
	})
}

func (s *availabilityService) List(ctx context.Context, userID string) ([]*domain.AvailabilityBlock, error) {
	return s.blocks.ListByUser(ctx, userID)
}

func (s *availabilityService) Update(ctx context.Context, b *domain.AvailabilityBlock, nowPtr *time.Time) error {
	return observe(ctx, s.obs, "availability.update", b.UserID, func() error {
		if err := b.Validate(); err != nil {
			return contract.NewValidationError("%s", err.Error())
		}
		now := nowOrDefault(nowPtr)
		b.UpdatedAt = now
		if err := s.blocks.Update(ctx, b); err != nil {
			return notFoundAs(err, "availability block %s not found", b.ID)
		}
		return s.recomputeAffected(ctx, b.UserID, now)
	})
}

func (s *availabilityService) Delete(ctx context.Context, userID, id string, nowPtr *time.Time) error {
	return observe(ctx, s.obs, "availability.delete", userID, func() error {
		if err := s.blocks.Delete(ctx, userID, id); err != nil {
			return notFoundAs(err, "availability block %s not found", id)
		}
		return s.recomputeAffected(ctx, userID, nowOrDefault(nowPtr))
	})
}

// Availability is weekly-recurring, so an edit reshapes every week from
// now on. The current week plus any future week that already holds a
// plan gets refreshed; unplanned future weeks pick the change up when
// they are first computed, and past weeks stay frozen.
func (s *availabilityService) recomputeAffected(ctx context.Context, userID string, now time.Time) error {
	current := domain.WeekStart(now)
	weeks := []time.Time{current}
	planned, err := s.plans.ListPlannedWeeks(ctx, userID, current)
	if err != nil {
		return err
	}
	weeks = append(weeks, planned...)
	return s.recomp.RecomputeWeeks(ctx, userID, weeks, contract.TriggerAvailabilityEdit, now)
}
