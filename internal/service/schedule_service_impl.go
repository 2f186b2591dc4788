package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/config"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/events"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/scheduler"
)

// defaultEstimateMin is assumed for tasks without an effort estimate so
// they still claim at least one block of the week.
const defaultEstimateMin = 60

type scheduleService struct {
	tasks    repository.TaskRepo
	blocks   repository.AvailabilityRepo
	plans    repository.PlanRepo
	profiles repository.ProfileRepo
	uow      db.UnitOfWork
	cfg      config.Config
	sink     events.Sink
	obs      UseCaseObserver
	locks    *weekLocks
}

// NewScheduleService returns the concrete schedule service; it satisfies
// both ScheduleService and Recomputer.
func NewScheduleService(
	tasks repository.TaskRepo,
	blocks repository.AvailabilityRepo,
	plans repository.PlanRepo,
	profiles repository.ProfileRepo,
	uow db.UnitOfWork,
	cfg config.Config,
	sink events.Sink,
	observers ...UseCaseObserver,
) *scheduleService {
	return &scheduleService{
		tasks:    tasks,
		blocks:   blocks,
		plans:    plans,
		profiles: profiles,
		uow:      uow,
		cfg:      cfg,
		sink:     sink,
		obs:      useCaseObserverOrNoop(observers),
		locks:    newWeekLocks(),
	}
}

func (s *scheduleService) Recompute(ctx context.Context, req contract.RecomputeRequest) (*contract.RecomputeResult, error) {
	if req.UserID == "" {
		return nil, contract.NewValidationError("user ID is required")
	}
	now := nowOrDefault(req.Now)
	weekStart := domain.WeekStart(req.WeekStart)

	var result *contract.RecomputeResult
	err := observe(ctx, s.obs, "schedule.recompute", req.UserID, func() error {
		var err error
		result, err = s.recompute(ctx, req.UserID, weekStart, now, req.Trigger, nil)
		return err
	})
	return result, err
}

func (s *scheduleService) GetCurrent(ctx context.Context, userID string, weekStart time.Time) (*domain.SchedulePlan, []domain.ScheduleItem, error) {
	weekStart = domain.WeekStart(weekStart)
	plan, err := s.plans.GetCurrent(ctx, userID, weekStart)
	if err != nil {
		return nil, nil, notFoundAs(err, "no plan for week starting %s", weekStart.Format("2006-01-02"))
	}
	items, err := s.plans.ListItems(ctx, plan.ID)
	if err != nil {
		return nil, nil, err
	}
	return plan, items, nil
}

func (s *scheduleService) ListVersions(ctx context.Context, userID string, weekStart time.Time) ([]*domain.SchedulePlan, error) {
	return s.plans.ListVersions(ctx, userID, domain.WeekStart(weekStart))
}

func (s *scheduleService) AddManualItem(ctx context.Context, req contract.ManualItemRequest) (*contract.RecomputeResult, error) {
	if req.UserID == "" {
		return nil, contract.NewValidationError("user ID is required")
	}
	if !req.EndAt.After(req.StartAt) {
		return nil, contract.NewValidationError("item start must precede end")
	}
	now := nowOrDefault(req.Now)
	weekStart := domain.WeekStart(req.StartAt)
	if req.EndAt.After(domain.WeekEnd(weekStart)) {
		return nil, contract.NewValidationError("item must lie within a single week")
	}

	if _, err := s.tasks.GetByID(ctx, req.UserID, req.TaskID); err != nil {
		return nil, notFoundAs(err, "task %s not found", req.TaskID)
	}

	blocks, err := s.blocks.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading availability: %w", err)
	}
	if !rangeWithinAvailability(blocks, weekStart, req.StartAt.UTC(), req.EndAt.UTC()) {
		return nil, contract.NewValidationError("range %s - %s is outside availability",
			req.StartAt.UTC().Format(time.RFC3339), req.EndAt.UTC().Format(time.RFC3339))
	}

	pinned := domain.ScheduleItem{
		ID:      uuid.New().String(),
		TaskID:  req.TaskID,
		StartAt: req.StartAt.UTC(),
		EndAt:   req.EndAt.UTC(),
		Source:  domain.SourceManual,
	}

	var result *contract.RecomputeResult
	err = observe(ctx, s.obs, "schedule.add_manual_item", req.UserID, func() error {
		var err error
		result, err = s.recompute(ctx, req.UserID, weekStart, now, contract.TriggerManual, []domain.ScheduleItem{pinned})
		return err
	})
	return result, err
}

// RecomputeWeeks refreshes each distinct week, skipping weeks that have
// already elapsed. It satisfies the Recomputer trigger surface used by
// task, availability, and syllabus mutations.
func (s *scheduleService) RecomputeWeeks(ctx context.Context, userID string, weeks []time.Time, trigger contract.RecomputeTrigger, now time.Time) error {
	seen := make(map[time.Time]bool)
	for _, w := range weeks {
		weekStart := domain.WeekStart(w)
		if seen[weekStart] || domain.WeekElapsed(weekStart, now) {
			continue
		}
		seen[weekStart] = true
		if _, err := s.recompute(ctx, userID, weekStart, now, trigger, nil); err != nil {
			return err
		}
	}
	return nil
}

// recompute builds and persists the next plan version for one week. Old
// versions stay untouched; manual items from the current version (plus
// extraManual) carry forward as reserved placements.
func (s *scheduleService) recompute(
	ctx context.Context,
	userID string,
	weekStart time.Time,
	now time.Time,
	trigger contract.RecomputeTrigger,
	extraManual []domain.ScheduleItem,
) (*contract.RecomputeResult, error) {
	if domain.WeekElapsed(weekStart, now) {
		return nil, contract.NewStateError("week starting %s already elapsed", weekStart.Format("2006-01-02"))
	}

	release := s.locks.acquire(userID, weekStart)
	defer release()

	profile, err := profileOrDefault(ctx, s.profiles, s.cfg, userID)
	if err != nil {
		return nil, fmt.Errorf("loading planner profile: %w", err)
	}

	blocks, err := s.blocks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading availability: %w", err)
	}
	eligible, err := s.tasks.ListEligible(ctx, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("loading eligible tasks: %w", err)
	}

	manual, err := s.carriedManualItems(ctx, userID, weekStart, eligible)
	if err != nil {
		return nil, err
	}
	for _, extra := range extraManual {
		for _, m := range manual {
			if extra.Overlaps(&m) {
				return nil, contract.NewStateError("time range already pinned")
			}
		}
		manual = append(manual, extra)
	}

	blockVals := make([]domain.AvailabilityBlock, 0, len(blocks))
	for _, b := range blocks {
		blockVals = append(blockVals, *b)
	}
	slots := scheduler.ExpandWeek(blockVals, weekStart, profile.SlotGranularityMin)

	reserved := make([]scheduler.Placement, 0, len(manual))
	manualMin := make(map[string]int)
	for _, m := range manual {
		reserved = append(reserved, scheduler.Placement{TaskID: m.TaskID, Start: m.StartAt, End: m.EndAt})
		manualMin[m.TaskID] += int(m.EndAt.Sub(m.StartAt) / time.Minute)
	}

	weights := scheduler.Weights{
		W1Urgency:         profile.W1Urgency,
		W2Importance:      profile.W2Importance,
		W3Effort:          profile.W3Effort,
		ImportanceDefault: profile.ImportanceDefault,
		UrgencyCap:        profile.UrgencyCap,
	}
	inputs := make([]scheduler.TaskInput, 0, len(eligible))
	for _, t := range eligible {
		est := defaultEstimateMin
		if t.EstimatedMin != nil {
			est = *t.EstimatedMin
		}
		// Effort already pinned by manual items does not need slots again.
		remaining := est - manualMin[t.ID]
		if remaining < 0 {
			remaining = 0
		}
		inputs = append(inputs, scheduler.TaskInput{
			TaskID:       t.ID,
			Title:        t.Title,
			DueDate:      t.DueDate,
			Importance:   t.Importance,
			EstimatedMin: remaining,
			Now:          now,
		})
	}
	scored := scheduler.ScoreTasks(inputs, weights, profile.SlotGranularityMin)
	scheduler.CanonicalSort(scored)

	assignment := scheduler.Allocate(slots, scored, reserved)

	var warnings []string
	if len(slots) == 0 {
		warnings = append(warnings, "no availability defined for this week")
	}
	if n := len(assignment.Overflow); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d task(s) did not fully fit this week", n))
	}

	plan, items, err := s.persistPlan(ctx, userID, weekStart, now, assignment.Placements, manual)
	if err != nil {
		return nil, err
	}

	s.sink.Publish(ctx, events.Event{
		Type:        events.ScheduleRecomputed,
		UserID:      userID,
		EntityID:    plan.ID,
		PlanVersion: plan.Version,
		At:          now,
	})

	overflow := make([]contract.OverflowEntry, 0, len(assignment.Overflow))
	for _, o := range assignment.Overflow {
		overflow = append(overflow, contract.OverflowEntry{
			TaskID:          o.TaskID,
			Title:           o.Title,
			RemainingMin:    o.RemainingMin,
			ExceedsCapacity: o.ExceedsCapacity,
		})
	}

	return &contract.RecomputeResult{
		Plan:     plan,
		Items:    items,
		Overflow: overflow,
		Warnings: warnings,
	}, nil
}

// carriedManualItems returns the manual items of the current plan version
// whose tasks are still schedulable.
func (s *scheduleService) carriedManualItems(ctx context.Context, userID string, weekStart time.Time, eligible []*domain.Task) ([]domain.ScheduleItem, error) {
	current, err := s.plans.GetCurrent(ctx, userID, weekStart)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading current plan: %w", err)
	}
	items, err := s.plans.ListItems(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("loading current plan items: %w", err)
	}

	taskSet := make(map[string]bool, len(eligible))
	for _, t := range eligible {
		taskSet[t.ID] = true
	}

	var manual []domain.ScheduleItem
	for _, item := range items {
		if item.Source == domain.SourceManual && taskSet[item.TaskID] {
			manual = append(manual, item)
		}
	}
	return manual, nil
}

// persistPlan writes the next plan version, retrying on version races up
// to the configured bound. The unique (user, week, version) index turns a
// lost race into a constraint error rather than a silent overwrite.
func (s *scheduleService) persistPlan(
	ctx context.Context,
	userID string,
	weekStart, now time.Time,
	placements []scheduler.Placement,
	manual []domain.ScheduleItem,
) (*domain.SchedulePlan, []domain.ScheduleItem, error) {
	retries := s.cfg.RecomputeRetryLimit
	if retries < 1 {
		retries = 1
	}

	for attempt := 0; attempt < retries; attempt++ {
		current, err := s.plans.CurrentVersion(ctx, userID, weekStart)
		if err != nil {
			return nil, nil, fmt.Errorf("reading current plan version: %w", err)
		}

		plan := &domain.SchedulePlan{
			ID:        uuid.New().String(),
			UserID:    userID,
			WeekStart: weekStart,
			Version:   current + 1,
			CreatedAt: now,
		}

		items := make([]domain.ScheduleItem, 0, len(placements)+len(manual))
		for _, p := range placements {
			items = append(items, domain.ScheduleItem{
				ID:      uuid.New().String(),
				PlanID:  plan.ID,
				TaskID:  p.TaskID,
				StartAt: p.Start,
				EndAt:   p.End,
				Source:  domain.SourceAuto,
			})
		}
		for _, m := range manual {
			items = append(items, domain.ScheduleItem{
				ID:      uuid.New().String(),
				PlanID:  plan.ID,
				TaskID:  m.TaskID,
				StartAt: m.StartAt,
				EndAt:   m.EndAt,
				Source:  domain.SourceManual,
			})
		}
		sort.Slice(items, func(i, j int) bool {
			if !items[i].StartAt.Equal(items[j].StartAt) {
				return items[i].StartAt.Before(items[j].StartAt)
			}
			return items[i].TaskID < items[j].TaskID
		})

		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txPlans := repository.NewSQLitePlanRepo(tx)
			if err := txPlans.CreatePlan(ctx, plan); err != nil {
				return err
			}
			return txPlans.InsertItems(ctx, items)
		})
		if err == nil {
			return plan, items, nil
		}
		if !isVersionConflict(err) {
			return nil, nil, err
		}
	}

	return nil, nil, contract.NewConcurrencyError("schedule busy for week starting %s", weekStart.Format("2006-01-02"))
}

func isVersionConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// rangeWithinAvailability reports whether [start, end) lies inside the
// merged availability windows of the week. Schedule items, manual pins
// included, may only occupy time the user has declared available.
func rangeWithinAvailability(blocks []*domain.AvailabilityBlock, weekStart, start, end time.Time) bool {
	type window struct {
		start, end time.Time
	}
	wins := make([]window, 0, len(blocks))
	for _, b := range blocks {
		ws, we := b.WindowIn(weekStart)
		wins = append(wins, window{ws, we})
	}
	sort.Slice(wins, func(i, j int) bool {
		return wins[i].start.Before(wins[j].start)
	})

	cur := start
	for _, w := range wins {
		if !w.end.After(cur) {
			continue
		}
		if w.start.After(cur) {
			return false
		}
		cur = w.end
		if !cur.Before(end) {
			return true
		}
	}
	return !cur.Before(end)
}
