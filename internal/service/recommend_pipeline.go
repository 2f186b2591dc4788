package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
)

// maxRecommendations caps the rule ladder output.
const maxRecommendations = 3

// splitThresholdMin is the effort size above which a task should be
// broken into blocks.
const splitThresholdMin = 120

type recommendService struct {
	tasks repository.TaskRepo
	plans repository.PlanRepo
	risks RiskService
	obs   UseCaseObserver
}

func NewRecommendService(tasks repository.TaskRepo, plans repository.PlanRepo, risks RiskService, observers ...UseCaseObserver) RecommendService {
	return &recommendService{
		tasks: tasks,
		plans: plans,
		risks: risks,
		obs:   useCaseObserverOrNoop(observers),
	}
}

// Recommend evaluates the fixed rule ladder. Each rule fires at most
// once, in ladder order, and identical task sets always yield identical
// output: the candidate walk follows the repository's deterministic
// due-then-ID ordering.
func (s *recommendService) Recommend(ctx context.Context, req contract.RecommendRequest) ([]contract.Recommendation, error) {
	var out []contract.Recommendation
	err := observe(ctx, s.obs, "recommend", req.UserID, func() error {
		if req.UserID == "" {
			return contract.NewValidationError("user ID is required")
		}
		now := nowOrDefault(req.Now)

		tasks, err := s.tasks.ListByUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		var open []*domain.Task
		for _, t := range tasks {
			if t.Status != domain.TaskDone {
				open = append(open, t)
			}
		}

		assessments, err := s.risks.Assess(ctx, contract.RiskRequest{UserID: req.UserID, Now: &now})
		if err != nil {
			return err
		}

		scheduled, err := s.scheduledItems(ctx, req.UserID, now)
		if err != nil {
			return err
		}

		byID := make(map[string]*domain.Task, len(open))
		for _, t := range open {
			byID[t.ID] = t
		}

		if r, ok := rulePrioritize(assessments, byID, now); ok {
			out = append(out, r)
		}
		if r, ok := ruleSplit(open, scheduled); ok {
			out = append(out, r)
		}
		if r, ok := ruleScheduleTime(open, scheduled, now); ok {
			out = append(out, r)
		}
		if r, ok := ruleAddDueDate(open); ok {
			out = append(out, r)
		}

		if len(out) > maxRecommendations {
			out = out[:maxRecommendations]
		}
		if len(out) == 0 {
			out = append(out, contract.Recommendation{
				Code:    contract.RecommendEncouragement,
				Message: "You're on track. Keep the streak going.",
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scheduledItems maps task ID to the items placed for it in the current
// week's plan, or an empty map when no plan exists yet.
func (s *recommendService) scheduledItems(ctx context.Context, userID string, now time.Time) (map[string][]domain.ScheduleItem, error) {
	plan, err := s.plans.GetCurrent(ctx, userID, domain.WeekStart(now))
	if errors.Is(err, repository.ErrNotFound) {
		return map[string][]domain.ScheduleItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	items, err := s.plans.ListItems(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	byTask := make(map[string][]domain.ScheduleItem)
	for _, it := range items {
		byTask[it.TaskID] = append(byTask[it.TaskID], it)
	}
	return byTask, nil
}

// rulePrioritize flags the highest-risk open task whose deadline is near.
func rulePrioritize(assessments []contract.RiskAssessment, byID map[string]*domain.Task, now time.Time) (contract.Recommendation, bool) {
	for _, a := range assessments {
		if a.Band == domain.RiskLow {
			break // sorted by score, nothing riskier follows
		}
		t, ok := byID[a.TaskID]
		if !ok || t.DueDate == nil {
			continue
		}
		if t.DueDate.Sub(now) > 7*24*time.Hour {
			continue
		}
		return contract.Recommendation{
			Code:    contract.RecommendPrioritize,
			TaskID:  a.TaskID,
			Message: fmt.Sprintf("%q is your riskiest upcoming deadline. Tackle it first.", t.Title),
		}, true
	}
	return contract.Recommendation{}, false
}

// ruleSplit flags the first large task not yet split across blocks.
func ruleSplit(open []*domain.Task, scheduled map[string][]domain.ScheduleItem) (contract.Recommendation, bool) {
	for _, t := range open {
		if t.EffortMin() < splitThresholdMin {
			continue
		}
		if len(scheduled[t.ID]) >= 2 {
			continue // already split across blocks
		}
		return contract.Recommendation{
			Code:    contract.RecommendSplit,
			TaskID:  t.ID,
			Message: fmt.Sprintf("%q is %d minutes of work. Split it into smaller blocks.", t.Title, t.EffortMin()),
		}, true
	}
	return contract.Recommendation{}, false
}

// ruleScheduleTime flags a task due within two days with no slots yet.
func ruleScheduleTime(open []*domain.Task, scheduled map[string][]domain.ScheduleItem, now time.Time) (contract.Recommendation, bool) {
	for _, t := range open {
		if t.DueDate == nil || len(scheduled[t.ID]) > 0 {
			continue
		}
		if t.DueDate.Sub(now) > 48*time.Hour {
			continue
		}
		return contract.Recommendation{
			Code:    contract.RecommendScheduleTime,
			TaskID:  t.ID,
			Message: fmt.Sprintf("%q is due soon but has no study time booked. Schedule a slot.", t.Title),
		}, true
	}
	return contract.Recommendation{}, false
}

// ruleAddDueDate flags the first task with no deadline at all.
func ruleAddDueDate(open []*domain.Task) (contract.Recommendation, bool) {
	for _, t := range open {
		if t.DueDate != nil {
			continue
		}
		return contract.Recommendation{
			Code:    contract.RecommendAddDueDate,
			TaskID:  t.ID,
			Message: fmt.Sprintf("%q has no due date, so it never gains urgency. Add one.", t.Title),
		}, true
	}
	return contract.Recommendation{}, false
}
