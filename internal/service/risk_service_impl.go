package service

import (
	"context"
	"sort"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/config"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/risk"
)

type riskService struct {
	tasks    repository.TaskRepo
	outcomes repository.OutcomeRepo
	coeffs   risk.Coefficients
	bands    risk.Thresholds
	obs      UseCaseObserver
}

func NewRiskService(tasks repository.TaskRepo, outcomes repository.OutcomeRepo, cfg config.Config, observers ...UseCaseObserver) RiskService {
	return &riskService{
		tasks:    tasks,
		outcomes: outcomes,
		coeffs:   risk.DefaultCoefficients(),
		bands:    risk.Thresholds{High: cfg.Risk.HighThreshold, Moderate: cfg.Risk.ModerateThreshold},
		obs:      useCaseObserverOrNoop(observers),
	}
}

// Assess scores every open task for the user, highest risk first.
func (s *riskService) Assess(ctx context.Context, req contract.RiskRequest) ([]contract.RiskAssessment, error) {
	var out []contract.RiskAssessment
	err := observe(ctx, s.obs, "risk.assess", req.UserID, func() error {
		if req.UserID == "" {
			return contract.NewValidationError("user ID is required")
		}
		now := nowOrDefault(req.Now)

		tasks, err := s.tasks.ListByUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		history, err := s.outcomes.ListByUser(ctx, req.UserID)
		if err != nil {
			return err
		}

		for _, t := range tasks {
			if t.Status == domain.TaskDone {
				continue
			}
			out = append(out, s.assess(*t, history, now))
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Score != out[j].Score {
				return out[i].Score > out[j].Score
			}
			return out[i].TaskID < out[j].TaskID
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *riskService) AssessTask(ctx context.Context, userID, taskID string, nowPtr *time.Time) (*contract.RiskAssessment, error) {
	t, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, notFoundAs(err, "task %s not found", taskID)
	}
	history, err := s.outcomes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	a := s.assess(*t, history, nowOrDefault(nowPtr))
	return &a, nil
}

func (s *riskService) assess(t domain.Task, history []domain.TaskOutcome, now time.Time) contract.RiskAssessment {
	features := risk.Extract(t, history, now)
	score, reasons := risk.Score(features, s.coeffs)
	return contract.RiskAssessment{
		TaskID:  t.ID,
		Title:   t.Title,
		Score:   score,
		Band:    s.bands.Band(score),
		Reasons: reasons,
	}
}
