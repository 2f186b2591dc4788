package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/events"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
)

type taskService struct {
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	sink     events.Sink
	recomp   Recomputer
	obs      UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork, sink events.Sink, recomp Recomputer, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:  tasks,
		uow:    uow,
		sink:   sink,
		recomp: recomp,
		obs:    useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	return observe(ctx, s.obs, "task.create", t.UserID, func() error {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if t.Status == "" {
			t.Status = domain.TaskPending
		}
		if t.TaskType == "" {
			t.TaskType = domain.ItemOther
		}
		if err := t.Validate(); err != nil {
			return contract.NewValidationError("%s", err.Error())
		}
		now := time.Now().UTC()
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := s.tasks.Create(ctx, t); err != nil {
			return err
		}
		return s.taskChanged(ctx, t.UserID, t.ID, now, t.DueDate)
	})
}

func (s *taskService) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFoundAs(err, "task %s not found", id)
	}
	return t, nil
}

func (s *taskService) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	return observe(ctx, s.obs, "task.update", t.UserID, func() error {
		if err := t.Validate(); err != nil {
			return contract.NewValidationError("%s", err.Error())
		}
		prev, err := s.tasks.GetByID(ctx, t.UserID, t.ID)
		if err != nil {
			return notFoundAs(err, "task %s not found", t.ID)
		}
		now := time.Now().UTC()
		t.CreatedAt = prev.CreatedAt
		t.UpdatedAt = now
		if err := s.tasks.Update(ctx, t); err != nil {
			return notFoundAs(err, "task %s not found", t.ID)
		}
		// A due-date move touches the old week and the new one.
		return s.taskChanged(ctx, t.UserID, t.ID, now, prev.DueDate, t.DueDate)
	})
}

func (s *taskService) MarkDone(ctx context.Context, userID, id string, minutesSpent int, nowPtr *time.Time) (*domain.Task, error) {
	var done *domain.Task
	err := observe(ctx, s.obs, "task.mark_done", userID, func() error {
		if minutesSpent < 0 {
			return contract.NewValidationError("minutes spent must be non-negative")
		}
		now := nowOrDefault(nowPtr)

		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txTasks := repository.NewSQLiteTaskRepo(tx)
			txOutcomes := repository.NewSQLiteOutcomeRepo(tx)

			t, err := txTasks.GetByID(ctx, userID, id)
			if err != nil {
				return notFoundAs(err, "task %s not found", id)
			}
			if t.Status == domain.TaskDone {
				return contract.NewStateError("task %s is already done", id)
			}

			t.Status = domain.TaskDone
			t.UpdatedAt = now
			if err := txTasks.Update(ctx, t); err != nil {
				return err
			}

			completedAt := now
			outcome := &domain.TaskOutcome{
				ID:           uuid.New().String(),
				TaskID:       t.ID,
				CompletedAt:  &completedAt,
				OnTime:       t.DueDate == nil || !completedAt.After(*t.DueDate),
				MinutesSpent: minutesSpent,
				CreatedAt:    now,
			}
			if err := txOutcomes.Create(ctx, outcome); err != nil {
				return err
			}
			done = t
			return nil
		})
		if err != nil {
			return err
		}
		return s.taskChanged(ctx, userID, id, now, done.DueDate)
	})
	if err != nil {
		return nil, err
	}
	return done, nil
}

func (s *taskService) Delete(ctx context.Context, userID, id string, nowPtr *time.Time) error {
	return observe(ctx, s.obs, "task.delete", userID, func() error {
		t, err := s.tasks.GetByID(ctx, userID, id)
		if err != nil {
			return notFoundAs(err, "task %s not found", id)
		}
		// Deletion is explicit; schedule items cascade at the DB level.
		if err := s.tasks.Delete(ctx, userID, id); err != nil {
			return notFoundAs(err, "task %s not found", id)
		}
		return s.taskChanged(ctx, userID, id, nowOrDefault(nowPtr), t.DueDate)
	})
}

// taskChanged publishes the mutation event and refreshes every week a
// listed due date falls in.
func (s *taskService) taskChanged(ctx context.Context, userID, taskID string, now time.Time, dues ...*time.Time) error {
	s.sink.Publish(ctx, events.Event{
		Type:     events.TaskChanged,
		UserID:   userID,
		EntityID: taskID,
		At:       now,
	})
	return s.recomp.RecomputeWeeks(ctx, userID, affectedWeeks(dues...), contract.TriggerTaskChanged, now)
}
