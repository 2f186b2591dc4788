package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/config"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/docsource"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/events"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/extract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
)

type syllabusService struct {
	syllabi     repository.SyllabusRepo
	extractions repository.ExtractionRepo
	profiles    repository.ProfileRepo
	uow         db.UnitOfWork
	source      docsource.Source
	cfg         config.Config
	sink        events.Sink
	recomp      Recomputer
	obs         UseCaseObserver
}

func NewSyllabusService(
	syllabi repository.SyllabusRepo,
	extractions repository.ExtractionRepo,
	profiles repository.ProfileRepo,
	uow db.UnitOfWork,
	source docsource.Source,
	cfg config.Config,
	sink events.Sink,
	recomp Recomputer,
	observers ...UseCaseObserver,
) SyllabusService {
	return &syllabusService{
		syllabi:     syllabi,
		extractions: extractions,
		profiles:    profiles,
		uow:         uow,
		source:      source,
		cfg:         cfg,
		sink:        sink,
		recomp:      recomp,
		obs:         useCaseObserverOrNoop(observers),
	}
}

func (s *syllabusService) Upload(ctx context.Context, req contract.UploadRequest) (*domain.Syllabus, error) {
	var syl *domain.Syllabus
	err := observe(ctx, s.obs, "syllabus.upload", req.UserID, func() error {
		if req.UserID == "" {
			return contract.NewValidationError("user ID is required")
		}
		if len(req.Data) == 0 {
			return contract.NewValidationError("document is empty")
		}
		now := time.Now().UTC()
		syl = &domain.Syllabus{
			ID:        uuid.New().String(),
			UserID:    req.UserID,
			Course:    req.Course,
			Term:      req.Term,
			FileName:  req.FileName,
			Status:    domain.SyllabusUploaded,
			RawText:   string(req.Data),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.syllabi.Create(ctx, syl); err != nil {
			return err
		}
		s.sink.Publish(ctx, events.Event{
			Type:     events.SyllabusUploaded,
			UserID:   req.UserID,
			EntityID: syl.ID,
			At:       now,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return syl, nil
}

func (s *syllabusService) GetByID(ctx context.Context, userID, id string) (*domain.Syllabus, error) {
	syl, err := s.syllabi.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFoundAs(err, "syllabus %s not found", id)
	}
	return syl, nil
}

func (s *syllabusService) List(ctx context.Context, userID string) ([]*domain.Syllabus, error) {
	return s.syllabi.ListByUser(ctx, userID)
}

func (s *syllabusService) ListExtractions(ctx context.Context, userID, syllabusID string) ([]*domain.Extraction, error) {
	if _, err := s.syllabi.GetByID(ctx, userID, syllabusID); err != nil {
		return nil, notFoundAs(err, "syllabus %s not found", syllabusID)
	}
	return s.extractions.ListBySyllabus(ctx, syllabusID)
}

func (s *syllabusService) Process(ctx context.Context, userID, syllabusID string, nowPtr *time.Time) (*domain.Syllabus, error) {
	var syl *domain.Syllabus
	err := observe(ctx, s.obs, "syllabus.process", userID, func() error {
		var err error
		syl, err = s.syllabi.GetByID(ctx, userID, syllabusID)
		if err != nil {
			return notFoundAs(err, "syllabus %s not found", syllabusID)
		}
		if syl.Status != domain.SyllabusUploaded {
			return contract.NewStateError("syllabus %s is %s, expected uploaded", syllabusID, syl.Status)
		}
		return s.run(ctx, syl, nowOrDefault(nowPtr))
	})
	if err != nil {
		return nil, err
	}
	return syl, nil
}

func (s *syllabusService) Rerun(ctx context.Context, userID, syllabusID string, nowPtr *time.Time) (*domain.Syllabus, error) {
	var syl *domain.Syllabus
	err := observe(ctx, s.obs, "syllabus.rerun", userID, func() error {
		var err error
		syl, err = s.syllabi.GetByID(ctx, userID, syllabusID)
		if err != nil {
			return notFoundAs(err, "syllabus %s not found", syllabusID)
		}
		if syl.Status != domain.SyllabusFailed {
			return contract.NewStateError("syllabus %s is %s, only failed runs can be retried", syllabusID, syl.Status)
		}
		return s.run(ctx, syl, nowOrDefault(nowPtr))
	})
	if err != nil {
		return nil, err
	}
	return syl, nil
}

// run drives one extraction pass: -> processing, document source call,
// scan and score, persist candidates, -> needs_review. Any document
// source failure lands in failed with the reason and raw text retained.
func (s *syllabusService) run(ctx context.Context, syl *domain.Syllabus, now time.Time) error {
	if err := s.transition(ctx, syl, domain.SyllabusProcessing, "", now); err != nil {
		return err
	}

	extractCtx, cancel := context.WithTimeout(ctx, s.cfg.ExtractTimeout.Std())
	defer cancel()
	res, err := s.source.ExtractText(extractCtx, []byte(syl.RawText))
	if err != nil {
		if ferr := s.transition(ctx, syl, domain.SyllabusFailed, err.Error(), now); ferr != nil {
			return ferr
		}
		return contract.NewExternalError(err, "document source failed: %v", err)
	}
	if res.Density == 0 {
		reason := "document produced no text"
		if err := s.transition(ctx, syl, domain.SyllabusFailed, reason, now); err != nil {
			return err
		}
		return contract.NewExternalError(nil, "%s", reason)
	}

	pages := make([]extract.Page, 0, len(res.Pages))
	for _, p := range res.Pages {
		pages = append(pages, extract.Page{Index: p.Index, Text: p.Text})
	}
	candidates := extract.ScanPages(pages, now)

	profile, err := profileOrDefault(ctx, s.profiles, s.cfg, syl.UserID)
	if err != nil {
		return fmt.Errorf("loading planner profile: %w", err)
	}
	weights := extract.ConfidenceWeights{
		DateParsed:   s.cfg.Confidence.DateParsed,
		Keyword:      s.cfg.Confidence.Keyword,
		Heading:      s.cfg.Confidence.Heading,
		Repeat:       s.cfg.Confidence.Repeat,
		KeywordDecay: s.cfg.Confidence.KeywordDecay,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSyllabi := repository.NewSQLiteSyllabusRepo(tx)
		txExtractions := repository.NewSQLiteExtractionRepo(tx)

		// A concurrent cancel may have pulled the syllabus out of
		// processing; the re-read inside the transaction decides.
		fresh, err := txSyllabi.GetByID(ctx, syl.UserID, syl.ID)
		if err != nil {
			return err
		}
		if fresh.Status != domain.SyllabusProcessing {
			return contract.NewStateError("processing of syllabus %s was interrupted", syl.ID)
		}

		if err := txExtractions.DeleteBySyllabus(ctx, syl.ID); err != nil {
			return err
		}
		for _, c := range candidates {
			conf := extract.ScoreCandidate(c, weights)
			status := domain.ReviewPending
			if conf >= profile.AutoAcceptThreshold {
				status = domain.ReviewAccepted
			}
			e := &domain.Extraction{
				ID:           uuid.New().String(),
				SyllabusID:   syl.ID,
				ItemType:     c.ItemType,
				Title:        c.Title,
				DueDate:      c.DueDate,
				Confidence:   conf,
				SourcePage:   c.SourcePage,
				SourceLine:   c.SourceLine,
				ReviewStatus: status,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := txExtractions.Create(ctx, e); err != nil {
				return err
			}
		}

		fresh.Status = domain.SyllabusNeedsReview
		fresh.ErrorMessage = ""
		fresh.UpdatedAt = now
		if err := txSyllabi.Update(ctx, fresh); err != nil {
			return err
		}
		*syl = *fresh
		return nil
	})
	if err != nil {
		return err
	}

	s.sink.Publish(ctx, events.Event{
		Type:     events.ExtractionCompleted,
		UserID:   syl.UserID,
		EntityID: syl.ID,
		At:       now,
	})
	return nil
}

func (s *syllabusService) Cancel(ctx context.Context, userID, syllabusID string) (*domain.Syllabus, error) {
	var syl *domain.Syllabus
	err := observe(ctx, s.obs, "syllabus.cancel", userID, func() error {
		var err error
		syl, err = s.syllabi.GetByID(ctx, userID, syllabusID)
		if err != nil {
			return notFoundAs(err, "syllabus %s not found", syllabusID)
		}
		if syl.Status != domain.SyllabusProcessing {
			return contract.NewStateError("syllabus %s is %s, only processing runs can be canceled", syllabusID, syl.Status)
		}
		return s.transition(ctx, syl, domain.SyllabusFailed, "canceled during processing", time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return syl, nil
}

func (s *syllabusService) Review(ctx context.Context, req contract.ReviewRequest) (*domain.Extraction, error) {
	var reviewed *domain.Extraction
	err := observe(ctx, s.obs, "syllabus.review", req.UserID, func() error {
		if !req.Action.Materializes() && req.Action != domain.ReviewRejected {
			return contract.NewValidationError("review action must be accepted, rejected, or edited")
		}
		syl, err := s.syllabi.GetByID(ctx, req.UserID, req.SyllabusID)
		if err != nil {
			return notFoundAs(err, "syllabus %s not found", req.SyllabusID)
		}
		if syl.Status != domain.SyllabusNeedsReview {
			return contract.NewStateError("syllabus %s is %s, review requires needs_review", req.SyllabusID, syl.Status)
		}

		e, err := s.extractions.GetByID(ctx, req.ExtractionID)
		if err != nil {
			return notFoundAs(err, "extraction %s not found", req.ExtractionID)
		}
		if e.SyllabusID != syl.ID {
			return contract.NewNotFoundError("extraction %s not found", req.ExtractionID)
		}

		e.ReviewStatus = req.Action
		if req.Action == domain.ReviewEdited {
			if req.Title != nil {
				e.Title = *req.Title
			}
			if req.DueDate != nil {
				e.DueDate = req.DueDate
			}
			if req.ItemType != nil {
				if !domain.ValidItemTypes[string(*req.ItemType)] {
					return contract.NewValidationError("invalid item type %q", *req.ItemType)
				}
				e.ItemType = *req.ItemType
			}
		}
		e.UpdatedAt = time.Now().UTC()
		if err := s.extractions.Update(ctx, e); err != nil {
			return err
		}
		reviewed = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

func (s *syllabusService) Confirm(ctx context.Context, userID, syllabusID string, nowPtr *time.Time) ([]*domain.Task, error) {
	now := nowOrDefault(nowPtr)
	var created []*domain.Task

	err := observe(ctx, s.obs, "syllabus.confirm", userID, func() error {
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txSyllabi := repository.NewSQLiteSyllabusRepo(tx)
			txExtractions := repository.NewSQLiteExtractionRepo(tx)
			txTasks := repository.NewSQLiteTaskRepo(tx)

			syl, err := txSyllabi.GetByID(ctx, userID, syllabusID)
			if err != nil {
				return notFoundAs(err, "syllabus %s not found", syllabusID)
			}
			if syl.Status == domain.SyllabusConfirmed {
				return contract.NewStateError("syllabus %s is already confirmed", syllabusID)
			}
			if syl.Status != domain.SyllabusNeedsReview {
				return contract.NewStateError("syllabus %s is %s, confirm requires needs_review", syllabusID, syl.Status)
			}

			extractions, err := txExtractions.ListBySyllabus(ctx, syllabusID)
			if err != nil {
				return err
			}

			for _, e := range extractions {
				if e.ReviewStatus == domain.ReviewPending {
					e.ReviewStatus = domain.ReviewAccepted
					e.UpdatedAt = now
					if err := txExtractions.Update(ctx, e); err != nil {
						return err
					}
				}
				if !e.ReviewStatus.Materializes() {
					continue
				}
				t := &domain.Task{
					ID:          uuid.New().String(),
					UserID:      userID,
					Title:       e.Title,
					Course:      domain.CoalesceStr(syl.Course, syl.FileName),
					Description: e.SourceLine,
					TaskType:    e.ItemType,
					DueDate:     e.DueDate,
					Status:      domain.TaskPending,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := txTasks.Create(ctx, t); err != nil {
					return err
				}
				created = append(created, t)
			}

			if len(created) == 0 {
				return contract.NewStateError("syllabus %s has no accepted or edited extractions", syllabusID)
			}

			syl.Status = domain.SyllabusConfirmed
			syl.UpdatedAt = now
			return txSyllabi.Update(ctx, syl)
		})
		if err != nil {
			created = nil
			return err
		}

		var dues []*time.Time
		for _, t := range created {
			s.sink.Publish(ctx, events.Event{
				Type:     events.TaskChanged,
				UserID:   userID,
				EntityID: t.ID,
				At:       now,
			})
			dues = append(dues, t.DueDate)
		}
		return s.recomp.RecomputeWeeks(ctx, userID, affectedWeeks(dues...), contract.TriggerConfirmation, now)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// transition applies one legal state machine edge and persists it.
func (s *syllabusService) transition(ctx context.Context, syl *domain.Syllabus, to domain.SyllabusStatus, reason string, now time.Time) error {
	if !syl.Status.CanTransition(to) {
		return contract.NewStateError("syllabus %s cannot move from %s to %s", syl.ID, syl.Status, to)
	}
	syl.Status = to
	syl.ErrorMessage = reason
	syl.UpdatedAt = now
	return s.syllabi.Update(ctx, syl)
}
