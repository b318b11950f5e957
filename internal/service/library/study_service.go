package library

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"queenzz/internal/config"
	"queenzz/internal/domain"
	models "queenzz/internal/domain/models/library"
	svc "queenzz/internal/domain/services/library"
)

type studyService struct {
	store     *Store
	settings  *config.StudySettings
	scheduler *Scheduler
	logger    *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewStudyService creates a new study service
func NewStudyService(store *Store, settings *config.StudySettings, logger *slog.Logger) svc.StudyService {
	return newStudyService(store, settings, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), logger)
}

func newStudyService(store *Store, settings *config.StudySettings, rng *rand.Rand, logger *slog.Logger) *studyService {
	return &studyService{
		store:     store,
		settings:  settings,
		scheduler: NewScheduler(settings.SRS),
		logger:    logger,
		rng:       rng,
	}
}

func (s *studyService) Settings() *config.StudySettings {
	return s.settings
}

var quizTypes = []any{
	models.QuizNormal,
	models.QuizPractice,
	models.QuizCustom,
	models.QuizSRS,
	models.QuizWeeklyChallenge,
	models.QuizMonthlyChallenge,
}

func (s *studyService) CompleteQuiz(ctx context.Context, req *svc.CompleteQuizRequest) (*models.CompletionResult, error) {
	if req.Settings.PenaltySystem == "" {
		req.Settings.PenaltySystem = models.PenaltySystem(s.settings.Quiz.PenaltySystem)
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.QuizType, validation.Required, validation.In(quizTypes...)),
		validation.Field(&req.Questions, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if p := req.Settings.PenaltySystem; p != models.PenaltyStandard && p != models.PenaltyNone {
		return nil, domain.NewValidation("unknown penalty system %q", p)
	}
	for idx := range req.Answers {
		if idx < 0 || idx >= len(req.Questions) {
			return nil, domain.NewValidation("answer index %d is out of range", idx)
		}
	}

	run := QuizRun{
		Questions: req.Questions,
		Answers:   req.Answers,
		Settings:  req.Settings,
		QuizID:    req.QuizID,
		Type:      req.QuizType,

		DefaultOptionCount: s.settings.Quiz.DefaultNumberOfOptions,
	}

	var result *models.CompletionResult
	_, err := s.store.Update(ctx, func(data *models.AppData, now time.Time) (*models.AppData, error) {
		r, err := CompleteQuiz(data, run, s.scheduler, now)
		if err != nil {
			return nil, err
		}
		result = r
		return r.Data, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quiz completed",
		"quiz_id", req.QuizID,
		"quiz_type", req.QuizType,
		"score", result.Score,
		"correct", result.CorrectCount,
		"failed", result.FailedCount,
		"unanswered", result.UnansweredCount,
	)
	return result, nil
}

func (s *studyService) activeLibrary(ctx context.Context) (*models.Library, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return activeOf(data)
}

func (s *studyService) DueReviews(ctx context.Context) ([]models.SRSEntry, error) {
	lib, err := s.activeLibrary(ctx)
	if err != nil {
		return nil, err
	}
	return DueEntries(lib.FailedQuestions, s.store.Now()), nil
}

func (s *studyService) Challenge(ctx context.Context, kind models.QuizType) (*svc.Challenge, error) {
	var count int
	switch kind {
	case models.QuizWeeklyChallenge:
		count = s.settings.Challenges.WeeklyQuestionCount
	case models.QuizMonthlyChallenge:
		count = s.settings.Challenges.MonthlyQuestionCount
	default:
		return nil, domain.NewValidation("%q is not a challenge", kind)
	}

	lib, err := s.activeLibrary(ctx)
	if err != nil {
		return nil, err
	}
	now := s.store.Now()
	period, err := ChallengePeriod(kind, now)
	if err != nil {
		return nil, err
	}
	completed, err := ChallengeCompleted(lib, kind, now)
	if err != nil {
		return nil, err
	}

	s.rngMu.Lock()
	questions := ChallengeQuestions(lib, count, s.rng)
	s.rngMu.Unlock()

	return &svc.Challenge{
		Type:      kind,
		Period:    period,
		Completed: completed,
		Questions: questions,
	}, nil
}

func (s *studyService) RecordFlashcardResult(ctx context.Context, req *svc.FlashcardResultRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.CardID, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	_, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return RecordFlashcardResult(data, req.CardID, req.Correct)
	})
	return err
}

func (s *studyService) PausedQuiz(ctx context.Context) (*models.PausedQuizState, error) {
	lib, err := s.activeLibrary(ctx)
	if err != nil {
		return nil, err
	}
	if lib.PausedQuiz == nil {
		return nil, domain.NewNotFound("paused quiz", "")
	}
	return lib.PausedQuiz, nil
}

func (s *studyService) PauseQuiz(ctx context.Context, state *models.PausedQuizState) error {
	if err := validation.ValidateStruct(state,
		validation.Field(&state.QuizType, validation.Required, validation.In(quizTypes...)),
		validation.Field(&state.Questions, validation.Required),
		validation.Field(&state.CurrentIndex, validation.Min(0), validation.Max(len(state.Questions))),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	_, err := s.store.Update(ctx, func(data *models.AppData, now time.Time) (*models.AppData, error) {
		if state.PausedAt.IsZero() {
			state.PausedAt = now.UTC()
		}
		return SetPausedQuiz(data, state)
	})
	return err
}

func (s *studyService) DiscardPausedQuiz(ctx context.Context) error {
	_, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return SetPausedQuiz(data, nil)
	})
	return err
}

func (s *studyService) SetStudyPlan(ctx context.Context, req *svc.StudyPlanRequest) error {
	if cfg := req.Config; cfg != nil {
		if err := validation.ValidateStruct(cfg,
			validation.Field(&cfg.StartDate, validation.Required, validation.Date(DateLayout)),
			validation.Field(&cfg.EndDate, validation.Required, validation.Date(DateLayout)),
			validation.Field(&cfg.MinutesPerDay, validation.Required, validation.Min(1)),
			validation.Field(&cfg.DaysPerWeek, validation.Min(0), validation.Max(7)),
		); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		if cfg.EndDate < cfg.StartDate {
			return domain.NewValidation("study plan ends before it starts")
		}
	}
	for _, session := range req.Sessions {
		if err := validation.Validate(session.Date, validation.Required, validation.Date(DateLayout)); err != nil {
			return fmt.Errorf("%w: session date: %v", domain.ErrValidation, err)
		}
	}
	_, err := s.store.Update(ctx, func(data *models.AppData, _ time.Time) (*models.AppData, error) {
		return SetStudyPlan(data, req.Config, req.Sessions)
	})
	return err
}

func (s *studyService) SaveMnemonic(ctx context.Context, req *svc.SaveMnemonicRequest) (*models.MnemonicRule, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.QuestionID, validation.Required),
		validation.Field(&req.Text, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.ImageBase64 != "" {
		if err := validateBase64(req.ImageBase64); err != nil {
			return nil, err
		}
	}

	var saved *models.MnemonicRule
	_, err := s.store.Apply(ctx, func(data *models.AppData, _ time.Time) (*Change, error) {
		lib, err := activeOf(data)
		if err != nil {
			return nil, err
		}
		if _, _, ok := FindQuestion(lib.Items, req.QuestionID); !ok {
			return nil, errNotFound("question", req.QuestionID)
		}

		rule := models.MnemonicRule{ID: req.ID, QuestionID: req.QuestionID, Text: req.Text}
		for _, m := range lib.Mnemonics {
			if m.ID == req.ID {
				rule.ImageRef = m.ImageRef
			}
		}
		next, r, err := SaveMnemonic(data, rule)
		if err != nil {
			return nil, err
		}

		change := &Change{Data: next}
		if req.ImageBase64 != "" {
			key := mnemonicImagePrefix + r.ID
			change.PutAssets = map[string]string{key: req.ImageBase64}
			if r.ImageRef != key {
				r.ImageRef = key
				next, r, err = SaveMnemonic(next, *r)
				if err != nil {
					return nil, err
				}
				change.Data = next
			}
		}
		saved = r
		return change, nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *studyService) DeleteMnemonic(ctx context.Context, ruleID string) error {
	_, err := s.store.Apply(ctx, func(data *models.AppData, _ time.Time) (*Change, error) {
		next, err := DeleteMnemonic(data, ruleID)
		if err != nil {
			return nil, err
		}
		return &Change{Data: next, DropAssets: []string{mnemonicImagePrefix + ruleID}}, nil
	})
	return err
}

func (s *studyService) MnemonicImage(ctx context.Context, ruleID string) (string, error) {
	return s.store.Asset(ctx, mnemonicImagePrefix+ruleID)
}
