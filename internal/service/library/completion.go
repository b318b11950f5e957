package library

import (
	"math"
	"time"

	"queenzz/internal/config"
	models "queenzz/internal/domain/models/library"
)

// QuizRun describes a finished quiz run
type QuizRun struct {
	Questions []models.Question
	Answers   models.AnswerMap
	Settings  models.QuizSettings
	QuizID    string // empty for runs not backed by a stored quiz
	Type      models.QuizType

	// DefaultOptionCount sizes the penalty when the first question has no options
	DefaultOptionCount int
}

// Score computes the 0-10 score of a run. With the standard penalty each
// wrong answer costs 1/(options-1) of a right one, using the option count of
// the first question.
func Score(correct, incorrect, total, optionCount int, penalty models.PenaltySystem) float64 {
	if total == 0 {
		return 0
	}
	var score float64
	if penalty == models.PenaltyStandard && optionCount > 1 {
		p := 1 / float64(optionCount-1)
		score = (float64(correct) - float64(incorrect)*p) / float64(total) * 10
	} else {
		score = float64(correct) / float64(total) * 10
	}
	score = math.Max(0, score)
	return math.Round(score*100) / 100
}

// CompleteQuiz records a finished run on the active library: progress sets,
// score history, challenge stamps and the SRS queue. Unanswered questions
// count as failures for SRS.
func CompleteQuiz(data *models.AppData, run QuizRun, sched *Scheduler, now time.Time) (*models.CompletionResult, error) {
	total := len(run.Questions)
	answered, incorrect := 0, 0
	for i := range run.Questions {
		if a, ok := run.Answers[i]; ok {
			answered++
			if !a.IsCorrect {
				incorrect++
			}
		}
	}
	correct := answered - incorrect
	unanswered := total - answered

	optionCount := run.DefaultOptionCount
	if total > 0 && len(run.Questions[0].Options) > 0 {
		optionCount = len(run.Questions[0].Options)
	}
	score := Score(correct, incorrect, total, optionCount, run.Settings.PenaltySystem)

	result := &models.CompletionResult{
		Score:           score,
		CorrectCount:    correct,
		FailedCount:     incorrect,
		UnansweredCount: unanswered,
	}

	next, err := updateActive(data, func(lib *models.Library) error {
		updateProgressSets(lib, run)
		if err := recordScore(lib, run, result, now); err != nil {
			return err
		}
		stampChallenge(lib, run.Type, now)

		queue := lib.FailedQuestions
		for i, q := range run.Questions {
			a, ok := run.Answers[i]
			passed := ok && a.IsCorrect
			var entry *models.SRSEntry
			queue, entry = sched.Review(queue, q, passed, now)
			if !passed && result.SuggestMnemonicFor == nil && entry.FailureCount >= config.MnemonicSuggestionFailures {
				suggested := q.Clone()
				result.SuggestMnemonicFor = &suggested
			}
		}
		lib.FailedQuestions = queue
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Data = next
	return result, nil
}

// updateProgressSets moves question ids between answered, failed and unanswered
func updateProgressSets(lib *models.Library, run QuizRun) {
	answered := newOrderedSet(lib.AnsweredQuestionIDs)
	failed := newOrderedSet(lib.AllTimeFailedQuestionIDs)
	unanswered := newOrderedSet(lib.AllTimeUnansweredQuestionIDs)

	for i, q := range run.Questions {
		a, ok := run.Answers[i]
		if !ok {
			if !answered.has(q.ID) {
				unanswered.add(q.ID)
			}
			continue
		}
		answered.add(q.ID)
		unanswered.remove(q.ID)
		if a.IsCorrect {
			failed.remove(q.ID)
		} else {
			failed.add(q.ID)
		}
	}

	lib.AnsweredQuestionIDs = answered.list()
	lib.AllTimeFailedQuestionIDs = failed.list()
	lib.AllTimeUnansweredQuestionIDs = unanswered.list()
}

// recordScore prepends a score record to the stored quiz for normal, practice
// and custom runs
func recordScore(lib *models.Library, run QuizRun, result *models.CompletionResult, now time.Time) error {
	if run.QuizID == "" {
		return nil
	}
	full := run.Type == models.QuizNormal
	practice := run.Type == models.QuizPractice || run.Type == models.QuizCustom
	if !full && !practice {
		return nil
	}

	quiz := FindItem(lib.Items, run.QuizID)
	if quiz == nil || quiz.Type != models.ItemQuiz {
		return errNotFound("quiz", run.QuizID)
	}

	record := models.ScoreRecord{
		Score:                result.Score,
		Total:                10,
		Date:                 now.UTC(),
		Type:                 models.ScoreTypePractice,
		QuestionsAttempted:   len(run.Questions),
		TotalQuestionsInQuiz: len(quiz.Questions),
		CorrectCount:         result.CorrectCount,
		FailedCount:          result.FailedCount,
		UnansweredCount:      result.UnansweredCount,
	}
	if full {
		record.Type = models.ScoreTypeFull
		quiz.CompletionCount++
	}

	history := append([]models.ScoreRecord{record}, quiz.ScoreHistory...)
	if len(history) > config.MaxScoreHistory {
		history = history[:config.MaxScoreHistory]
	}
	quiz.ScoreHistory = history
	return nil
}

// stampChallenge records the period of a completed weekly or monthly challenge
func stampChallenge(lib *models.Library, t models.QuizType, now time.Time) {
	period, err := ChallengePeriod(t, now)
	if err != nil {
		return
	}
	if t == models.QuizWeeklyChallenge {
		lib.LastWeeklyChallengeCompleted = period
	} else {
		lib.LastMonthlyChallengeCompleted = period
	}
}

// orderedSet is an insertion-ordered string set
type orderedSet struct {
	order []string
	index map[string]bool
}

func newOrderedSet(ids []string) *orderedSet {
	s := &orderedSet{index: make(map[string]bool, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *orderedSet) has(id string) bool { return s.index[id] }

func (s *orderedSet) add(id string) {
	if s.index[id] {
		return
	}
	s.index[id] = true
	s.order = append(s.order, id)
}

func (s *orderedSet) remove(id string) {
	if !s.index[id] {
		return
	}
	delete(s.index, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *orderedSet) list() []string {
	out := make([]string, 0, len(s.order))
	return append(out, s.order...)
}
