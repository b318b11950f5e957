package library

import (
	"fmt"
	"math/rand/v2"
	"time"

	models "queenzz/internal/domain/models/library"
)

// ChallengePeriod returns the stamp a challenge completed at now would record:
// "YYYY-W" for weekly challenges and "YYYY-MM" for monthly ones. The weekly
// stamp pairs the calendar year with the ISO week, so 2024-12-30 is "2024-1".
func ChallengePeriod(kind models.QuizType, now time.Time) (string, error) {
	switch kind {
	case models.QuizWeeklyChallenge:
		_, week := now.ISOWeek()
		return fmt.Sprintf("%d-%d", now.Year(), week), nil
	case models.QuizMonthlyChallenge:
		return now.Format("2006-01"), nil
	}
	return "", errInvalid("%q is not a challenge", kind)
}

// ChallengeCompleted reports whether the challenge of kind was already done in now's period
func ChallengeCompleted(lib *models.Library, kind models.QuizType, now time.Time) (bool, error) {
	period, err := ChallengePeriod(kind, now)
	if err != nil {
		return false, err
	}
	if kind == models.QuizWeeklyChallenge {
		return lib.LastWeeklyChallengeCompleted == period, nil
	}
	return lib.LastMonthlyChallengeCompleted == period, nil
}

// ChallengeQuestions draws up to count distinct questions at random from every
// quiz of the library. Suspended questions are never drawn.
func ChallengeQuestions(lib *models.Library, count int, rng *rand.Rand) []models.Question {
	var pool []models.Question
	seen := map[string]bool{}
	for _, quiz := range FlattenQuizzes(lib.Items) {
		for _, q := range quiz.Questions {
			if seen[q.ID] || (q.Flag != nil && *q.Flag == models.FlagSuspended) {
				continue
			}
			seen[q.ID] = true
			q = q.Clone()
			q.QuizID, q.QuizTitle = quiz.ID, quiz.Title
			pool = append(pool, q)
		}
	}
	if count <= 0 {
		return []models.Question{}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if count < len(pool) {
		pool = pool[:count]
	}
	if pool == nil {
		return []models.Question{}
	}
	return pool
}
