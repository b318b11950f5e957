package library

import (
	"strings"

	models "queenzz/internal/domain/models/library"
)

// FindQuestion returns a copy of the question with the given id and the quiz holding it
func FindQuestion(items []*models.Item, questionID string) (models.Question, *models.Item, bool) {
	for _, quiz := range FlattenQuizzes(items) {
		for _, q := range quiz.Questions {
			if q.ID == questionID {
				return q.Clone(), quiz, true
			}
		}
	}
	return models.Question{}, nil, false
}

// ValidateQuestion checks a question is answerable
func ValidateQuestion(q models.Question) error {
	if strings.TrimSpace(q.Question) == "" {
		return errInvalid("question text is required")
	}
	if len(q.Options) < 2 {
		return errInvalid("question %q needs at least two options", q.ID)
	}
	if q.CorrectIndex() < 0 {
		return errInvalid("correct answer of question %q is not one of its options", q.ID)
	}
	if q.Flag != nil && !q.Flag.Valid() {
		return errInvalid("unknown flag %q", *q.Flag)
	}
	return nil
}

// UpdateQuestion replaces the stored question with the same id. The copy held
// by a queued SRS entry is refreshed too.
func UpdateQuestion(data *models.AppData, updated models.Question) (*models.AppData, error) {
	if err := ValidateQuestion(updated); err != nil {
		return nil, err
	}
	updated = updated.Clone()
	updated.QuizID, updated.QuizTitle = "", ""

	return updateActive(data, func(lib *models.Library) error {
		found := false
		eachQuiz(lib.Items, func(quiz *models.Item) {
			for i := range quiz.Questions {
				if quiz.Questions[i].ID == updated.ID {
					quiz.Questions[i] = updated.Clone()
					found = true
				}
			}
		})
		if !found {
			return errNotFound("question", updated.ID)
		}
		for i := range lib.FailedQuestions {
			if lib.FailedQuestions[i].Question.ID == updated.ID {
				lib.FailedQuestions[i].Question = updated.Clone()
			}
		}
		return nil
	})
}

// MoveQuestions removes the selected questions from every quiz and appends them
// to targetQuizID in their original order.
func MoveQuestions(data *models.AppData, questionIDs []string, targetQuizID string) (*models.AppData, error) {
	if len(questionIDs) == 0 {
		return nil, errInvalid("no questions selected")
	}
	ids := toSet(questionIDs)
	return updateActive(data, func(lib *models.Library) error {
		target := FindItem(lib.Items, targetQuizID)
		if target == nil || target.Type != models.ItemQuiz {
			return errNotFound("quiz", targetQuizID)
		}

		var moved []models.Question
		eachQuiz(lib.Items, func(quiz *models.Item) {
			kept := make([]models.Question, 0, len(quiz.Questions))
			for _, q := range quiz.Questions {
				if ids[q.ID] {
					moved = append(moved, q)
				} else {
					kept = append(kept, q)
				}
			}
			quiz.Questions = kept
		})
		target.Questions = append(target.Questions, moved...)
		return nil
	})
}

// DeleteQuestions removes the selected questions from every quiz and from the SRS queue
func DeleteQuestions(data *models.AppData, questionIDs []string) (*models.AppData, error) {
	ids := toSet(questionIDs)
	return updateActive(data, func(lib *models.Library) error {
		eachQuiz(lib.Items, func(quiz *models.Item) {
			kept := make([]models.Question, 0, len(quiz.Questions))
			for _, q := range quiz.Questions {
				if !ids[q.ID] {
					kept = append(kept, q)
				}
			}
			quiz.Questions = kept
		})
		queue := make([]models.SRSEntry, 0, len(lib.FailedQuestions))
		for _, e := range lib.FailedQuestions {
			if !ids[e.Question.ID] {
				queue = append(queue, e)
			}
		}
		lib.FailedQuestions = queue
		return nil
	})
}

// FlagQuestions sets flag on the selected questions; a nil flag clears it
func FlagQuestions(data *models.AppData, questionIDs []string, flag *models.Flag) (*models.AppData, error) {
	if flag != nil && !flag.Valid() {
		return nil, errInvalid("unknown flag %q", *flag)
	}
	ids := toSet(questionIDs)
	return updateActive(data, func(lib *models.Library) error {
		eachQuiz(lib.Items, func(quiz *models.Item) {
			for i := range quiz.Questions {
				if !ids[quiz.Questions[i].ID] {
					continue
				}
				if flag == nil {
					quiz.Questions[i].Flag = nil
				} else {
					f := *flag
					quiz.Questions[i].Flag = &f
				}
			}
		})
		return nil
	})
}
