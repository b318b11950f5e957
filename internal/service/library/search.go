package library

import (
	"regexp"
	"sort"
	"strings"

	models "queenzz/internal/domain/models/library"
)

var whitespace = regexp.MustCompile(`\s+`)

// Signature is the content identity of a question: its lowercased text with
// whitespace collapsed, then its lowercased options sorted and concatenated
// with all whitespace removed. Ids play no part.
func Signature(q models.Question) string {
	text := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(q.Question)), " ")

	opts := make([]string, len(q.Options))
	for i, o := range q.Options {
		opts[i] = strings.ToLower(o)
	}
	sort.Strings(opts)
	joined := whitespace.ReplaceAllString(strings.Join(opts, ""), "")

	return text + "|" + joined
}

// quizzesInScope returns the quizzes whose id is listed, in tree order
func quizzesInScope(lib *models.Library, quizIDs []string) []*models.Item {
	scope := toSet(quizIDs)
	var quizzes []*models.Item
	for _, quiz := range FlattenQuizzes(lib.Items) {
		if scope[quiz.ID] {
			quizzes = append(quizzes, quiz)
		}
	}
	return quizzes
}

// DuplicateQuestions groups the questions of the given quizzes by signature and
// returns the groups with more than one member, in order of first appearance.
// Every returned question carries its quiz id and title.
func DuplicateQuestions(lib *models.Library, quizIDs []string) [][]models.Question {
	if lib == nil {
		return nil
	}
	var order []string
	groups := make(map[string][]models.Question)
	for _, quiz := range quizzesInScope(lib, quizIDs) {
		for _, q := range quiz.Questions {
			c := q.Clone()
			c.QuizID, c.QuizTitle = quiz.ID, quiz.Title
			sig := Signature(c)
			if _, seen := groups[sig]; !seen {
				order = append(order, sig)
			}
			groups[sig] = append(groups[sig], c)
		}
	}

	dups := [][]models.Question{}
	for _, sig := range order {
		if len(groups[sig]) > 1 {
			dups = append(dups, groups[sig])
		}
	}
	return dups
}

// SearchQuestions filters the questions of the scoped quizzes by text, progress
// status and flag
func SearchQuestions(lib *models.Library, params models.SearchParams) []models.Question {
	results := []models.Question{}
	if lib == nil {
		return results
	}

	query := strings.ToLower(params.Query)
	answered := toSet(lib.AnsweredQuestionIDs)
	failed := toSet(lib.AllTimeFailedQuestionIDs)
	unanswered := toSet(lib.AllTimeUnansweredQuestionIDs)
	queued := make(map[string]bool, len(lib.FailedQuestions))
	for _, e := range lib.FailedQuestions {
		queued[e.Question.ID] = true
	}

	for _, quiz := range quizzesInScope(lib, params.QuizIDs) {
		for _, q := range quiz.Questions {
			if query != "" && !matchesText(q, query, params.SearchIn) {
				continue
			}
			if params.Status.Any() {
				isFailed := failed[q.ID]
				isUnanswered := unanswered[q.ID]
				isCorrect := answered[q.ID] && !isFailed && !isUnanswered
				s := params.Status
				if !(s.Correct && isCorrect) && !(s.Failed && isFailed) &&
					!(s.Unanswered && isUnanswered) && !(s.SRS && queued[q.ID]) {
					continue
				}
			}
			if params.Flag != "" && params.Flag != "all" {
				if q.Flag == nil || string(*q.Flag) != params.Flag {
					continue
				}
			}
			c := q.Clone()
			c.QuizID, c.QuizTitle = quiz.ID, quiz.Title
			results = append(results, c)
		}
	}
	return results
}

func matchesText(q models.Question, query string, in models.SearchFields) bool {
	if in.Question && strings.Contains(strings.ToLower(q.Question), query) {
		return true
	}
	if in.Options {
		for _, o := range q.Options {
			if strings.Contains(strings.ToLower(o), query) {
				return true
			}
		}
	}
	return in.Explanation && strings.Contains(strings.ToLower(q.Explanation), query)
}
