package library

// Flag is a user-assigned quality tag on a question
type Flag string

const (
	FlagGood        Flag = "good"
	FlagBad         Flag = "bad"
	FlagInteresting Flag = "interesting"
	FlagReview      Flag = "review"
	FlagSuspended   Flag = "suspended"
)

// Flags lists every valid flag value
var Flags = []Flag{FlagGood, FlagBad, FlagInteresting, FlagReview, FlagSuspended}

// Valid reports whether f is one of the known flags
func (f Flag) Valid() bool {
	for _, known := range Flags {
		if f == known {
			return true
		}
	}
	return false
}

// Question is a multiple-choice question stored inside a quiz
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	SourceRef     string   `json:"sourceRef,omitempty"`
	SourcePage    int      `json:"sourcePage,omitempty"`
	Flag          *Flag    `json:"flag,omitempty"`

	// Set on search and duplicate results only
	QuizID    string `json:"quizId,omitempty"`
	QuizTitle string `json:"quizTitle,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with q
func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	if q.Flag != nil {
		f := *q.Flag
		c.Flag = &f
	}
	return c
}

// CorrectIndex returns the index of the correct answer among the options, or -1
func (q Question) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// Answer is the user's response to the question at a given index of a quiz run
type Answer struct {
	Selected  string `json:"selected"`
	IsCorrect bool   `json:"isCorrect"`
}

// AnswerMap maps question index -> answer. Missing indexes are unanswered.
type AnswerMap map[int]Answer
