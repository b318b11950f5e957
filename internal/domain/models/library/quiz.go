package library

// QuizType is the kind of quiz run being completed
type QuizType string

const (
	QuizNormal           QuizType = "normal"
	QuizPractice         QuizType = "practice"
	QuizCustom           QuizType = "custom"
	QuizSRS              QuizType = "srs"
	QuizWeeklyChallenge  QuizType = "weekly_challenge"
	QuizMonthlyChallenge QuizType = "monthly_challenge"
)

// PenaltySystem selects how wrong answers affect the score
type PenaltySystem string

const (
	PenaltyStandard PenaltySystem = "standard"
	PenaltyNone     PenaltySystem = "none"
)

// QuizSettings are the per-run options relevant to scoring
type QuizSettings struct {
	PenaltySystem PenaltySystem `json:"penaltySystem" yaml:"penalty_system"`
}

// CompletionResult is the outcome of completing a quiz run
type CompletionResult struct {
	Data               *AppData  `json:"-"`
	Score              float64   `json:"score"`
	CorrectCount       int       `json:"correctCount"`
	FailedCount        int       `json:"failedCount"`
	UnansweredCount    int       `json:"unansweredCount"`
	SuggestMnemonicFor *Question `json:"suggestMnemonicFor,omitempty"`
}

// SearchParams filters questions across quizzes of the active library
type SearchParams struct {
	Query    string       `json:"query"`
	SearchIn SearchFields `json:"searchIn"`
	Status   StatusFilter `json:"status"`
	Flag     string       `json:"flag"` // a Flag value or "all"
	QuizIDs  []string     `json:"quizIds"`
}

// SearchFields selects which question fields the text query matches
type SearchFields struct {
	Question    bool `json:"question"`
	Options     bool `json:"options"`
	Explanation bool `json:"explanation"`
}

// StatusFilter selects progress states; an all-false filter matches everything
type StatusFilter struct {
	Correct    bool `json:"correct"`
	Failed     bool `json:"failed"`
	Unanswered bool `json:"unanswered"`
	SRS        bool `json:"srs"`
}

// Any reports whether at least one status is selected
func (s StatusFilter) Any() bool {
	return s.Correct || s.Failed || s.Unanswered || s.SRS
}
