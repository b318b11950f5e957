package library

import (
	"sort"
	"time"
)

// AppData is the whole persisted state: every library plus the active one
type AppData struct {
	ActiveLibraryID string              `json:"activeLibraryId"`
	Libraries       map[string]*Library `json:"libraries"`
}

// Active returns the active library or nil
func (d *AppData) Active() *Library {
	if d == nil || d.ActiveLibraryID == "" {
		return nil
	}
	return d.Libraries[d.ActiveLibraryID]
}

// SortedLibraries returns libraries ordered by creation time, then id
func (d *AppData) SortedLibraries() []*Library {
	out := make([]*Library, 0, len(d.Libraries))
	for _, lib := range d.Libraries {
		out = append(out, lib)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Clone deep-copies the snapshot
func (d *AppData) Clone() *AppData {
	if d == nil {
		return nil
	}
	c := &AppData{
		ActiveLibraryID: d.ActiveLibraryID,
		Libraries:       make(map[string]*Library, len(d.Libraries)),
	}
	for id, lib := range d.Libraries {
		c.Libraries[id] = lib.Clone()
	}
	return c
}

// Library is a named collection with its own tree, documents and progress
type Library struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	Items     []*Item         `json:"library"`
	Documents []*DocumentItem `json:"documentLibrary"`

	FailedQuestions              []SRSEntry  `json:"failedQuestions"`
	AnsweredQuestionIDs          []string    `json:"answeredQuestionIds"`
	AllTimeFailedQuestionIDs     []string    `json:"allTimeFailedQuestionIds"`
	AllTimeUnansweredQuestionIDs []string    `json:"allTimeUnansweredQuestionIds"`
	FailedFlashcards             []Flashcard `json:"failedFlashcards"`

	PausedQuiz        *PausedQuizState   `json:"pausedQuizState"`
	Mnemonics         []MnemonicRule     `json:"mnemonics"`
	OpenFolderIDs     []string           `json:"openFolderIds"`
	StudyPlanConfig   *StudyPlanConfig   `json:"studyPlanConfig,omitempty"`
	StudyPlanSessions []StudyPlanSession `json:"studyPlanSessions"`

	LastWeeklyChallengeCompleted  string `json:"lastWeeklyChallengeCompleted,omitempty"`
	LastMonthlyChallengeCompleted string `json:"lastMonthlyChallengeCompleted,omitempty"`

	// Pre-document-tree storage, migrated on load
	StoredFiles []LegacyStoredFile `json:"storedFiles,omitempty"`
	StoredURLs  []LegacyStoredURL  `json:"storedURLs,omitempty"`
}

// Clone deep-copies the library
func (l *Library) Clone() *Library {
	if l == nil {
		return nil
	}
	c := *l
	c.Items = CloneItems(l.Items)
	c.Documents = CloneDocuments(l.Documents)
	if l.FailedQuestions != nil {
		c.FailedQuestions = make([]SRSEntry, len(l.FailedQuestions))
		for i, e := range l.FailedQuestions {
			e.Question = e.Question.Clone()
			c.FailedQuestions[i] = e
		}
	}
	c.AnsweredQuestionIDs = cloneStrings(l.AnsweredQuestionIDs)
	c.AllTimeFailedQuestionIDs = cloneStrings(l.AllTimeFailedQuestionIDs)
	c.AllTimeUnansweredQuestionIDs = cloneStrings(l.AllTimeUnansweredQuestionIDs)
	c.OpenFolderIDs = cloneStrings(l.OpenFolderIDs)
	if l.FailedFlashcards != nil {
		c.FailedFlashcards = append([]Flashcard(nil), l.FailedFlashcards...)
	}
	if l.PausedQuiz != nil {
		p := l.PausedQuiz.Clone()
		c.PausedQuiz = &p
	}
	if l.Mnemonics != nil {
		c.Mnemonics = append([]MnemonicRule(nil), l.Mnemonics...)
	}
	if l.StudyPlanConfig != nil {
		cfg := *l.StudyPlanConfig
		cfg.QuizIDs = cloneStrings(l.StudyPlanConfig.QuizIDs)
		c.StudyPlanConfig = &cfg
	}
	if l.StudyPlanSessions != nil {
		c.StudyPlanSessions = make([]StudyPlanSession, len(l.StudyPlanSessions))
		for i, s := range l.StudyPlanSessions {
			s.QuizIDs = cloneStrings(s.QuizIDs)
			c.StudyPlanSessions[i] = s
		}
	}
	if l.StoredFiles != nil {
		c.StoredFiles = append([]LegacyStoredFile(nil), l.StoredFiles...)
	}
	if l.StoredURLs != nil {
		c.StoredURLs = append([]LegacyStoredURL(nil), l.StoredURLs...)
	}
	return &c
}

// SRSEntry is a question queued for spaced repetition
type SRSEntry struct {
	Question       Question `json:"question"`
	Level          int      `json:"srsLevel"`
	NextReviewDate string   `json:"nextReviewDate"` // YYYY-MM-DD
	FailureCount   int      `json:"failureCount"`
}

// PausedQuizState is a quiz run saved mid-way
type PausedQuizState struct {
	QuizID       string     `json:"quizId,omitempty"`
	QuizType     QuizType   `json:"quizType"`
	Questions    []Question `json:"questions"`
	Answers      AnswerMap  `json:"userAnswers"`
	CurrentIndex int        `json:"currentQuestionIndex"`
	TimeLeft     int        `json:"timeLeft,omitempty"`
	PausedAt     time.Time  `json:"pausedAt"`
}

// Clone deep-copies the paused state
func (p PausedQuizState) Clone() PausedQuizState {
	c := p
	if p.Questions != nil {
		c.Questions = make([]Question, len(p.Questions))
		for i, q := range p.Questions {
			c.Questions[i] = q.Clone()
		}
	}
	if p.Answers != nil {
		c.Answers = make(AnswerMap, len(p.Answers))
		for k, v := range p.Answers {
			c.Answers[k] = v
		}
	}
	return c
}

// MnemonicRule is a memory aid attached to a question
type MnemonicRule struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
	ImageRef   string `json:"imageRef,omitempty"`
}

// StudyPlanConfig configures the study planner
type StudyPlanConfig struct {
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	QuizIDs        []string `json:"quizIds"`
	MinutesPerDay  int      `json:"minutesPerDay"`
	DaysPerWeek    int      `json:"daysPerWeek,omitempty"`
	IncludeReviews bool     `json:"includeReviews"`
}

// StudyPlanSession is one scheduled planner session
type StudyPlanSession struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	QuizIDs   []string `json:"quizIds"`
	Completed bool     `json:"completed"`
}

// LegacyStoredFile is a file stored inline on the library before documents existed
type LegacyStoredFile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	MimeType      string    `json:"mimeType"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"createdAt"`
	Base64Content string    `json:"base64Content,omitempty"`
}

// LegacyStoredURL is a bookmarked url stored before documents existed
type LegacyStoredURL struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
