package library

import "time"

// ItemType discriminates the library tree union
type ItemType string

const (
	ItemFolder ItemType = "folder"
	ItemQuiz   ItemType = "quiz"
	ItemDeck   ItemType = "deck"
)

// Item is a node of the library tree: a folder, a saved quiz or a flashcard deck.
// Only the fields of its Type are populated.
type Item struct {
	Type ItemType `json:"type"`
	ID   string   `json:"id"`

	// folder
	Name     string  `json:"name,omitempty"`
	Children []*Item `json:"children,omitempty"`

	// quiz and deck
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`

	// quiz
	Questions       []Question    `json:"questions,omitempty"`
	ScoreHistory    []ScoreRecord `json:"scoreHistory,omitempty"`
	CompletionCount int           `json:"completionCount,omitempty"`

	// deck
	Cards []Flashcard `json:"cards,omitempty"`
}

// IsFolder reports whether the item can own children
func (i *Item) IsFolder() bool { return i != nil && i.Type == ItemFolder }

// DisplayName returns the folder name or the quiz/deck title
func (i *Item) DisplayName() string {
	if i.Type == ItemFolder {
		return i.Name
	}
	return i.Title
}

// Clone returns a deep copy of the item and its subtree
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	if i.Children != nil {
		c.Children = CloneItems(i.Children)
	}
	if i.Questions != nil {
		c.Questions = make([]Question, len(i.Questions))
		for k := range i.Questions {
			c.Questions[k] = i.Questions[k].Clone()
		}
	}
	if i.ScoreHistory != nil {
		c.ScoreHistory = append([]ScoreRecord(nil), i.ScoreHistory...)
	}
	if i.Cards != nil {
		c.Cards = append([]Flashcard(nil), i.Cards...)
	}
	return &c
}

// CloneItems deep-copies a list of items
func CloneItems(items []*Item) []*Item {
	if items == nil {
		return nil
	}
	out := make([]*Item, len(items))
	for k, it := range items {
		out[k] = it.Clone()
	}
	return out
}

// ScoreRecord is one entry of a quiz's score history
type ScoreRecord struct {
	Score                float64   `json:"score"`
	Total                int       `json:"total"`
	Date                 time.Time `json:"date"`
	Type                 string    `json:"type"` // "full" or "practice"
	QuestionsAttempted   int       `json:"questionsAttempted"`
	TotalQuestionsInQuiz int       `json:"totalQuestionsInQuiz"`
	CorrectCount         int       `json:"correctCount"`
	FailedCount          int       `json:"failedCount"`
	UnansweredCount      int       `json:"unansweredCount"`
}

const (
	ScoreTypeFull     = "full"
	ScoreTypePractice = "practice"
)

// Flashcard is a single front/back card of a deck
type Flashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GeneratedQuiz is a titled list of questions not yet stored in a library
type GeneratedQuiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}
