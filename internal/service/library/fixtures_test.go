package library

import (
	"time"

	models "queenzz/internal/domain/models/library"
)

var testNow = time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)

// question builds a question whose first option is the correct one
func question(id, text string, options ...string) models.Question {
	if len(options) == 0 {
		options = []string{"yes", "no"}
	}
	return models.Question{
		ID:            id,
		Question:      text,
		Options:       options,
		CorrectAnswer: options[0],
	}
}

func quiz(id, title string, questions ...models.Question) *models.Item {
	return &models.Item{
		Type:         models.ItemQuiz,
		ID:           id,
		Title:        title,
		CreatedAt:    testNow,
		Questions:    questions,
		ScoreHistory: []models.ScoreRecord{},
	}
}

func folder(id, name string, children ...*models.Item) *models.Item {
	if children == nil {
		children = []*models.Item{}
	}
	return &models.Item{Type: models.ItemFolder, ID: id, Name: name, Children: children}
}

func deck(id, title string, cards ...models.Flashcard) *models.Item {
	return &models.Item{Type: models.ItemDeck, ID: id, Title: title, CreatedAt: testNow, Cards: cards}
}

// snapshot returns app data with one active library holding items
func snapshot(items ...*models.Item) *models.AppData {
	data := NewAppData(testNow)
	data.Active().Items = items
	return data
}

func ids(items []*models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func questionIDs(qs []models.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func ptr[T any](v T) *T { return &v }
