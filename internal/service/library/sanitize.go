package library

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	models "queenzz/internal/domain/models/library"
)

// TextSanitizer strips markup from user and generated text before it is
// stored. The result is plain text, so entities are decoded again.
//
// Safe for concurrent use.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer creates a sanitizer that removes every HTML element
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Text returns s without markup
func (s *TextSanitizer) Text(v string) string {
	if !strings.ContainsAny(v, "<>&") {
		return v
	}
	return html.UnescapeString(s.policy.Sanitize(v))
}

// Question sanitizes the text fields of q. The correct answer goes through
// the same policy as the options so that it still matches one of them.
func (s *TextSanitizer) Question(q models.Question) models.Question {
	q = q.Clone()
	q.Question = s.Text(q.Question)
	for i, opt := range q.Options {
		q.Options[i] = s.Text(opt)
	}
	q.CorrectAnswer = s.Text(q.CorrectAnswer)
	q.Explanation = s.Text(q.Explanation)
	q.SourceRef = s.Text(q.SourceRef)
	return q
}

// Quiz sanitizes the title and every question of a generated quiz
func (s *TextSanitizer) Quiz(g models.GeneratedQuiz) models.GeneratedQuiz {
	out := models.GeneratedQuiz{
		Title:     s.Text(g.Title),
		Questions: make([]models.Question, len(g.Questions)),
	}
	for i, q := range g.Questions {
		out.Questions[i] = s.Question(q)
	}
	return out
}

// Cards sanitizes flashcard faces
func (s *TextSanitizer) Cards(cards []models.Flashcard) []models.Flashcard {
	out := make([]models.Flashcard, len(cards))
	for i, c := range cards {
		c.Front = s.Text(c.Front)
		c.Back = s.Text(c.Back)
		out[i] = c
	}
	return out
}
