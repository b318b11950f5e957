package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	models "queenzz/internal/domain/models/library"
)

func sampleQuizzes() []*models.Item {
	return []*models.Item{
		{
			Type:  models.ItemQuiz,
			ID:    "q1",
			Title: "Cell biology",
			Questions: []models.Question{
				{ID: "a", Question: "Powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome"}, CorrectAnswer: "Mitochondria"},
				{ID: "b", Question: "Holds DNA?", Options: []string{"Nucleus", "Golgi"}, CorrectAnswer: "Nucleus"},
			},
		},
		{
			Type:  models.ItemQuiz,
			ID:    "q2",
			Title: "Chemistry",
			Questions: []models.Question{
				{ID: "c", Question: "Symbol of gold?", Options: []string{"Ag", "Au", "Gd", "Go"}, CorrectAnswer: "Go"},
				{ID: "d", Question: "Broken?", Options: []string{"x", "y"}, CorrectAnswer: "z"},
			},
		},
	}
}

func TestAnswerKey(t *testing.T) {
	assert.Equal(t, []string{"1-b", "2-a", "3-d", "4-?"}, AnswerKey(sampleQuizzes()))
	assert.Empty(t, AnswerKey(nil))
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want string
	}{
		{"Main Library", "json", "main-library_export.json"},
		{"  Biología Celular ", "xlsx", "biologia-celular_export.xlsx"},
		{"!!!", "json", "library_export.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.name, tt.ext))
		})
	}
}

func TestWorkbook(t *testing.T) {
	content, err := Workbook("Exam prep", sampleQuizzes())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{questionsSheet, answersSheet}, f.GetSheetList())

	title, err := f.GetCellValue(questionsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Exam prep", title)

	quizTitle, err := f.GetCellValue(questionsSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Cell biology", quizTitle)

	number, err := f.GetCellValue(questionsSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "1.", number)

	firstOption, err := f.GetCellValue(questionsSheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "a) Nucleus", firstOption)

	// Four questions split into two columns of two
	left, err := f.GetCellValue(answersSheet, "A3")
	require.NoError(t, err)
	right, err := f.GetCellValue(answersSheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "1-b", left)
	assert.Equal(t, "3-d", right)

	last, err := f.GetCellValue(answersSheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "4-?", last)
}
