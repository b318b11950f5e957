package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"queenzz/internal/config"
	models "queenzz/internal/domain/models/library"
)

// mutableSnapshot has progress, open folders and a document folder so every
// transition below has something to touch
func mutableSnapshot() *models.AppData {
	data := progressSnapshot()
	lib := data.Active()
	lib.OpenFolderIDs = []string{"biology", "cells"}
	lib.Documents = append(lib.Documents, &models.DocumentItem{
		Type: models.DocumentFolder, ID: "papers", Name: "Papers", CreatedAt: testNow,
		Children: []*models.DocumentItem{},
	})
	return data
}

func TestTransitionsLeaveInputUnchanged(t *testing.T) {
	papers := "papers"
	cells := "cells"
	review := models.FlagReview
	tests := []struct {
		name string
		run  func(data *models.AppData) error
	}{
		{"move items", func(data *models.AppData) error {
			_, err := MoveItems(data, []string{"q-chem"}, &cells)
			return err
		}},
		{"delete items", func(data *models.AppData) error {
			_, err := DeleteItems(data, []string{"biology"})
			return err
		}},
		{"rename item", func(data *models.AppData) error {
			_, err := RenameItem(data, "q-chem", "Organic")
			return err
		}},
		{"complete quiz", func(data *models.AppData) error {
			quiz := FindItem(data.Active().Items, "q-cells")
			_, err := CompleteQuiz(data, QuizRun{
				Questions: quiz.Questions,
				Answers:   models.AnswerMap{0: {IsCorrect: true}, 1: {IsCorrect: false}},
				QuizID:    "q-cells",
				Type:      models.QuizNormal,
			}, NewScheduler(config.SRSSettings{}), testNow)
			return err
		}},
		{"flag questions", func(data *models.AppData) error {
			_, err := FlagQuestions(data, []string{"c1", "h1"}, &review)
			return err
		}},
		{"move questions", func(data *models.AppData) error {
			_, err := MoveQuestions(data, []string{"c2"}, "q-chem")
			return err
		}},
		{"import into library", func(data *models.AppData) error {
			_, err := ImportIntoLibrary(data, data.ActiveLibraryID, exportedLibrary(), true, true)
			return err
		}},
		{"import as new library", func(data *models.AppData) error {
			_, err := ImportAsNewLibrary(data, "", exportedLibrary(), true, true, testNow)
			return err
		}},
		{"move documents", func(data *models.AppData) error {
			_, err := MoveDocuments(data, []string{"f1"}, &papers)
			return err
		}},
		{"delete documents", func(data *models.AppData) error {
			_, _, err := DeleteDocuments(data, []string{"f2"})
			return err
		}},
		{"filter library", func(data *models.AppData) error {
			FilterLibrary(data.Active(), []string{"q-cells"}, false)
			return nil
		}},
		{"export library", func(data *models.AppData) error {
			_, err := ExportLibrary(data, []string{"q-chem"}, false, true, func(string) (string, bool) { return "YWJj", true })
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := mutableSnapshot()
			before := data.Clone()

			require.NoError(t, tt.run(data))
			assert.Equal(t, before, data)
		})
	}
}
