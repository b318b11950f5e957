package library

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemJSON_CreatedAt(t *testing.T) {
	folder, err := json.Marshal(&Item{Type: ItemFolder, ID: "f", Name: "Folder", Children: []*Item{}})
	require.NoError(t, err)
	assert.NotContains(t, string(folder), "createdAt")

	created := time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)
	quiz, err := json.Marshal(&Item{Type: ItemQuiz, ID: "q", Title: "Quiz", CreatedAt: created})
	require.NoError(t, err)
	assert.Contains(t, string(quiz), `"createdAt":"2024-03-14T10:00:00Z"`)
}
