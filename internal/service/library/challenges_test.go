package library

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"queenzz/internal/domain"
	models "queenzz/internal/domain/models/library"
)

func TestChallengePeriod(t *testing.T) {
	tests := []struct {
		name    string
		kind    models.QuizType
		now     time.Time
		want    string
		wantErr bool
	}{
		{"weekly", models.QuizWeeklyChallenge, testNow, "2024-11", false},
		{"weekly at year boundary keeps calendar year", models.QuizWeeklyChallenge, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), "2024-1", false},
		{"weekly in january of previous iso year", models.QuizWeeklyChallenge, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), "2027-53", false},
		{"monthly", models.QuizMonthlyChallenge, testNow, "2024-03", false},
		{"not a challenge", models.QuizNormal, testNow, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChallengePeriod(tt.kind, tt.now)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChallengeCompleted(t *testing.T) {
	lib := NewLibrary("Bio", testNow)
	lib.LastWeeklyChallengeCompleted = "2024-11"
	lib.LastMonthlyChallengeCompleted = "2024-02"

	done, err := ChallengeCompleted(lib, models.QuizWeeklyChallenge, testNow)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = ChallengeCompleted(lib, models.QuizWeeklyChallenge, testNow.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.False(t, done)

	done, err = ChallengeCompleted(lib, models.QuizMonthlyChallenge, testNow)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestChallengeQuestions(t *testing.T) {
	suspended := question("s1", "Suspended?")
	suspended.Flag = ptr(models.FlagSuspended)
	lib := NewLibrary("Bio", testNow)
	lib.Items = []*models.Item{
		quiz("q1", "One", question("a", "a?"), question("b", "b?"), suspended),
		folder("f", "Folder", quiz("q2", "Two", question("c", "c?"), question("a", "a again?"))),
	}
	rng := rand.New(rand.NewPCG(1, 2))

	drawn := ChallengeQuestions(lib, 10, rng)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, questionIDs(drawn), "suspended and repeated ids are skipped")
	for _, q := range drawn {
		assert.NotEmpty(t, q.QuizID)
		assert.NotEmpty(t, q.QuizTitle)
	}

	assert.Len(t, ChallengeQuestions(lib, 2, rng), 2)
	for _, count := range []int{0, -1} {
		none := ChallengeQuestions(lib, count, rng)
		assert.NotNil(t, none)
		assert.Empty(t, none, "count %d", count)
	}
	empty := ChallengeQuestions(NewLibrary("Empty", testNow), 5, rng)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
