package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"queenzz/internal/config"
	models "queenzz/internal/domain/models/library"
)

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(config.SRSSettings{})
	assert.Equal(t, defaultIntervals, s.intervals)
	assert.Equal(t, len(defaultIntervals), s.graduation)
}

func TestScheduler_PassAndGraduate(t *testing.T) {
	s := NewScheduler(config.SRSSettings{IntervalsDays: []int{1, 3, 7}, GraduationRequirement: 3})
	entry := s.Enqueue(question("q1", "x?"), testNow)
	assert.Equal(t, "2024-03-15", entry.NextReviewDate)
	assert.Equal(t, 1, entry.FailureCount)

	entry, graduated := s.Pass(entry, testNow)
	assert.False(t, graduated)
	assert.Equal(t, 1, entry.Level)
	assert.Equal(t, "2024-03-17", entry.NextReviewDate)

	entry, graduated = s.Pass(entry, testNow)
	assert.False(t, graduated)
	assert.Equal(t, "2024-03-21", entry.NextReviewDate)

	_, graduated = s.Pass(entry, testNow)
	assert.True(t, graduated)
}

func TestScheduler_GraduationBeforeTableEnd(t *testing.T) {
	s := NewScheduler(config.SRSSettings{IntervalsDays: []int{1, 3, 7, 14}, GraduationRequirement: 2})
	entry := s.Enqueue(question("q1", "x?"), testNow)
	entry, graduated := s.Pass(entry, testNow)
	require.False(t, graduated)
	_, graduated = s.Pass(entry, testNow)
	assert.True(t, graduated)
}

func TestScheduler_Fail(t *testing.T) {
	s := NewScheduler(config.SRSSettings{})
	entry := models.SRSEntry{Question: question("q1", "x?"), Level: 3, NextReviewDate: "2024-04-01", FailureCount: 2}

	entry = s.Fail(entry, testNow)
	assert.Equal(t, 0, entry.Level)
	assert.Equal(t, 3, entry.FailureCount)
	assert.Equal(t, "2024-03-15", entry.NextReviewDate)

	legacy := s.Fail(models.SRSEntry{Question: question("q2", "y?")}, testNow)
	assert.Equal(t, 2, legacy.FailureCount, "entries without a count start from one failure")
}

func TestScheduler_Review(t *testing.T) {
	s := NewScheduler(config.SRSSettings{IntervalsDays: []int{1, 3}, GraduationRequirement: 2})
	q1, q2 := question("q1", "x?"), question("q2", "y?")

	queue, entry := s.Review(nil, q1, true, testNow)
	assert.Empty(t, queue, "a correct answer to an unqueued question changes nothing")
	assert.Nil(t, entry)

	queue, entry = s.Review(queue, q1, false, testNow)
	require.Len(t, queue, 1)
	assert.Equal(t, 1, entry.FailureCount)

	queue, _ = s.Review(queue, q2, false, testNow)
	queue, entry = s.Review(queue, q1, false, testNow)
	assert.Equal(t, 2, entry.FailureCount)

	queue, entry = s.Review(queue, q1, true, testNow)
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Level)

	queue, entry = s.Review(queue, q1, true, testNow)
	assert.Nil(t, entry)
	require.Len(t, queue, 1)
	assert.Equal(t, "q2", queue[0].Question.ID)
}

func TestDueEntries(t *testing.T) {
	queue := []models.SRSEntry{
		{Question: question("past", "?"), NextReviewDate: "2024-03-01"},
		{Question: question("today", "?"), NextReviewDate: "2024-03-14"},
		{Question: question("future", "?"), NextReviewDate: "2024-03-15"},
	}
	due := DueEntries(queue, testNow)
	require.Len(t, due, 2)
	assert.Equal(t, "past", due[0].Question.ID)
	assert.Equal(t, "today", due[1].Question.ID)
	assert.NotNil(t, DueEntries(nil, testNow))
}
