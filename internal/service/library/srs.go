package library

import (
	"time"

	"queenzz/internal/config"
	models "queenzz/internal/domain/models/library"
)

// DateLayout is the format of SRS review dates
const DateLayout = "2006-01-02"

var defaultIntervals = []int{1, 3, 7, 14, 30, 90}

// Scheduler implements fixed-table spaced repetition. A queued question's
// level indexes the interval table; it leaves the queue once the level
// reaches the table length or the graduation requirement.
type Scheduler struct {
	intervals  []int
	graduation int
}

// NewScheduler builds a scheduler from settings, falling back to the default table
func NewScheduler(s config.SRSSettings) *Scheduler {
	intervals := s.IntervalsDays
	if len(intervals) == 0 {
		intervals = defaultIntervals
	}
	graduation := s.GraduationRequirement
	if graduation <= 0 {
		graduation = len(intervals)
	}
	return &Scheduler{
		intervals:  append([]int(nil), intervals...),
		graduation: graduation,
	}
}

// reviewDate is today plus the interval of level, as YYYY-MM-DD
func (s *Scheduler) reviewDate(level int, today time.Time) string {
	return today.AddDate(0, 0, s.intervals[level]).Format(DateLayout)
}

// Pass advances an entry after a correct answer. graduated reports that the
// entry must leave the queue.
func (s *Scheduler) Pass(entry models.SRSEntry, today time.Time) (next models.SRSEntry, graduated bool) {
	entry.Level++
	if entry.Level >= len(s.intervals) || entry.Level >= s.graduation {
		return entry, true
	}
	entry.NextReviewDate = s.reviewDate(entry.Level, today)
	return entry, false
}

// Fail resets an entry after a wrong or missing answer
func (s *Scheduler) Fail(entry models.SRSEntry, today time.Time) models.SRSEntry {
	if entry.FailureCount < 1 {
		entry.FailureCount = 1
	}
	entry.Level = 0
	entry.FailureCount++
	entry.NextReviewDate = s.reviewDate(0, today)
	return entry
}

// Enqueue creates the entry for a question failed for the first time
func (s *Scheduler) Enqueue(q models.Question, today time.Time) models.SRSEntry {
	q = q.Clone()
	q.QuizID, q.QuizTitle = "", ""
	return models.SRSEntry{
		Question:       q,
		Level:          0,
		NextReviewDate: s.reviewDate(0, today),
		FailureCount:   1,
	}
}

// Review applies one answer to the queue and returns the new queue. The
// returned entry is the updated entry, or nil when the question graduated or
// was not queued and answered correctly.
func (s *Scheduler) Review(queue []models.SRSEntry, q models.Question, correct bool, today time.Time) ([]models.SRSEntry, *models.SRSEntry) {
	idx := -1
	for i, e := range queue {
		if e.Question.ID == q.ID {
			idx = i
			break
		}
	}

	if correct {
		if idx < 0 {
			return queue, nil
		}
		next, graduated := s.Pass(queue[idx], today)
		if graduated {
			return append(queue[:idx:idx], queue[idx+1:]...), nil
		}
		queue[idx] = next
		return queue, &queue[idx]
	}

	if idx < 0 {
		queue = append(queue, s.Enqueue(q, today))
		return queue, &queue[len(queue)-1]
	}
	queue[idx] = s.Fail(queue[idx], today)
	return queue, &queue[idx]
}

// DueEntries returns queued entries whose review date is on or before today
func DueEntries(queue []models.SRSEntry, today time.Time) []models.SRSEntry {
	cutoff := today.Format(DateLayout)
	due := []models.SRSEntry{}
	for _, e := range queue {
		if e.NextReviewDate <= cutoff {
			due = append(due, e)
		}
	}
	return due
}
