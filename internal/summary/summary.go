// Package summary folds finished sessions into the compact figures a
// caller presents after a review or quiz flow ends.
package summary

import (
	"time"

	"github.com/samber/lo"

	"github.com/avelar/lexmem/internal/domain"
)

// ScheduleChange is the per-word outcome of one review submission.
type ScheduleChange struct {
	WordID         string    `json:"word_id"`
	Quality        int       `json:"quality"`
	Lapsed         bool      `json:"lapsed"`
	NextReviewDate time.Time `json:"next_review_date"`
	IntervalDays   int       `json:"interval_days"`
	EasinessFactor float64   `json:"easiness_factor"`
	Repetitions    int       `json:"repetitions"`
}

// ReviewSummary describes one completed review session.
type ReviewSummary struct {
	ItemsDue       int              `json:"items_due"`
	ItemsCompleted int              `json:"items_completed"`
	Lapses         int              `json:"lapses"`
	Passes         int              `json:"passes"`
	Changes        []ScheduleChange `json:"changes"`
}

// FromReview summarizes the outcomes of a review session. itemsDue is
// the size of the due-set the session started from; an abandoned
// session simply yields fewer outcomes than items due.
func FromReview(itemsDue int, outcomes []domain.ReviewOutcome) ReviewSummary {
	lapses := lo.CountBy(outcomes, func(o domain.ReviewOutcome) bool {
		return o.Quality.IsLapse()
	})

	changes := lo.Map(outcomes, func(o domain.ReviewOutcome, _ int) ScheduleChange {
		return ScheduleChange{
			WordID:         o.WordID.String(),
			Quality:        int(o.Quality),
			Lapsed:         o.Quality.IsLapse(),
			NextReviewDate: o.NextReviewDate,
			IntervalDays:   o.Interval,
			EasinessFactor: o.EasinessFactor,
			Repetitions:    o.Repetitions,
		}
	})

	return ReviewSummary{
		ItemsDue:       itemsDue,
		ItemsCompleted: len(outcomes),
		Lapses:         lapses,
		Passes:         len(outcomes) - lapses,
		Changes:        changes,
	}
}

// QuizSummary describes one scored quiz session.
type QuizSummary struct {
	QuizType       domain.QuizType `json:"quiz_type"`
	Score          int             `json:"score"`
	MaxScore       int             `json:"max_score"`
	CorrectCount   int             `json:"correct_count"`
	IncorrectCount int             `json:"incorrect_count"`
	Accuracy       float64         `json:"accuracy"`
	ElapsedSeconds int             `json:"time_taken_seconds"`
	MissedWords    []string        `json:"missed_words"`
}

// FromQuiz summarizes a scored quiz. The score figures come from the
// scorer's result; the missed-word list is derived from the per-question
// detail so a caller can offer targeted re-study.
func FromQuiz(quizType domain.QuizType, result domain.QuizResult) QuizSummary {
	missed := lo.FilterMap(result.Results, func(r domain.QuestionResult, _ int) (string, bool) {
		return r.Word, !r.IsCorrect
	})

	return QuizSummary{
		QuizType:       quizType,
		Score:          result.Score,
		MaxScore:       result.MaxScore,
		CorrectCount:   result.CorrectCount,
		IncorrectCount: result.IncorrectCount,
		Accuracy:       result.Accuracy,
		ElapsedSeconds: result.ElapsedSeconds,
		MissedWords:    missed,
	}
}
