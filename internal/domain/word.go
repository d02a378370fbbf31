package domain

import (
	"time"

	"github.com/google/uuid"
)

// MinEaseFactor is the floor for a word's easiness factor. The SM-2 family
// never lets the factor drop below this value.
const MinEaseFactor = 1.3

// DefaultEaseFactor is the easiness factor assigned to a word when its
// learning state is first created.
const DefaultEaseFactor = 2.5

// Quality is a 0-5 self-assessment of recall submitted after a review.
// Values 0-2 are lapses; 3-5 are passes. The UI shortcuts ("Again"=1,
// "Hard"=2, "Good"=3, "Easy"=5) are presentation choices; any value in
// range is accepted.
type Quality int

// IsValid reports whether q is inside the 0-5 rating domain.
func (q Quality) IsValid() bool {
	return q >= 0 && q <= 5
}

// IsLapse reports whether q resets the word's repetition streak.
func (q Quality) IsLapse() bool {
	return q <= 2
}

// WordLearningState tracks the spaced-repetition schedule for one
// (user, word) pair. It is owned by the remote persistence collaborator;
// the core only reads it and receives updated copies from the
// SchedulingEngine.
type WordLearningState struct {
	WordID         uuid.UUID  `json:"word_id"`
	EasinessFactor float64    `json:"easiness_factor"` // multiplier controlling interval growth, >= 1.3
	Interval       int        `json:"interval"`        // days until the next review
	Repetitions    int        `json:"repetitions"`     // consecutive passes; reset to 0 on a lapse
	NextReviewDate time.Time  `json:"next_review_date"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
}

// NewWordLearningState creates the learning state for a freshly added word.
// The word is due immediately.
func NewWordLearningState(wordID uuid.UUID, now time.Time) (*WordLearningState, error) {
	state := &WordLearningState{
		WordID:         wordID,
		EasinessFactor: DefaultEaseFactor,
		Interval:       0,
		Repetitions:    0,
		NextReviewDate: now,
		LastReviewedAt: nil,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}

	return state, nil
}

// Validate checks the learning-state invariants. A state that fails here is
// a data-integrity problem and must be rejected, not fixed up.
func (s *WordLearningState) Validate() error {
	if s.WordID == uuid.Nil {
		return ErrEmptyWordID
	}

	if s.Interval < 0 {
		return ErrInvalidInterval
	}

	if s.Repetitions < 0 {
		return ErrInvalidRepetition
	}

	if s.EasinessFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	return nil
}

// IsDue reports whether the word should be presented for review at now.
func (s *WordLearningState) IsDue(now time.Time) bool {
	return !s.NextReviewDate.After(now)
}

// Word is the display content for a vocabulary entry.
type Word struct {
	ID         uuid.UUID `json:"id"`
	Word       string    `json:"word"`
	Definition string    `json:"definition"`
	Mnemonic   string    `json:"mnemonic,omitempty"`
	Sentence   string    `json:"sentence,omitempty"`
	Synonyms   []string  `json:"synonyms"`
	Antonyms   []string  `json:"antonyms,omitempty"`
	AudioURL   string    `json:"audio_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewItem is a due word exposed to a review session: the display content
// plus the learning-state fields needed for context. It is an immutable
// snapshot for the lifetime of one session item.
type ReviewItem struct {
	WordID         uuid.UUID  `json:"id"`
	Word           string     `json:"word"`
	Definition     string     `json:"definition"`
	Mnemonic       string     `json:"mnemonic,omitempty"`
	Synonyms       []string   `json:"synonyms"`
	AudioURL       string     `json:"audio_url,omitempty"`
	EasinessFactor float64    `json:"easiness_factor"`
	Interval       int        `json:"interval"`
	Repetitions    int        `json:"repetitions"`
	NextReviewDate time.Time  `json:"next_review_date"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// ReviewOutcome is the authoritative schedule change recorded by the remote
// collaborator for one submitted rating.
type ReviewOutcome struct {
	WordID         uuid.UUID `json:"word_id"`
	Quality        Quality   `json:"quality"`
	NextReviewDate time.Time `json:"next_review_date"`
	EasinessFactor float64   `json:"easiness_factor"`
	Interval       int       `json:"interval"`
	Repetitions    int       `json:"repetitions"`
}
