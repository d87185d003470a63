package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Card holds the FSRS-5 scheduling state and gym progression for one
// vocabulary item, scoped to (user, learning space).
type Card struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	VocabID uuid.UUID
	SpaceID uuid.UUID

	State         CardState
	Step          int
	Stability     float64
	Difficulty    float64
	Due           time.Time
	LastReview    *time.Time
	Reps          int
	Lapses        int
	ScheduledDays int
	ElapsedDays   int

	XP               int
	LastPracticeType *PracticeType
	UnlockedTypes    []PracticeType

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCard returns the zero scheduling state for a first-time item:
// difficulty 5.0, stability 0, state NEW, due immediately, base modality unlocked.
func NewCard(userID, vocabID, spaceID uuid.UUID, now time.Time) *Card {
	return &Card{
		ID:            uuid.New(),
		UserID:        userID,
		VocabID:       vocabID,
		SpaceID:       spaceID,
		State:         CardStateNew,
		Stability:     0,
		Difficulty:    5.0,
		Due:           now,
		UnlockedTypes: []PracticeType{BasePracticeType},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsDue returns true if the card needs practice at the given time.
//   - NEW cards are always due.
//   - Other cards are due when Due <= now.
func (c *Card) IsDue(now time.Time) bool {
	if c.State == CardStateNew {
		return true
	}
	return !c.Due.After(now)
}

// HasUnlocked reports whether the given modality is unlocked for the card.
// The base type is treated as always unlocked regardless of stored state.
func (c *Card) HasUnlocked(pt PracticeType) bool {
	if pt == BasePracticeType {
		return true
	}
	return slices.Contains(c.UnlockedTypes, pt)
}

// CardSnapshot captures the scheduling state of a card before a review.
// Stored on each PracticeResult for analytics.
type CardSnapshot struct {
	State         CardState
	Step          int
	Stability     float64
	Difficulty    float64
	Due           time.Time
	LastReview    *time.Time
	Reps          int
	Lapses        int
	ScheduledDays int
	ElapsedDays   int
}

// Snapshot copies the card's scheduling fields.
func (c *Card) Snapshot() CardSnapshot {
	return CardSnapshot{
		State:         c.State,
		Step:          c.Step,
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		Due:           c.Due,
		LastReview:    c.LastReview,
		Reps:          c.Reps,
		Lapses:        c.Lapses,
		ScheduledDays: c.ScheduledDays,
		ElapsedDays:   c.ElapsedDays,
	}
}

// CardUpdateParams holds the fields persisted on a card after a submitted result.
type CardUpdateParams struct {
	State            CardState
	Step             int
	Stability        float64
	Difficulty       float64
	Due              time.Time
	LastReview       *time.Time
	Reps             int
	Lapses           int
	ScheduledDays    int
	ElapsedDays      int
	XPDelta          int
	LastPracticeType PracticeType
	UnlockedTypes    []PracticeType

	// ExpectedDue guards against duplicate submissions: the update applies
	// only while the stored due date still matches the one the exercise was
	// generated from.
	ExpectedDue time.Time
}

// CardStatusCounts holds the count of cards per state.
type CardStatusCounts struct {
	New        int
	Learning   int
	Review     int
	Relearning int
	Total      int
}
