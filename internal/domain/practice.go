package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is one generated drill within a practice session. Ephemeral:
// it lives only in the session payload returned to the client and is never
// persisted except through its resulting PracticeResult.
type Exercise struct {
	VocabID     uuid.UUID
	Word        string
	Translation string
	Example     string
	ImageURL    string
	AudioURL    string

	PracticeType PracticeType
	// IntendedType is set when an unavailable modality was selected and the
	// exercise fell back to the recognition shape. Kept for future use.
	IntendedType PracticeType

	Prompt string
	Answer string
	Hints  []string
	Order  int
}

// PracticeSession is a bounded batch of exercises tracked from creation to
// completion. Counters are mutated once per submitted result via atomic
// increments.
type PracticeSession struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	SpaceID        uuid.UUID
	TargetCount    int
	StartedAt      time.Time
	FinishedAt     *time.Time
	CompletedCount int
	TotalXP        int
}

// PracticeResult is the append-only record of one answered exercise.
// Immutable once written; session statistics are recomputed from these rows.
type PracticeResult struct {
	ID               uuid.UUID
	SessionID        uuid.UUID
	VocabID          uuid.UUID
	PracticeType     PracticeType
	Grade            Grade
	UserAnswer       string
	CorrectAnswer    string
	ResponseTimeMs   int
	XPGained         int
	StabilityBefore  float64
	StabilityAfter   float64
	DifficultyBefore float64
	DifficultyAfter  float64
	Order            int
	AnsweredAt       time.Time
}

// GradeCounts holds per-grade counters for a session.
type GradeCounts struct {
	Again int
	Hard  int
	Good  int
	Easy  int
}

// SessionSummary holds aggregated statistics of a completed session,
// recomputed from immutable PracticeResult rows on every call.
type SessionSummary struct {
	SessionID          uuid.UUID
	CompletedCount     int
	TotalXP            int
	RatingDistribution GradeCounts
	AvgResponseTimeMs  float64
	FinishedAt         time.Time
}

// ResultAggregation holds per-session statistics computed in SQL over the
// immutable PracticeResult rows.
type ResultAggregation struct {
	Count         int
	TotalXP       int
	AgainCount    int
	HardCount     int
	GoodCount     int
	EasyCount     int
	AvgResponseMs *float64
}

// GymStats holds aggregate numbers for the gym dashboard.
type GymStats struct {
	DueCount     int
	TotalWords   int
	TotalXP      int
	StatusCounts CardStatusCounts
}
