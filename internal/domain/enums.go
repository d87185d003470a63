package domain

// CardState represents the FSRS-5 learning state of a card.
type CardState string

const (
	CardStateNew        CardState = "NEW"
	CardStateLearning   CardState = "LEARNING"
	CardStateReview     CardState = "REVIEW"
	CardStateRelearning CardState = "RELEARNING"
)

func (s CardState) String() string { return string(s) }

func (s CardState) IsValid() bool {
	switch s {
	case CardStateNew, CardStateLearning, CardStateReview, CardStateRelearning:
		return true
	}
	return false
}

// Grade represents the user's self-assessed recall quality.
// The wire contract is a 4-level ordered integer: 1=Again .. 4=Easy.
type Grade int

const (
	GradeAgain Grade = 1
	GradeHard  Grade = 2
	GradeGood  Grade = 3
	GradeEasy  Grade = 4
)

func (g Grade) IsValid() bool {
	return g >= GradeAgain && g <= GradeEasy
}

func (g Grade) String() string {
	switch g {
	case GradeAgain:
		return "AGAIN"
	case GradeHard:
		return "HARD"
	case GradeGood:
		return "GOOD"
	case GradeEasy:
		return "EASY"
	default:
		return "UNKNOWN"
	}
}
