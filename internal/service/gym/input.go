package gym

import (
	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
)

// GenerateSessionInput holds the parameters for starting a practice session.
type GenerateSessionInput struct {
	SpaceID     uuid.UUID
	TargetCount int
}

// Validate checks all fields and collects all errors.
func (i *GenerateSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.SpaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "space_id", Message: "required"})
	}
	if i.TargetCount < 0 || i.TargetCount > maxTargetCount {
		errs = append(errs, domain.FieldError{Field: "target_count", Message: "must be between 0 and 50"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubmitResultInput holds the parameters for submitting one answered exercise.
type SubmitResultInput struct {
	SessionID     uuid.UUID
	SpaceID       uuid.UUID
	VocabID       uuid.UUID
	PracticeType  domain.PracticeType
	Grade         domain.Grade
	Order         int
	UserAnswer    string
	CorrectAnswer string
	ResponseMs    *int
}

// Validate checks all fields and collects all errors.
func (i *SubmitResultInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if i.SpaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "space_id", Message: "required"})
	}
	if i.VocabID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "vocab_id", Message: "required"})
	}
	if !i.PracticeType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "practice_type", Message: "unknown practice type"})
	}
	if !i.Grade.IsValid() {
		errs = append(errs, domain.FieldError{Field: "grade", Message: "must be AGAIN, HARD, GOOD, or EASY"})
	}
	if i.Order < 0 {
		errs = append(errs, domain.FieldError{Field: "order", Message: "must be non-negative"})
	}
	if i.ResponseMs != nil && *i.ResponseMs < 0 {
		errs = append(errs, domain.FieldError{Field: "response_ms", Message: "must be non-negative"})
	}
	if i.ResponseMs != nil && *i.ResponseMs > 600_000 {
		errs = append(errs, domain.FieldError{Field: "response_ms", Message: "max 10 minutes"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CompleteSessionInput holds the parameters for finishing a session.
type CompleteSessionInput struct {
	SessionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *CompleteSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
