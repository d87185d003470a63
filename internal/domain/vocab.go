package domain

import (
	"github.com/google/uuid"
)

// Vocab is a read-only row from the vocabulary catalog ("VoDex"). The gym
// never mutates vocabulary; entries are produced by the content pipeline.
type Vocab struct {
	ID          uuid.UUID
	SpaceID     uuid.UUID
	Word        string
	Translation string
	Example     string
	ImageURL    string
	AudioURL    string
}
