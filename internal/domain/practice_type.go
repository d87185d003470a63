package domain

import (
	"fmt"
	"sort"
)

// PracticeType identifies an exercise modality in the gym.
type PracticeType string

const (
	// PracticeTypeRecognition is the base modality: see the word, recall
	// the translation. Always unlocked, always available.
	PracticeTypeRecognition PracticeType = "RECOGNITION"
	PracticeTypeProduction  PracticeType = "PRODUCTION"
	PracticeTypeSpelling    PracticeType = "SPELLING"
	PracticeTypeListening   PracticeType = "LISTENING"
	PracticeTypeCloze       PracticeType = "CLOZE"
)

func (p PracticeType) String() string { return string(p) }

func (p PracticeType) IsValid() bool {
	switch p {
	case PracticeTypeRecognition, PracticeTypeProduction, PracticeTypeSpelling,
		PracticeTypeListening, PracticeTypeCloze:
		return true
	}
	return false
}

// ExerciseStyle determines the prompt/answer direction of an exercise.
type ExerciseStyle string

const (
	// StyleRecognition prompts with the target-language word, expects the translation.
	StyleRecognition ExerciseStyle = "RECOGNITION"
	// StyleProduction prompts with the translation, expects the target-language word.
	StyleProduction ExerciseStyle = "PRODUCTION"
)

// PracticeTypeConfig is the static per-modality configuration. The set of
// configs forms an implicit unlock ladder ordered by RequiredStability.
type PracticeTypeConfig struct {
	Type              PracticeType
	Label             string
	Style             ExerciseStyle
	RequiredStability float64 // days of stability needed to unlock
	XPMultiplier      float64
	Available         bool // false = "coming soon", never unlocks
}

// practiceTypeConfigs is the closed config table. Every PracticeType must
// have exactly one entry; validatePracticeTypeTable enforces this at init.
var practiceTypeConfigs = map[PracticeType]PracticeTypeConfig{
	PracticeTypeRecognition: {
		Type:              PracticeTypeRecognition,
		Label:             "Flashcard",
		Style:             StyleRecognition,
		RequiredStability: 0,
		XPMultiplier:      1.0,
		Available:         true,
	},
	PracticeTypeProduction: {
		Type:              PracticeTypeProduction,
		Label:             "Reverse recall",
		Style:             StyleProduction,
		RequiredStability: 3,
		XPMultiplier:      1.5,
		Available:         true,
	},
	PracticeTypeSpelling: {
		Type:              PracticeTypeSpelling,
		Label:             "Type the word",
		Style:             StyleProduction,
		RequiredStability: 7,
		XPMultiplier:      2.0,
		Available:         true,
	},
	PracticeTypeListening: {
		Type:              PracticeTypeListening,
		Label:             "Listening",
		Style:             StyleRecognition,
		RequiredStability: 14,
		XPMultiplier:      2.0,
		Available:         false,
	},
	PracticeTypeCloze: {
		Type:              PracticeTypeCloze,
		Label:             "Fill the gap",
		Style:             StyleProduction,
		RequiredStability: 30,
		XPMultiplier:      2.5,
		Available:         false,
	},
}

// practiceTypeLadder holds all configs ordered by RequiredStability ascending.
var practiceTypeLadder []PracticeTypeConfig

func init() {
	if err := validatePracticeTypeTable(); err != nil {
		panic(err)
	}
	for _, cfg := range practiceTypeConfigs {
		practiceTypeLadder = append(practiceTypeLadder, cfg)
	}
	sort.Slice(practiceTypeLadder, func(i, j int) bool {
		return practiceTypeLadder[i].RequiredStability < practiceTypeLadder[j].RequiredStability
	})
}

// validatePracticeTypeTable checks the config table exhaustively. A missing
// or malformed mapping is a programming error caught at process start.
func validatePracticeTypeTable() error {
	all := []PracticeType{
		PracticeTypeRecognition, PracticeTypeProduction, PracticeTypeSpelling,
		PracticeTypeListening, PracticeTypeCloze,
	}
	for _, pt := range all {
		cfg, ok := practiceTypeConfigs[pt]
		if !ok {
			return fmt.Errorf("practice type %s has no config", pt)
		}
		if cfg.Type != pt {
			return fmt.Errorf("practice type %s: config tagged %s", pt, cfg.Type)
		}
		if cfg.XPMultiplier <= 0 {
			return fmt.Errorf("practice type %s: xp multiplier must be positive", pt)
		}
		if cfg.RequiredStability < 0 {
			return fmt.Errorf("practice type %s: required stability must be >= 0", pt)
		}
	}
	base, ok := practiceTypeConfigs[PracticeTypeRecognition]
	if !ok || !base.Available || base.RequiredStability != 0 {
		return fmt.Errorf("base practice type must be available with zero required stability")
	}
	return nil
}

// PracticeTypeConfigFor returns the config for a practice type.
func PracticeTypeConfigFor(pt PracticeType) (PracticeTypeConfig, bool) {
	cfg, ok := practiceTypeConfigs[pt]
	return cfg, ok
}

// PracticeTypeLadder returns all configs ordered by RequiredStability
// ascending. The returned slice is shared; callers must not mutate it.
func PracticeTypeLadder() []PracticeTypeConfig {
	return practiceTypeLadder
}

// BasePracticeType is the modality every card starts with.
const BasePracticeType = PracticeTypeRecognition
