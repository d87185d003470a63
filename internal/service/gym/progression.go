package gym

import (
	"math"

	"github.com/vodexapp/vodex-backend/internal/domain"
)

// Base XP per grade. Strictly increasing with answer quality.
var gradeBaseXP = map[domain.Grade]int{
	domain.GradeAgain: 5,
	domain.GradeHard:  15,
	domain.GradeGood:  25,
	domain.GradeEasy:  40,
}

// CalculateXP returns the XP awarded for a single answered exercise.
//
//	xp = round(base * typeMultiplier * (1 + min(stability/30, 2) * 0.5))
//
// The stability bonus saturates at 2x the base factor, so a mature card
// (stability >= 60 days) earns exactly double the flat reward.
func CalculateXP(grade domain.Grade, practiceType domain.PracticeType, stability float64) int {
	base, ok := gradeBaseXP[grade]
	if !ok {
		return 0
	}

	cfg, ok := domain.PracticeTypeConfigFor(practiceType)
	if !ok {
		return 0
	}

	stabilityFactor := math.Min(stability/30.0, 2.0)
	return int(math.Round(float64(base) * cfg.XPMultiplier * (1 + stabilityFactor*0.5)))
}

// CheckUnlocks returns the practice types that became available with the
// given stability and are not yet in unlocked. Only the delta is returned;
// the caller merges it into the card's unlocked set.
func CheckUnlocks(stability float64, unlocked []domain.PracticeType) []domain.PracticeType {
	have := make(map[domain.PracticeType]struct{}, len(unlocked)+1)
	have[domain.BasePracticeType] = struct{}{}
	for _, pt := range unlocked {
		have[pt] = struct{}{}
	}

	var newly []domain.PracticeType
	for _, cfg := range domain.PracticeTypeLadder() {
		if !cfg.Available {
			continue
		}
		if _, ok := have[cfg.Type]; ok {
			continue
		}
		if stability >= cfg.RequiredStability {
			newly = append(newly, cfg.Type)
		}
	}
	return newly
}

// ApplyTransitionPenalty discounts a card's memory state when it is first
// practiced in a harder modality: recognizing a word does not prove the
// learner can produce or spell it. Stability drops to 60%, difficulty rises
// by 0.5 (capped at 10).
func ApplyTransitionPenalty(stability, difficulty float64) (float64, float64) {
	return stability * 0.6, math.Min(difficulty+0.5, 10.0)
}

// isHarderTransition reports whether practicing as next after prev counts
// as a first attempt in a harder modality, which triggers the penalty.
func isHarderTransition(prev *domain.PracticeType, next domain.PracticeType) bool {
	if prev == nil {
		return false
	}
	prevCfg, ok := domain.PracticeTypeConfigFor(*prev)
	if !ok {
		return false
	}
	nextCfg, ok := domain.PracticeTypeConfigFor(next)
	if !ok {
		return false
	}
	return nextCfg.RequiredStability > prevCfg.RequiredStability
}
