package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vodexapp/vodex-backend/internal/service/gym/fsrs"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Gym.validate(); err != nil {
		return fmt.Errorf("gym: %w", err)
	}
	return nil
}

func (g *GymConfig) validate() error {
	if g.DesiredRetention <= 0 || g.DesiredRetention >= 1 {
		return fmt.Errorf("desired_retention must be in (0, 1) (got %v)", g.DesiredRetention)
	}
	if g.MaxIntervalDays <= 0 {
		return fmt.Errorf("max_interval_days must be > 0 (got %d)", g.MaxIntervalDays)
	}

	steps, err := ParseSteps(g.LearningStepsRaw)
	if err != nil {
		return fmt.Errorf("learning_steps: %w", err)
	}
	g.LearningSteps = steps

	steps, err = ParseSteps(g.RelearningStepsRaw)
	if err != nil {
		return fmt.Errorf("relearning_steps: %w", err)
	}
	g.RelearningSteps = steps

	weights, err := ParseWeights(g.WeightsRaw)
	if err != nil {
		return fmt.Errorf("fsrs_weights: %w", err)
	}
	if err := fsrs.ValidateWeights(weights); err != nil {
		return fmt.Errorf("fsrs_weights: %w", err)
	}
	g.Weights = weights

	return nil
}

// ParseSteps parses a comma-separated string of durations (e.g. "1m,10m")
// into a slice of time.Duration. An empty string returns a nil slice.
func ParseSteps(raw string) ([]time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	steps := make([]time.Duration, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseDuration(p)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", p, err)
		}
		steps = append(steps, d)
	}

	return steps, nil
}

// ParseWeights parses a comma-separated string of 19 floats into an FSRS
// weight vector. An empty string returns the stock weights.
func ParseWeights(raw string) ([19]float64, error) {
	var w [19]float64

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fsrs.DefaultWeights, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != len(w) {
		return w, fmt.Errorf("expected %d weights, got %d", len(w), len(parts))
	}

	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return w, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		w[i] = v
	}

	return w, nil
}
