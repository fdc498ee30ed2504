package model

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// weightSumTolerance allows for floating point noise when checking that the
// semantic and skill weights sum to 1.0.
const weightSumTolerance = 1e-9

// MatchConfig represents configuration for one matching request.
type MatchConfig struct {
	// Weighting of the two similarity signals, must sum to 1.0
	SemanticWeight float64 `json:"semantic_weight" validate:"gte=0,lte=1"`
	SkillWeight    float64 `json:"skill_weight" validate:"gte=0,lte=1"`

	// Result shaping
	Limit    int     `json:"limit" validate:"gte=0"`          // 0 returns all surviving matches
	MinScore float64 `json:"min_score" validate:"gte=0,lte=1"` // candidates below this never appear

	// Profile ids excluded from the candidate pool
	ExcludeIDs []int64 `json:"exclude_ids,omitempty"`
}

// DefaultMatchConfig returns the default matching configuration.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		SemanticWeight: 0.7,
		SkillWeight:    0.3,
		Limit:          20,
		MinScore:       0.1,
	}
}

// Validate checks field ranges and that the weights sum to 1.0.
func (c *MatchConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if math.Abs(c.SemanticWeight+c.SkillWeight-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: semantic and skill weights must sum to 1.0, got %v",
			ErrInvalidInput, c.SemanticWeight+c.SkillWeight)
	}
	return nil
}
