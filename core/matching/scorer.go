package matching

import (
	"fmt"
	"math"

	"github.com/siherrmann/matchmaker/model"
)

const weightSumTolerance = 1e-9

// Weights holds the blend between semantic similarity and skill overlap.
type Weights struct {
	Semantic float64
	Skill    float64
}

// DefaultWeights favours semantic alignment over raw skill overlap.
func DefaultWeights() Weights {
	return Weights{Semantic: 0.7, Skill: 0.3}
}

// Validate checks that both weights are in [0, 1] and sum to 1.
func (w Weights) Validate() error {
	if w.Semantic < 0 || w.Semantic > 1 || w.Skill < 0 || w.Skill > 1 {
		return fmt.Errorf("weights must be in [0, 1], got semantic %v and skill %v: %w", w.Semantic, w.Skill, model.ErrInvalidInput)
	}
	if math.Abs(w.Semantic+w.Skill-1) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1, got %v: %w", w.Semantic+w.Skill, model.ErrInvalidInput)
	}
	return nil
}

// HybridScore is the scored comparison of a searcher against one candidate.
// All three scores are rounded to 4 decimal places; Total is computed from
// the unrounded components so rounding error does not compound.
type HybridScore struct {
	Total    float64
	Semantic float64
	Skill    float64
}

// Score blends cosine similarity of the embedding vectors with the Jaccard
// index of the skill sets according to the configured weights.
func (w Weights) Score(searcherVector, candidateVector []float32, searcherSkills, candidateSkills map[string]struct{}) HybridScore {
	semantic := CosineSimilarity(searcherVector, candidateVector)
	skill := JaccardIndex(searcherSkills, candidateSkills)
	total := clamp01(w.Semantic*semantic + w.Skill*skill)

	return HybridScore{
		Total:    roundScore(total),
		Semantic: roundScore(semantic),
		Skill:    roundScore(skill),
	}
}

// roundScore rounds half away from zero to 4 decimal places.
func roundScore(v float64) float64 {
	return math.Round(v*10000) / 10000
}
