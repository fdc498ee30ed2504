package model

// MatchResult represents one ranked candidate with its score breakdown.
// All scores are in [0.0, 1.0] and rounded to four decimal places.
// Results are produced fresh per request and never persisted.
type MatchResult struct {
	ProfileID           int64    `json:"profile_id"`
	ProfileName         string   `json:"profile_name"`
	TotalScore          float64  `json:"total_score"`
	SemanticScore       float64  `json:"semantic_score"`
	SkillScore          float64  `json:"skill_score"`
	MatchingSkills      []string `json:"matching_skills"`      // normalized, sorted
	ComplementarySkills []string `json:"complementary_skills"` // candidate-only, normalized, sorted
	Explanation         string   `json:"explanation"`
}
