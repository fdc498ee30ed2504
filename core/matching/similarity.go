package matching

import (
	"math"
	"sort"
	"strings"
)

// CosineSimilarity returns the normalized cosine similarity of two vectors,
// mapped from [-1, 1] into [0, 1]. Mismatched lengths and zero-magnitude
// vectors carry no signal and score 0.0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	cosine := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01((cosine + 1) / 2)
}

// JaccardIndex returns |a ∩ b| / |a ∪ b| for two skill sets.
// Two empty sets share nothing actionable and score 0.0.
func JaccardIndex(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for skill := range a {
		if _, ok := b[skill]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection

	return float64(intersection) / float64(union)
}

// NormalizeSkills trims and lowercases skills, drops empties, deduplicates
// and sorts, so that comparison and display are case-insensitive and stable.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		clean := strings.ToLower(strings.TrimSpace(skill))
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		normalized = append(normalized, clean)
	}
	sort.Strings(normalized)
	return normalized
}

// SkillSet builds the normalized membership set used for overlap scoring.
func SkillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range NormalizeSkills(skills) {
		set[skill] = struct{}{}
	}
	return set
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0.0
	}
	if v > 1 {
		return 1.0
	}
	return v
}
