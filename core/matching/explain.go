package matching

import (
	"fmt"
	"strings"
)

const explainSkillLimit = 3

// Explain renders a human readable explanation for a scored match: an
// overall verdict from the total score, a semantic alignment clause when
// the embeddings agree strongly, and up to three shared and complementary
// skills each.
func Explain(candidateName string, score HybridScore, matchingSkills, complementarySkills []string) string {
	var parts []string

	switch {
	case score.Total >= 0.8:
		parts = append(parts, fmt.Sprintf("%s is an excellent match!", candidateName))
	case score.Total >= 0.6:
		parts = append(parts, fmt.Sprintf("%s is a strong match.", candidateName))
	case score.Total >= 0.4:
		parts = append(parts, fmt.Sprintf("%s could be a good fit.", candidateName))
	default:
		parts = append(parts, fmt.Sprintf("%s has some relevant qualities.", candidateName))
	}

	if score.Semantic >= 0.7 {
		parts = append(parts, "Your visions are highly aligned.")
	} else if score.Semantic >= 0.5 {
		parts = append(parts, "You share similar interests and goals.")
	}

	if len(matchingSkills) > 0 {
		parts = append(parts, "Shared skills: "+strings.Join(firstN(matchingSkills, explainSkillLimit), ", "))
	}
	if len(complementarySkills) > 0 {
		parts = append(parts, "Brings: "+strings.Join(firstN(complementarySkills, explainSkillLimit), ", "))
	}

	return strings.Join(parts, " ")
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
