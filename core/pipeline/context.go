package pipeline

import (
	"strings"

	"github.com/siherrmann/matchmaker/model"
)

// BuildProfileContext builds the text a profile is embedded from.
// Present fields are rendered in a fixed order (bio, interests, past
// projects, skills) and joined by single spaces so the output is
// reproducible for identical profiles.
func BuildProfileContext(profile *model.Profile) string {
	var parts []string

	if bio := strings.TrimSpace(profile.Bio); bio != "" {
		parts = append(parts, bio)
	}
	if len(profile.Interests) > 0 {
		parts = append(parts, "Interested in "+strings.Join(profile.Interests, ", "))
	}
	if pastProjects := strings.TrimSpace(profile.PastProjects); pastProjects != "" {
		parts = append(parts, "Worked on "+pastProjects)
	}
	if len(profile.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(profile.Skills, ", "))
	}

	return strings.Join(parts, " ")
}

// BuildRequirementContext builds the text an ad-hoc requirement is embedded
// from: the description, followed by the preferred interests when present.
func BuildRequirementContext(requirement *model.Requirement) string {
	context := strings.TrimSpace(requirement.Description)

	if len(requirement.PreferredInterests) > 0 {
		if context != "" {
			context += " "
		}
		context += "Looking for: " + strings.Join(requirement.PreferredInterests, ", ")
	}

	return context
}
