package model

import "fmt"

// Requirement describes an ad-hoc search for collaborators, the query-to-pool
// counterpart of matching from an existing profile. Description and preferred
// interests feed the embedding context, required skills feed the skill overlap.
type Requirement struct {
	Description        string   `json:"description" validate:"required"`
	RequiredSkills     []string `json:"required_skills,omitempty"`
	PreferredInterests []string `json:"preferred_interests,omitempty"`
	// LocationPreference is stored for callers but not used as a filter.
	LocationPreference *string `json:"location_preference,omitempty"`
}

// Validate checks that the requirement carries enough signal to match on.
func (r *Requirement) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
