package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Profile represents a participant eligible for matching.
// Bio, interests, past projects and skills feed the embedding context,
// the skill list additionally feeds the Jaccard skill overlap.
type Profile struct {
	ID              int64      `json:"id"`
	RID             uuid.UUID  `json:"rid"`
	Name            string     `json:"name" validate:"required"`
	Email           string     `json:"email" validate:"required,email"`
	Bio             string     `json:"bio,omitempty"`
	Interests       []string   `json:"interests,omitempty"`
	Skills          []string   `json:"skills,omitempty"`
	PastProjects    string     `json:"past_projects,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Personality     *string    `json:"personality,omitempty"`
	CommitmentLevel *float64   `json:"commitment_level,omitempty" validate:"omitempty,gte=0,lte=1"`
	Metadata        Metadata   `json:"metadata,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Validate checks the profile fields required for storage and matching.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
