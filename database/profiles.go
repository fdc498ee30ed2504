package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/siherrmann/matchmaker/helper"
	"github.com/siherrmann/matchmaker/model"
	loadSql "github.com/siherrmann/matchmaker/sql"
)

// ProfilesDBHandlerFunctions defines the interface for Profiles database operations.
type ProfilesDBHandlerFunctions interface {
	UpsertProfile(profile *model.Profile) error
	DeleteProfile(id int64) error
	SelectProfile(id int64) (*model.Profile, error)
	SelectProfileByEmail(email string) (*model.Profile, error)
	SelectAllProfiles(excludeIDs []int64) ([]*model.Profile, error)
	SaveEmbedding(id int64, context string, embedding []float32) error
	LoadEmbedding(id int64) (string, []float32, error)
	ClearEmbedding(id int64) error
}

// ProfilesDBHandler handles profile-related database operations
type ProfilesDBHandler struct {
	db *helper.Database
}

// NewProfilesDBHandler creates a new profiles database handler.
// It initializes the database connection and loads profile-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewProfilesDBHandler(db *helper.Database, embeddingDim int, force bool) (*ProfilesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	profilesDbHandler := &ProfilesDBHandler{
		db: db,
	}

	err := loadSql.LoadProfilesSql(profilesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load profiles sql", err)
	}

	err = profilesDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ProfilesDBHandler")

	return profilesDbHandler, nil
}

// CreateTable creates the 'profiles' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes and triggers.
func (h *ProfilesDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Use the SQL init() function to create all tables, triggers, and indexes
	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_profiles($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing profiles table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table profiles")

	return nil
}

// UpsertProfile inserts a new profile or updates the existing one with the
// same email. The profile struct is updated in place with the stored row.
func (h *ProfilesDBHandler) UpsertProfile(profile *model.Profile) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM upsert_profile($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		profile.Name,
		profile.Email,
		profile.Bio,
		pq.Array(profile.Interests),
		pq.Array(profile.Skills),
		profile.PastProjects,
		profile.Location,
		profile.Personality,
		profile.CommitmentLevel,
		profile.Metadata,
	)

	err := scanProfile(row, profile)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// DeleteProfile deletes a profile by ID.
// Returns an error wrapping model.ErrNotFound when the id does not resolve.
func (h *ProfilesDBHandler) DeleteProfile(id int64) error {
	var deleted bool
	err := h.db.Instance.QueryRow(
		`SELECT delete_profile($1)`,
		id,
	).Scan(&deleted)
	if err != nil {
		return helper.NewError("exec", err)
	}
	if !deleted {
		return helper.NewError("delete profile", fmt.Errorf("profile %d: %w", id, model.ErrNotFound))
	}
	return nil
}

// SelectProfile retrieves a profile by ID.
// Returns an error wrapping model.ErrNotFound when the id does not resolve.
func (h *ProfilesDBHandler) SelectProfile(id int64) (*model.Profile, error) {
	profile := &model.Profile{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_profile($1)`,
		id,
	)

	err := scanProfile(row, profile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NewError("select profile", fmt.Errorf("profile %d: %w", id, model.ErrNotFound))
	}
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return profile, nil
}

// SelectProfileByEmail retrieves a profile by email.
func (h *ProfilesDBHandler) SelectProfileByEmail(email string) (*model.Profile, error) {
	profile := &model.Profile{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_profile_by_email($1)`,
		email,
	)

	err := scanProfile(row, profile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NewError("select profile by email", fmt.Errorf("profile %s: %w", email, model.ErrNotFound))
	}
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return profile, nil
}

// SelectAllProfiles retrieves the candidate pool ordered by ascending id,
// excluding the given profile ids.
func (h *ProfilesDBHandler) SelectAllProfiles(excludeIDs []int64) ([]*model.Profile, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_profiles($1)`,
		pq.Array(excludeIDs),
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		profile := &model.Profile{}
		err := scanProfile(rows, profile)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		profiles = append(profiles, profile)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return profiles, nil
}

// SaveEmbedding persists the embedding and the exact context string it was
// derived from, making it available as a warm start across processes.
func (h *ProfilesDBHandler) SaveEmbedding(id int64, context string, embedding []float32) error {
	_, err := h.db.Instance.Exec(
		`SELECT update_profile_embedding($1, $2, $3)`,
		id,
		pgvector.NewVector(embedding),
		context,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// LoadEmbedding retrieves the persisted embedding and its source context.
// Returns an error wrapping model.ErrNotFound when no embedding is stored.
func (h *ProfilesDBHandler) LoadEmbedding(id int64) (string, []float32, error) {
	var embedding pgvector.Vector
	var context string

	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_profile_embedding($1)`,
		id,
	)

	err := row.Scan(&embedding, &context)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, helper.NewError("load embedding", fmt.Errorf("embedding for profile %d: %w", id, model.ErrNotFound))
	}
	if err != nil {
		return "", nil, helper.NewError("scan", err)
	}

	return context, embedding.Slice(), nil
}

// ClearEmbedding removes the persisted embedding for a profile.
func (h *ProfilesDBHandler) ClearEmbedding(id int64) error {
	_, err := h.db.Instance.Exec(
		`SELECT clear_profile_embedding($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row scanner, profile *model.Profile) error {
	return row.Scan(
		&profile.ID,
		&profile.RID,
		&profile.Name,
		&profile.Email,
		&profile.Bio,
		pq.Array(&profile.Interests),
		pq.Array(&profile.Skills),
		&profile.PastProjects,
		&profile.Location,
		&profile.Personality,
		&profile.CommitmentLevel,
		&profile.Metadata,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}
