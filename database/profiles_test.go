package database

import (
	"errors"
	"testing"
	"time"

	"github.com/siherrmann/matchmaker/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilesNewProfilesDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewProfilesDBHandler", func(t *testing.T) {
		profilesDbHandler, err := NewProfilesDBHandler(database, 384, true)
		assert.NoError(t, err, "Expected NewProfilesDBHandler to not return an error")
		require.NotNil(t, profilesDbHandler, "Expected NewProfilesDBHandler to return a non-nil instance")
		require.NotNil(t, profilesDbHandler.db, "Expected NewProfilesDBHandler to have a non-nil database instance")
		require.NotNil(t, profilesDbHandler.db.Instance, "Expected NewProfilesDBHandler to have a non-nil database connection instance")
	})

	t.Run("Invalid call NewProfilesDBHandler with nil database", func(t *testing.T) {
		_, err := NewProfilesDBHandler(nil, 384, false)
		assert.Error(t, err, "Expected error when creating ProfilesDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestProfilesUpsert(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, 384, true)
	require.NoError(t, err, "Expected NewProfilesDBHandler to not return an error")

	t.Run("Insert profile", func(t *testing.T) {
		profile := &model.Profile{
			Name:      "Ada Lovelace",
			Email:     "ada@example.com",
			Bio:       "Analytical engine enthusiast",
			Interests: []string{"mathematics", "computing"},
			Skills:    []string{"Go", "Postgres"},
			Metadata:  model.Metadata{"source": "test"},
		}

		err := profilesDbHandler.UpsertProfile(profile)
		assert.NoError(t, err, "Expected UpsertProfile to not return an error")
		assert.NotEmpty(t, profile.ID, "Expected inserted profile to have an ID")
		assert.NotEmpty(t, profile.RID, "Expected inserted profile to have a RID")
		assert.WithinDuration(t, profile.CreatedAt, time.Now(), 2*time.Second, "Expected CreatedAt to be set")

		// Cleanup
		profilesDbHandler.DeleteProfile(profile.ID)
	})

	t.Run("Upsert existing profile by email", func(t *testing.T) {
		profile := &model.Profile{
			Name:   "Grace Hopper",
			Email:  "grace@example.com",
			Skills: []string{"COBOL"},
		}
		err := profilesDbHandler.UpsertProfile(profile)
		require.NoError(t, err)
		firstID := profile.ID

		updated := &model.Profile{
			Name:   "Grace B. Hopper",
			Email:  "grace@example.com",
			Bio:    "Compiler pioneer",
			Skills: []string{"COBOL", "compilers"},
		}
		err = profilesDbHandler.UpsertProfile(updated)
		assert.NoError(t, err, "Expected upsert of existing email to not return an error")
		assert.Equal(t, firstID, updated.ID, "Expected upsert to keep the original profile ID")
		assert.Equal(t, "Grace B. Hopper", updated.Name, "Expected name to be updated")
		assert.ElementsMatch(t, []string{"COBOL", "compilers"}, updated.Skills, "Expected skills to be replaced")

		// Cleanup
		profilesDbHandler.DeleteProfile(firstID)
	})

	t.Run("Upsert keeps optional fields when new value is nil", func(t *testing.T) {
		location := "Berlin"
		commitment := 0.8
		profile := &model.Profile{
			Name:            "Alan Turing",
			Email:           "alan@example.com",
			Location:        &location,
			CommitmentLevel: &commitment,
		}
		err := profilesDbHandler.UpsertProfile(profile)
		require.NoError(t, err)

		updated := &model.Profile{
			Name:  "Alan M. Turing",
			Email: "alan@example.com",
		}
		err = profilesDbHandler.UpsertProfile(updated)
		assert.NoError(t, err)
		require.NotNil(t, updated.Location, "Expected location to survive upsert with nil location")
		assert.Equal(t, "Berlin", *updated.Location)
		require.NotNil(t, updated.CommitmentLevel, "Expected commitment level to survive upsert")
		assert.Equal(t, 0.8, *updated.CommitmentLevel)

		// Cleanup
		profilesDbHandler.DeleteProfile(profile.ID)
	})
}

func TestProfilesSelect(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, 384, true)
	require.NoError(t, err)

	profile := &model.Profile{
		Name:   "Katherine Johnson",
		Email:  "katherine@example.com",
		Skills: []string{"mathematics", "orbital mechanics"},
	}
	err = profilesDbHandler.UpsertProfile(profile)
	require.NoError(t, err)
	t.Cleanup(func() {
		profilesDbHandler.DeleteProfile(profile.ID)
	})

	t.Run("Select profile by ID", func(t *testing.T) {
		found, err := profilesDbHandler.SelectProfile(profile.ID)
		assert.NoError(t, err, "Expected SelectProfile to not return an error")
		require.NotNil(t, found)
		assert.Equal(t, profile.ID, found.ID)
		assert.Equal(t, "Katherine Johnson", found.Name)
		assert.ElementsMatch(t, profile.Skills, found.Skills)
	})

	t.Run("Select profile by email", func(t *testing.T) {
		found, err := profilesDbHandler.SelectProfileByEmail("katherine@example.com")
		assert.NoError(t, err, "Expected SelectProfileByEmail to not return an error")
		require.NotNil(t, found)
		assert.Equal(t, profile.ID, found.ID)
	})

	t.Run("Select nonexistent profile returns not found", func(t *testing.T) {
		_, err := profilesDbHandler.SelectProfile(999999)
		require.Error(t, err, "Expected error for nonexistent profile")
		assert.True(t, errors.Is(err, model.ErrNotFound), "Expected error to wrap model.ErrNotFound")
	})
}

func TestProfilesSelectAll(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, 384, true)
	require.NoError(t, err)

	var ids []int64
	for _, p := range []*model.Profile{
		{Name: "A", Email: "a@pool.example.com", Skills: []string{"go"}},
		{Name: "B", Email: "b@pool.example.com", Skills: []string{"rust"}},
		{Name: "C", Email: "c@pool.example.com", Skills: []string{"python"}},
	} {
		err := profilesDbHandler.UpsertProfile(p)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	t.Cleanup(func() {
		for _, id := range ids {
			profilesDbHandler.DeleteProfile(id)
		}
	})

	t.Run("Select all profiles ordered by id", func(t *testing.T) {
		profiles, err := profilesDbHandler.SelectAllProfiles(nil)
		assert.NoError(t, err, "Expected SelectAllProfiles to not return an error")
		require.GreaterOrEqual(t, len(profiles), 3, "Expected at least the three inserted profiles")

		for i := 1; i < len(profiles); i++ {
			assert.Less(t, profiles[i-1].ID, profiles[i].ID, "Expected profiles ordered by ascending id")
		}
	})

	t.Run("Select all profiles with exclusions", func(t *testing.T) {
		profiles, err := profilesDbHandler.SelectAllProfiles([]int64{ids[0], ids[2]})
		assert.NoError(t, err)

		for _, p := range profiles {
			assert.NotEqual(t, ids[0], p.ID, "Expected excluded profile to be absent")
			assert.NotEqual(t, ids[2], p.ID, "Expected excluded profile to be absent")
		}
	})
}

func TestProfilesEmbeddingStore(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, 384, true)
	require.NoError(t, err)

	profile := &model.Profile{
		Name:  "Edsger Dijkstra",
		Email: "edsger@example.com",
	}
	err = profilesDbHandler.UpsertProfile(profile)
	require.NoError(t, err)
	t.Cleanup(func() {
		profilesDbHandler.DeleteProfile(profile.ID)
	})

	t.Run("Load embedding before save returns not found", func(t *testing.T) {
		_, _, err := profilesDbHandler.LoadEmbedding(profile.ID)
		require.Error(t, err, "Expected error when no embedding is stored")
		assert.True(t, errors.Is(err, model.ErrNotFound), "Expected error to wrap model.ErrNotFound")
	})

	t.Run("Save and load embedding round trip", func(t *testing.T) {
		embedding := make([]float32, 384)
		for i := range embedding {
			embedding[i] = float32(i%7) / 7.0
		}
		err := profilesDbHandler.SaveEmbedding(profile.ID, "some context", embedding)
		assert.NoError(t, err, "Expected SaveEmbedding to not return an error")

		context, loaded, err := profilesDbHandler.LoadEmbedding(profile.ID)
		assert.NoError(t, err, "Expected LoadEmbedding to not return an error")
		assert.Equal(t, "some context", context, "Expected stored context to round trip")
		require.Len(t, loaded, 384)
		for i := range embedding {
			assert.InDelta(t, embedding[i], loaded[i], 0.0001, "Expected embedding values to round trip")
		}
	})

	t.Run("Clear embedding removes it", func(t *testing.T) {
		err := profilesDbHandler.ClearEmbedding(profile.ID)
		assert.NoError(t, err, "Expected ClearEmbedding to not return an error")

		_, _, err = profilesDbHandler.LoadEmbedding(profile.ID)
		require.Error(t, err, "Expected error after clearing embedding")
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func TestProfilesDelete(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, 384, true)
	require.NoError(t, err)

	t.Run("Delete existing profile", func(t *testing.T) {
		profile := &model.Profile{
			Name:  "Barbara Liskov",
			Email: "barbara@example.com",
		}
		err := profilesDbHandler.UpsertProfile(profile)
		require.NoError(t, err)

		err = profilesDbHandler.DeleteProfile(profile.ID)
		assert.NoError(t, err, "Expected DeleteProfile to not return an error")

		_, err = profilesDbHandler.SelectProfile(profile.ID)
		require.Error(t, err, "Expected profile to be gone after delete")
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})

	t.Run("Delete nonexistent profile returns not found", func(t *testing.T) {
		err := profilesDbHandler.DeleteProfile(99999)
		require.Error(t, err, "Expected error when deleting a nonexistent profile")
		assert.True(t, errors.Is(err, model.ErrNotFound), "Expected error to wrap model.ErrNotFound")
	})
}
