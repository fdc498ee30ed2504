package matchmaker

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/matchmaker/core/matching"
	"github.com/siherrmann/matchmaker/core/pipeline"
	"github.com/siherrmann/matchmaker/database"
	"github.com/siherrmann/matchmaker/helper"
	"github.com/siherrmann/matchmaker/model"
	loadSql "github.com/siherrmann/matchmaker/sql"
)

// Matchmaker provides a unified interface to profile storage and matching
type Matchmaker struct {
	DB       *helper.Database
	Profiles *database.ProfilesDBHandler
	Cache    *pipeline.VectorCache // Optional embedding cache, set via SetEmbedder
	Engine   *matching.Engine      // Ranking engine for hybrid matching
	// Logging
	log *slog.Logger
}

// NewMatchmaker creates a new Matchmaker instance with the profile handler
// initialized. Call UseDefaultEmbedder or SetEmbedder before matching.
func NewMatchmaker(config *helper.DatabaseConfiguration, embeddingDim int) (*Matchmaker, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("matchmaker", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	profiles, err := database.NewProfilesDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create profiles handler", err)
	}

	return &Matchmaker{
		DB:       db,
		Profiles: profiles,
		log:      logger,
	}, nil
}

// Close closes the database connection
func (m *Matchmaker) Close() error {
	if m.DB != nil && m.DB.Instance != nil {
		return m.DB.Instance.Close()
	}
	return nil
}

// SetEmbedder wires an embedding function into the matchmaker. Computed
// profile vectors are cached in memory and persisted next to the profile,
// so restarts warm-start from the database instead of re-embedding.
func (m *Matchmaker) SetEmbedder(embed pipeline.EmbedFunc, cacheSize int) error {
	if embed == nil {
		return helper.NewError("set embedder", fmt.Errorf("embed function is nil: %w", model.ErrConfiguration))
	}
	if cacheSize <= 0 {
		cacheSize = pipeline.DefaultCacheSize
	}

	cache := pipeline.NewVectorCache(embed, cacheSize)
	cache.SetStore(m.Profiles)
	cache.SetLogger(m.log)

	engine, err := matching.NewEngine(m.Profiles, cache, m.log)
	if err != nil {
		return helper.NewError("create matching engine", err)
	}

	m.Cache = cache
	m.Engine = engine
	return nil
}

// UseDefaultEmbedder sets up the default embedder with the all-MiniLM-L6-v2
// model (384 dimensions).
func (m *Matchmaker) UseDefaultEmbedder() error {
	embedder, err := pipeline.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}
	return m.SetEmbedder(embedder, pipeline.DefaultCacheSize)
}

// UpsertProfile validates and stores a profile. Profiles are keyed by email,
// an existing profile with the same email is updated in place and keeps its
// id. Any cached embedding for the profile is invalidated because the
// profile text may have changed.
func (m *Matchmaker) UpsertProfile(profile *model.Profile) error {
	if profile == nil {
		return helper.NewError("upsert profile", fmt.Errorf("profile is nil: %w", model.ErrInvalidInput))
	}
	if err := profile.Validate(); err != nil {
		return helper.NewError("validate profile", err)
	}

	if err := m.Profiles.UpsertProfile(profile); err != nil {
		return helper.NewError("upsert profile", err)
	}

	m.log.Info("Upserted profile", slog.Int64("profile_id", profile.ID), slog.String("email", profile.Email))

	m.InvalidateCache(profile.ID)
	return nil
}

// GetProfile returns the profile with the given id.
func (m *Matchmaker) GetProfile(id int64) (*model.Profile, error) {
	return m.Profiles.SelectProfile(id)
}

// GetProfileByEmail returns the profile with the given email.
func (m *Matchmaker) GetProfileByEmail(email string) (*model.Profile, error) {
	return m.Profiles.SelectProfileByEmail(email)
}

// ListProfiles returns all stored profiles ordered by id, minus the given ids.
func (m *Matchmaker) ListProfiles(excludeIDs []int64) ([]*model.Profile, error) {
	return m.Profiles.SelectAllProfiles(excludeIDs)
}

// DeleteProfile removes a profile and its cached embedding.
func (m *Matchmaker) DeleteProfile(id int64) error {
	m.InvalidateCache(id)
	if err := m.Profiles.DeleteProfile(id); err != nil {
		return helper.NewError("delete profile", err)
	}
	m.log.Info("Deleted profile", slog.Int64("profile_id", id))
	return nil
}

// InvalidateCache drops the cached and persisted embedding for a profile so
// the next match recomputes it from the current profile text.
func (m *Matchmaker) InvalidateCache(id int64) {
	if m.Cache != nil {
		m.Cache.Invalidate(id)
		return
	}
	// Without a cache the persisted vector is still stale, clear it directly
	if err := m.Profiles.ClearEmbedding(id); err != nil {
		m.log.Warn("Failed to clear persisted embedding", slog.Int64("profile_id", id), slog.Any("error", err))
	}
}

// FindMatchesForProfile ranks all stored profiles against the profile with
// the given id. A nil config uses the default weighting (0.7 semantic,
// 0.3 skills), minimum score 0.1 and limit 20.
func (m *Matchmaker) FindMatchesForProfile(ctx context.Context, profileID int64, config *model.MatchConfig) ([]model.MatchResult, error) {
	if m.Engine == nil {
		return nil, helper.NewError("find matches", fmt.Errorf("embedder not set, use SetEmbedder() first: %w", model.ErrConfiguration))
	}
	if config == nil {
		defaultConfig := model.DefaultMatchConfig()
		config = &defaultConfig
	}
	return m.Engine.FindForProfile(ctx, profileID, *config)
}

// FindMatchesForQuery ranks all stored profiles against an ad-hoc
// requirement that is not stored as a profile.
func (m *Matchmaker) FindMatchesForQuery(ctx context.Context, requirement *model.Requirement, config *model.MatchConfig) ([]model.MatchResult, error) {
	if m.Engine == nil {
		return nil, helper.NewError("find matches", fmt.Errorf("embedder not set, use SetEmbedder() first: %w", model.ErrConfiguration))
	}
	if config == nil {
		defaultConfig := model.DefaultMatchConfig()
		config = &defaultConfig
	}
	return m.Engine.FindForRequirement(ctx, requirement, *config)
}
