package matching

import (
	"context"
	"log/slog"
	"runtime"
	"sort"

	"github.com/siherrmann/matchmaker/core/pipeline"
	"github.com/siherrmann/matchmaker/helper"
	"github.com/siherrmann/matchmaker/model"
	"golang.org/x/sync/errgroup"
)

// ProfileSource loads profiles for ranking. Implemented by
// database.ProfilesDBHandler.
type ProfileSource interface {
	SelectProfile(id int64) (*model.Profile, error)
	SelectAllProfiles(excludeIDs []int64) ([]*model.Profile, error)
}

// Engine ranks candidate profiles against a searcher profile or an ad-hoc
// requirement using weighted semantic and skill similarity.
type Engine struct {
	profiles ProfileSource
	cache    *pipeline.VectorCache
	log      *slog.Logger
}

// NewEngine creates a ranking engine over the given profile source and
// embedding cache. Weights are per request and come in with the MatchConfig.
func NewEngine(profiles ProfileSource, cache *pipeline.VectorCache, logger *slog.Logger) (*Engine, error) {
	if profiles == nil {
		return nil, helper.NewError("creating engine", model.ErrConfiguration)
	}
	if cache == nil {
		return nil, helper.NewError("creating engine", model.ErrConfiguration)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{profiles: profiles, cache: cache, log: logger}, nil
}

// FindForProfile ranks all stored profiles against the profile with the
// given id. The searcher itself and any ids in config.ExcludeIDs are
// excluded from the candidate set.
func (e *Engine) FindForProfile(ctx context.Context, profileID int64, config model.MatchConfig) ([]model.MatchResult, error) {
	if err := config.Validate(); err != nil {
		return nil, helper.NewError("validating match config", err)
	}

	searcher, err := e.profiles.SelectProfile(profileID)
	if err != nil {
		return nil, helper.NewError("selecting searcher profile", err)
	}

	searcherVector, err := e.cache.GetOrCompute(searcher.ID, pipeline.BuildProfileContext(searcher))
	if err != nil {
		return nil, helper.NewError("embedding searcher profile", err)
	}

	excludeIDs := append([]int64{searcher.ID}, config.ExcludeIDs...)
	candidates, err := e.profiles.SelectAllProfiles(excludeIDs)
	if err != nil {
		return nil, helper.NewError("selecting candidate profiles", err)
	}

	return e.rank(ctx, searcherVector, SkillSet(searcher.Skills), candidates, config)
}

// FindForRequirement ranks all stored profiles against an ad-hoc requirement.
// The requirement text is embedded directly and never cached, it has no
// profile identity to key on.
func (e *Engine) FindForRequirement(ctx context.Context, requirement *model.Requirement, config model.MatchConfig) ([]model.MatchResult, error) {
	if requirement == nil {
		return nil, helper.NewError("validating requirement", model.ErrInvalidInput)
	}
	if err := requirement.Validate(); err != nil {
		return nil, helper.NewError("validating requirement", err)
	}
	if err := config.Validate(); err != nil {
		return nil, helper.NewError("validating match config", err)
	}

	requirementVector, err := e.cache.Embed(pipeline.BuildRequirementContext(requirement))
	if err != nil {
		return nil, helper.NewError("embedding requirement", err)
	}

	candidates, err := e.profiles.SelectAllProfiles(config.ExcludeIDs)
	if err != nil {
		return nil, helper.NewError("selecting candidate profiles", err)
	}

	return e.rank(ctx, requirementVector, SkillSet(requirement.RequiredSkills), candidates, config)
}

// rank scores all candidates in parallel, filters by the minimum score and
// returns results ordered by total score descending with profile id as the
// deterministic tie break.
func (e *Engine) rank(ctx context.Context, searcherVector []float32, searcherSkills map[string]struct{}, candidates []*model.Profile, config model.MatchConfig) ([]model.MatchResult, error) {
	weights := Weights{Semantic: config.SemanticWeight, Skill: config.SkillWeight}
	scored := make([]*model.MatchResult, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, candidate := range candidates {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			candidateVector, err := e.cache.GetOrCompute(candidate.ID, pipeline.BuildProfileContext(candidate))
			if err != nil {
				// One broken candidate must not sink the whole ranking.
				e.log.Warn("Skipping candidate, embedding failed", "profileId", candidate.ID, "error", err)
				return nil
			}

			candidateSkills := SkillSet(candidate.Skills)
			score := weights.Score(searcherVector, candidateVector, searcherSkills, candidateSkills)
			if score.Total < config.MinScore {
				return nil
			}

			matching, complementary := splitSkills(searcherSkills, candidateSkills)
			scored[i] = &model.MatchResult{
				ProfileID:           candidate.ID,
				ProfileName:         candidate.Name,
				TotalScore:          score.Total,
				SemanticScore:       score.Semantic,
				SkillScore:          score.Skill,
				MatchingSkills:      matching,
				ComplementarySkills: complementary,
				Explanation:         Explain(candidate.Name, score, matching, complementary),
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, helper.NewError("scoring candidates", err)
	}

	results := make([]model.MatchResult, 0, len(scored))
	for _, result := range scored {
		if result != nil {
			results = append(results, *result)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return results[i].ProfileID < results[j].ProfileID
	})

	if config.Limit > 0 && len(results) > config.Limit {
		results = results[:config.Limit]
	}

	return results, nil
}

// splitSkills partitions the candidate's skills into the ones shared with
// the searcher and the ones only the candidate has. Both slices come back
// normalized and sorted.
func splitSkills(searcherSkills, candidateSkills map[string]struct{}) (matching []string, complementary []string) {
	matching = make([]string, 0, len(candidateSkills))
	complementary = make([]string, 0, len(candidateSkills))
	for skill := range candidateSkills {
		if _, ok := searcherSkills[skill]; ok {
			matching = append(matching, skill)
		} else {
			complementary = append(complementary, skill)
		}
	}
	sort.Strings(matching)
	sort.Strings(complementary)
	return matching, complementary
}
