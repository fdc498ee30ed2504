package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/matchmaker"
	"github.com/siherrmann/matchmaker/helper"
	"github.com/siherrmann/matchmaker/model"
)

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	m, err := matchmaker.NewMatchmaker(dbConfig, 384)
	if err != nil {
		log.Fatalf("Failed to create matchmaker: %v", err)
	}
	defer m.Close()

	if err := m.UseDefaultEmbedder(); err != nil {
		log.Fatalf("Failed to set up embedder: %v", err)
	}

	// Build a small talent pool with optional attributes filled in
	commitment := 0.8
	location := "Berlin"
	personality := "Pragmatic, enjoys pair programming."

	profiles := []*model.Profile{
		{
			Name:            "Dana",
			Email:           "dana@example.com",
			Bio:             "Platform engineer focused on reliability and observability.",
			Interests:       []string{"SRE", "infrastructure as code"},
			Skills:          []string{"Go", "Kubernetes", "Terraform"},
			Location:        &location,
			CommitmentLevel: &commitment,
		},
		{
			Name:         "Erik",
			Email:        "erik@example.com",
			Bio:          "Data engineer building realtime pipelines.",
			Interests:    []string{"stream processing", "analytics"},
			Skills:       []string{"Python", "Kafka", "PostgreSQL"},
			Personality:  &personality,
			PastProjects: "Built a clickstream pipeline handling 50k events per second.",
		},
		{
			Name:      "Fatima",
			Email:     "fatima@example.com",
			Bio:       "Backend engineer who enjoys realtime systems and messaging.",
			Interests: []string{"distributed systems", "realtime communication"},
			Skills:    []string{"Go", "PostgreSQL", "Redis"},
			Metadata: model.Metadata{
				"timezone": "UTC+1",
			},
		},
	}

	for _, profile := range profiles {
		if err := m.UpsertProfile(profile); err != nil {
			log.Fatalf("Failed to upsert profile %s: %v", profile.Name, err)
		}
	}
	fmt.Printf("Inserted %d profiles\n", len(profiles))

	// 1. Requirement search: describe who you need instead of matching
	// from an existing profile
	fmt.Println("\n=== Requirement search ===")

	requirement := &model.Requirement{
		Description:        "Looking for a collaborator to build a realtime chat backend.",
		RequiredSkills:     []string{"Go", "PostgreSQL"},
		PreferredInterests: []string{"realtime communication", "distributed systems"},
	}

	results, err := m.FindMatchesForQuery(context.Background(), requirement, nil)
	if err != nil {
		log.Fatalf("Failed to find matches for requirement: %v", err)
	}
	printResults(results)

	// 2. Custom weighting: rank purely on skill overlap
	fmt.Println("\n=== Skill-only weighting ===")

	config := model.DefaultMatchConfig()
	config.SemanticWeight = 0.0
	config.SkillWeight = 1.0
	config.MinScore = 0.0

	results, err = m.FindMatchesForQuery(context.Background(), requirement, &config)
	if err != nil {
		log.Fatalf("Failed to find matches with custom config: %v", err)
	}
	printResults(results)

	// 3. Profile update: the embedding cache is invalidated automatically,
	// the next search re-embeds the changed profile
	fmt.Println("\n=== Match after a profile update ===")

	profiles[1].Bio = "Data engineer moving into realtime chat infrastructure."
	profiles[1].Interests = append(profiles[1].Interests, "realtime communication")
	if err := m.UpsertProfile(profiles[1]); err != nil {
		log.Fatalf("Failed to update profile: %v", err)
	}

	results, err = m.FindMatchesForQuery(context.Background(), requirement, nil)
	if err != nil {
		log.Fatalf("Failed to find matches after update: %v", err)
	}
	printResults(results)

	fmt.Println("\nAdvanced example completed successfully!")
}

func printResults(results []model.MatchResult) {
	fmt.Printf("Found %d matches:\n", len(results))
	for i, result := range results {
		fmt.Printf("%d. %s - total %.4f (semantic %.4f, skills %.4f)\n",
			i+1, result.ProfileName, result.TotalScore, result.SemanticScore, result.SkillScore)
		fmt.Printf("   %s\n", result.Explanation)
	}
}
