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

	// Create database configuration using the container port
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

	// Set up the default embedder (all-MiniLM-L6-v2, 384 dimensions)
	if err := m.UseDefaultEmbedder(); err != nil {
		log.Fatalf("Failed to set up embedder: %v", err)
	}

	// Insert some profiles - upserts are keyed by email
	profiles := []*model.Profile{
		{
			Name:      "Alice",
			Email:     "alice@example.com",
			Bio:       "Backend engineer who loves building scalable web services.",
			Interests: []string{"distributed systems", "open source"},
			Skills:    []string{"Go", "PostgreSQL", "Docker"},
		},
		{
			Name:      "Bob",
			Email:     "bob@example.com",
			Bio:       "Frontend developer passionate about accessible interfaces.",
			Interests: []string{"design systems", "web performance"},
			Skills:    []string{"TypeScript", "React", "CSS"},
		},
		{
			Name:         "Carol",
			Email:        "carol@example.com",
			Bio:          "Full stack developer interested in building web products end to end.",
			Interests:    []string{"web services", "open source"},
			Skills:       []string{"Go", "TypeScript", "PostgreSQL"},
			PastProjects: "Built a collaborative editor and a metrics dashboard.",
		},
	}

	fmt.Println("Inserting profiles...")
	for _, profile := range profiles {
		if err := m.UpsertProfile(profile); err != nil {
			log.Fatalf("Failed to upsert profile %s: %v", profile.Name, err)
		}
		fmt.Printf("Inserted %s with ID %d\n", profile.Name, profile.ID)
	}

	// Find collaborators for Alice using the default configuration
	// (0.7 semantic weight, 0.3 skill weight, minimum score 0.1)
	fmt.Println("\nFinding matches for Alice...")

	results, err := m.FindMatchesForProfile(context.Background(), profiles[0].ID, nil)
	if err != nil {
		log.Fatalf("Failed to find matches: %v", err)
	}

	// Display results
	fmt.Printf("\nFound %d matches:\n", len(results))
	for i, result := range results {
		fmt.Printf("\n--- Match %d ---\n", i+1)
		fmt.Printf("Name: %s\n", result.ProfileName)
		fmt.Printf("Total score: %.4f (semantic %.4f, skills %.4f)\n",
			result.TotalScore, result.SemanticScore, result.SkillScore)
		fmt.Printf("Shared skills: %v\n", result.MatchingSkills)
		fmt.Printf("Explanation: %s\n", result.Explanation)
	}

	fmt.Println("\nBasic example completed successfully!")
}
