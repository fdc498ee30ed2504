package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed profiles.sql
var profilesSQL string

// Function list for verification
var ProfilesFunctions = []string{
	"init_profiles",
	"profiles_set_updated_at",
	"upsert_profile",
	"select_profile",
	"select_profile_by_email",
	"select_all_profiles",
	"update_profile_embedding",
	"select_profile_embedding",
	"clear_profile_embedding",
	"delete_profile",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadProfilesSql loads profile-related SQL functions
func LoadProfilesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, ProfilesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing profiles functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(profilesSQL)
	if err != nil {
		return fmt.Errorf("error executing profiles SQL: %w", err)
	}

	exist, err := checkFunctions(db, ProfilesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL profiles functions loaded successfully")
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
