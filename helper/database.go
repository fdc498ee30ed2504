package helper

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// DatabaseConfiguration holds the connection parameters for Postgres.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration reads the database configuration from environment
// variables (DB_HOST, DB_PORT, DB_DATABASE, DB_USERNAME, DB_PASSWORD,
// DB_SCHEMA, DB_SSLMODE). A .env file in the working directory is loaded
// first if present.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	// .env is optional, real deployments usually set plain env vars
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Database: os.Getenv("DB_DATABASE"),
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Schema:   os.Getenv("DB_SCHEMA"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	for envVar, value := range map[string]string{
		"DB_HOST":     config.Host,
		"DB_PORT":     config.Port,
		"DB_DATABASE": config.Database,
		"DB_USERNAME": config.Username,
		"DB_PASSWORD": config.Password,
	} {
		if value == "" {
			return nil, NewError("read database configuration", fmt.Errorf("missing environment variable %s", envVar))
		}
	}

	return config, nil
}

// ConnectionString returns the lib/pq connection string for the configuration.
func (c *DatabaseConfiguration) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&search_path=%s",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.SSLMode, c.Schema,
	)
}

// Database bundles an open connection with its name and logger.
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabase opens a connection to the configured Postgres database.
// Connection failures are fatal, a service cannot run without its store.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	if logger == nil {
		logger = slog.New(NewPrettyHandler(os.Stdout, PrettyHandlerOptions{}))
	}

	instance, err := sql.Open("postgres", config.ConnectionString())
	if err != nil {
		log.Fatalf("error opening database connection: %v", err)
	}

	instance.SetMaxOpenConns(25)
	instance.SetMaxIdleConns(5)
	instance.SetConnMaxLifetime(30 * time.Minute)

	if err := instance.Ping(); err != nil {
		log.Fatalf("error pinging database %s: %v", name, err)
	}

	logger.Info("Connected to database", slog.String("database", name), slog.String("host", config.Host))

	return &Database{
		Name:     name,
		Instance: instance,
		Logger:   logger,
	}
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	if d.Instance != nil {
		return d.Instance.Close()
	}
	return nil
}

// NewTestDatabase opens a connection for tests with a quiet logger.
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	logger := slog.New(NewPrettyHandler(os.Stdout, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelWarn},
	}))
	return NewDatabase("test", config, logger)
}

// SetTestDatabaseConfigEnvs sets the database environment variables to the
// values used by MustStartPostgresContainer.
func SetTestDatabaseConfigEnvs(t *testing.T, port string) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", port)
	t.Setenv("DB_DATABASE", "database")
	t.Setenv("DB_USERNAME", "user")
	t.Setenv("DB_PASSWORD", "password")
	t.Setenv("DB_SCHEMA", "public")
	t.Setenv("DB_SSLMODE", "disable")
}
