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

// DatabaseConfiguration holds the PostgreSQL connection parameters.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration reads the configuration from the environment,
// loading a .env file first when one is present. All connection parameters
// except schema and sslmode are required.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	// Missing .env is fine, plain env vars still apply.
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Database: os.Getenv("DB_DATABASE"),
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Schema:   os.Getenv("DB_SCHEMA"),
		SSLMode:  os.Getenv("DB_SSL_MODE"),
	}

	for name, value := range map[string]string{
		"DB_HOST":     config.Host,
		"DB_PORT":     config.Port,
		"DB_DATABASE": config.Database,
		"DB_USERNAME": config.Username,
		"DB_PASSWORD": config.Password,
	} {
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable %v", name)
		}
	}

	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// ConnectionString builds the lib/pq DSN.
func (c *DatabaseConfiguration) ConnectionString() string {
	return fmt.Sprintf(
		"host=%v port=%v user=%v password=%v dbname=%v sslmode=%v search_path=%v",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode, c.Schema,
	)
}

// Database bundles an open connection with its configuration and logger.
type Database struct {
	Name     string
	Instance *sql.DB
	Config   *DatabaseConfiguration
	Logger   *slog.Logger
}

// NewDatabase opens and pings a PostgreSQL connection. Panics when the
// database is unreachable, a database is not optional for the callers.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	db, err := sql.Open("postgres", config.ConnectionString())
	if err != nil {
		log.Panicf("error opening database connection: %v", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		log.Panicf("error pinging database: %v", err)
	}

	logger.Info("Connected to database", "name", name, "host", config.Host, "port", config.Port)

	return &Database{
		Name:     name,
		Instance: db,
		Config:   config,
		Logger:   logger,
	}
}

// NewTestDatabase opens a connection for tests with a quiet logger.
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	opts := PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelWarn,
		},
	}
	logger := slog.New(NewPrettyHandler(os.Stdout, opts))
	return NewDatabase("test", config, logger)
}

// SetTestDatabaseConfigEnvs sets the connection environment variables for a
// test container listening on the given port.
func SetTestDatabaseConfigEnvs(t *testing.T, port string) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", port)
	t.Setenv("DB_DATABASE", "database")
	t.Setenv("DB_USERNAME", "user")
	t.Setenv("DB_PASSWORD", "password")
	t.Setenv("DB_SCHEMA", "public")
	t.Setenv("DB_SSL_MODE", "disable")
}
