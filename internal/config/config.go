package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store driver names accepted in StoreDriver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config carries all process configuration. It is built once in main and
// passed into component constructors; nothing reads the environment after
// Load returns.
type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// RootDir is the base directory all relative file and folder paths are
	// resolved against.
	RootDir string

	// IgnoreNames are directory entries skipped by tree listings.
	IgnoreNames []string

	// StoreDriver selects the note storage backend: "mongo" or "postgres".
	StoreDriver string

	MongoURL      string
	MongoDatabase string

	DatabaseURL string
	TablePrefix string
}

// fileConfig is the optional YAML overlay; nil fields keep the env value.
type fileConfig struct {
	Port        *string  `yaml:"port"`
	Environment *string  `yaml:"environment"`
	CORSOrigins *string  `yaml:"cors_origins"`
	RootDir     *string  `yaml:"root_dir"`
	IgnoreNames []string `yaml:"ignore_names"`
	StoreDriver *string  `yaml:"store_driver"`
	MongoURL    *string  `yaml:"mongo_url"`
	MongoDB     *string  `yaml:"mongo_database"`
	DatabaseURL *string  `yaml:"database_url"`
	TablePrefix *string  `yaml:"table_prefix"`
}

// Load reads configuration from the environment, then applies overrides from
// the YAML file named by CONFIG_FILE (or ./config.yaml when present).
func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RootDir:       getEnv("ROOT_DIR", "./markdown-editor"),
		IgnoreNames:   splitList(getEnv("IGNORE_NAMES", ".DS_Store")),
		StoreDriver:   getEnv("STORE_DRIVER", DriverMongo),
		MongoURL:      getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "my_note"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		TablePrefix:   getTablePrefix(env),
	}

	if err := cfg.applyFile(); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case DriverMongo, DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func (c *Config) applyFile() error {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&c.Port, fc.Port)
	setIf(&c.Environment, fc.Environment)
	setIf(&c.CORSOrigins, fc.CORSOrigins)
	setIf(&c.RootDir, fc.RootDir)
	setIf(&c.StoreDriver, fc.StoreDriver)
	setIf(&c.MongoURL, fc.MongoURL)
	setIf(&c.MongoDatabase, fc.MongoDB)
	setIf(&c.DatabaseURL, fc.DatabaseURL)
	setIf(&c.TablePrefix, fc.TablePrefix)
	if len(fc.IgnoreNames) > 0 {
		c.IgnoreNames = fc.IgnoreNames
	}

	return nil
}

// getTablePrefix returns the postgres table prefix for the environment.
// TABLE_PREFIX overrides the derived value.
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
