package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	Store          string

	// Execution settings
	Workers int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Observability
	MetricsAddr string
	LogLevel    string
	LogFormat   string

	// Results database, used when Store is StoreMySQL
	Database DatabaseConfig

	// Command flags
	Flags Flags
}

// DatabaseConfig holds MySQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Flags holds command-line flags
type Flags struct {
	Workers     int
	TestPath    string
	NameFilter  string
	CaseFilter  string
	TestCases   bool
	FailFast    bool
	OnlyFailed  bool
	Lazy        bool
	Store       string
	MetricsAddr string
	OpenFaills  bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		TestPath:       DefaultTestPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Store:          DefaultStore,
		Workers:        DefaultWorkers,
		LogLevel:       DefaultLogLevel,
		Database: DatabaseConfig{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
			Name: DefaultDBName,
		},
		Flags: Flags{Workers: DefaultWorkers},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// LoadEnv loads the project's .env file, if any, and applies CASEX_* and DB_*
// environment variables over the current values. Variables already set in
// the process environment win over the .env file.
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", envPath, err)
	}

	if v := os.Getenv("CASEX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid CASEX_WORKERS %q", v)
		}
		c.Workers = n
	}
	setFromEnv(&c.TestPath, "CASEX_TEST_PATH")
	setFromEnv(&c.Store, "CASEX_STORE")
	setFromEnv(&c.MetricsAddr, "CASEX_METRICS_ADDR")
	setFromEnv(&c.LogLevel, "CASEX_LOG_LEVEL")
	setFromEnv(&c.LogFormat, "CASEX_LOG_FORMAT")
	setFromEnv(&c.Database.Host, "DB_HOST")
	setFromEnv(&c.Database.Port, "DB_PORT")
	setFromEnv(&c.Database.User, "DB_USERNAME")
	setFromEnv(&c.Database.Password, "DB_PASSWORD")
	setFromEnv(&c.Database.Name, "DB_DATABASE")
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Apply(flags)
	return cfg
}

// Apply overlays command flags on the config
func (c *Config) Apply(flags Flags) {
	c.Flags = flags

	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Store != "" {
		c.Store = flags.Store
	}
	if flags.MetricsAddr != "" {
		c.MetricsAddr = flags.MetricsAddr
	}
}

// Validate checks values that flags and the environment can get wrong
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Store {
	case StoreJSON, StoreMySQL:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreJSON, StoreMySQL)
	}
	return nil
}

// GetTestPath returns the fixture search path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to ProjectPath if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	// Default: combine project path and test path
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetOutputPath returns the full path to the output JSON file (under project so run and faills use the same file).
// Resolves to an absolute path so run and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// DSN returns the MySQL data source name. With withDatabase false the DSN
// addresses the server only, for creating the database itself.
func (c *Config) DSN(withDatabase bool) string {
	mc := mysql.NewConfig()
	mc.User = c.Database.User
	mc.Passwd = c.Database.Password
	mc.Net = "tcp"
	mc.Addr = c.Database.Host + ":" + c.Database.Port
	mc.ParseTime = true
	if withDatabase {
		mc.DBName = c.Database.Name
	}
	return mc.FormatDSN()
}
