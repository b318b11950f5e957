package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Environments
const (
	EnvDev  = "dev"
	EnvTest = "test"
	EnvProd = "prod"
)

// Table prefixes are spliced into SQL
var tablePrefixPattern = regexp.MustCompile(`^[a-z0-9_]*$`)

// Config is the process configuration read from the environment
type Config struct {
	Port         string
	Environment  string
	DatabaseURL  string // empty = in-process store (nothing persisted across restarts)
	CORSOrigins  []string
	TablePrefix  string
	SettingsFile string // optional YAML overriding the embedded study settings
	LogDir       string // optional; logs are also written to rotated files
	MaxLogFiles  int
	Debug        bool
}

// Load reads the configuration from environment variables
func Load() *Config {
	env := getEnv("ENVIRONMENT", EnvDev)

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  env,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		TablePrefix:  getEnv("TABLE_PREFIX", env+"_"),
		SettingsFile: os.Getenv("SETTINGS_FILE"),
		LogDir:       os.Getenv("LOG_DIR"),
		MaxLogFiles:  getEnvInt("MAX_LOG_FILES", 10),
		Debug:        getEnvBool("DEBUG", env != EnvProd),
	}
}

// IsProd reports whether destructive maintenance must be refused
func (c *Config) IsProd() bool {
	return c.Environment == EnvProd
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Environment, validation.Required, validation.In(EnvDev, EnvTest, EnvProd)),
		validation.Field(&c.CORSOrigins, validation.Each(is.URL)),
		validation.Field(&c.TablePrefix, validation.Match(tablePrefixPattern)),
		validation.Field(&c.MaxLogFiles, validation.Min(0)),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to the default on a malformed value; Validate reports ranges
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
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
