package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultDataDir holds the database, logs and default exports
	DefaultDataDir = "~/.local/share/folio"

	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// Config is the resolved configuration shared by every binary
type Config struct {
	DataDir      string        `mapstructure:"data"`
	Store        string        `mapstructure:"store"`
	File         string        `mapstructure:"file"`
	OutputDir    string        `mapstructure:"outputDir"`
	AutosaveWait time.Duration `mapstructure:"autosaveDelay"`
	LogLevel     string        `mapstructure:"logLevel"`
	SiteTitle    string        `mapstructure:"siteTitle"`
	Revisions    int           `mapstructure:"revisions"`
}

// DataPath returns the data directory from FOLIO_DATA env var,
// falling back to DefaultDataDir.
func DataPath() string {
	if env := os.Getenv("FOLIO_DATA"); env != "" {
		return env
	}
	return DefaultDataDir
}

// Load resolves defaults, the optional config file and FOLIO_* environment
// variables, in increasing precedence. An explicit cfgFile must exist; the
// implicit ./folio.yaml may be absent.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("data", DataPath())
	v.SetDefault("store", StoreSQLite)
	v.SetDefault("file", "")
	v.SetDefault("outputDir", "public")
	v.SetDefault("autosaveDelay", time.Second)
	v.SetDefault("logLevel", "info")
	v.SetDefault("siteTitle", "Portfolio")
	v.SetDefault("revisions", 50)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// camelCase keys do not map onto SNAKE_CASE variables by themselves
	for key, env := range map[string]string{
		"outputDir":     "FOLIO_OUTPUT_DIR",
		"autosaveDelay": "FOLIO_AUTOSAVE_DELAY",
		"logLevel":      "FOLIO_LOG_LEVEL",
		"siteTitle":     "FOLIO_SITE_TITLE",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.DataDir = ExpandHome(cfg.DataDir)
	cfg.File = ExpandHome(cfg.File)

	return cfg, cfg.Validate()
}

// Validate checks values viper cannot type-check
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
	case StoreFile:
		if c.File == "" {
			return errors.New("store \"file\" needs a document path (FOLIO_FILE or file:)")
		}
	default:
		return fmt.Errorf("unknown store %q (expected sqlite or file)", c.Store)
	}
	if c.AutosaveWait < 0 {
		return errors.New("autosaveDelay must not be negative")
	}
	return nil
}

// LogFile returns the path the dashboard logs to
func (c Config) LogFile() string {
	return filepath.Join(c.DataDir, "folio.log")
}

// ExpandHome replaces a leading ~ with the home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
