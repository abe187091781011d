// Package config loads and validates application configuration from YAML,
// environment variables, and .env files. A malformed configuration is a
// fatal startup error: there is no safe partial-config mode for a tool that
// moves files.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/reelsort/reelsort/internal/organizer"
)

// Config holds all application configuration.
type Config struct {
	Paths      PathsConfig            `mapstructure:"paths"`
	Naming     organizer.NamingConfig `mapstructure:"naming"`
	Thresholds ThresholdsConfig       `mapstructure:"thresholds"`
	Scoring    ScoringConfig          `mapstructure:"scoring"`
	Sources    SourcesConfig          `mapstructure:"sources"`
	Resolver   ResolverConfig         `mapstructure:"resolver"`
	Behavior   BehaviorConfig         `mapstructure:"behavior"`
	Logging    LoggingConfig          `mapstructure:"logging"`
}

// PathsConfig holds the filesystem roots.
type PathsConfig struct {
	Source  string `mapstructure:"source"`
	Library string `mapstructure:"library"`
	Review  string `mapstructure:"review"`
	Report  string `mapstructure:"report"`
}

// ThresholdsConfig holds the decision cut lines.
type ThresholdsConfig struct {
	AutoAccept    float64 `mapstructure:"auto_accept"`
	Quarantine    float64 `mapstructure:"quarantine"`
	MinConfidence float64 `mapstructure:"min_confidence"`
	YearTolerance int     `mapstructure:"year_tolerance"`
}

// ScoringConfig holds the confidence factor weights.
type ScoringConfig struct {
	TitleWeight   float64 `mapstructure:"title_weight"`
	YearWeight    float64 `mapstructure:"year_weight"`
	KeywordWeight float64 `mapstructure:"keyword_weight"`
}

// SourcesConfig holds catalog credentials and query policy.
type SourcesConfig struct {
	TMDBAPIKey          string `mapstructure:"tmdb_api_key"`
	OMDBAPIKey          string `mapstructure:"omdb_api_key"`
	TVmazeEnabled       bool   `mapstructure:"tvmaze_enabled"`
	MovieFallbackPolicy string `mapstructure:"movie_fallback_policy"`
	RateLimitMillis     int    `mapstructure:"rate_limit_ms"`
}

// ResolverConfig holds lookup parallelism and caching.
type ResolverConfig struct {
	Workers       int    `mapstructure:"workers"`
	CachePath     string `mapstructure:"cache_path"`
	CacheTTLHours int    `mapstructure:"cache_ttl_hours"`
}

// BehaviorConfig holds run behavior toggles.
type BehaviorConfig struct {
	WriteNFO    bool     `mapstructure:"write_nfo"`
	ProbeFiles  bool     `mapstructure:"probe_files"`
	FFprobePath string   `mapstructure:"ffprobe_path"`
	IgnoreGlobs []string `mapstructure:"ignore_globs"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults.
// A .env file in the working directory is applied before reading the
// environment.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("reelsort")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/reelsort")
	}

	v.SetEnvPrefix("REELSORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	naming := organizer.DefaultNamingConfig()
	v.SetDefault("naming.movie_folder", naming.MovieFolderFormat)
	v.SetDefault("naming.movie_file", naming.MovieFileFormat)
	v.SetDefault("naming.series_folder", naming.SeriesFolderFormat)
	v.SetDefault("naming.season_folder", naming.SeasonFolderFormat)
	v.SetDefault("naming.episode_file", naming.EpisodeFileFormat)
	v.SetDefault("naming.movies_dir", naming.MoviesDir)
	v.SetDefault("naming.tv_dir", naming.TVDir)
	v.SetDefault("naming.music_dir", naming.MusicDir)

	v.SetDefault("paths.review", "review_needed")
	v.SetDefault("paths.report", "report.json")

	v.SetDefault("thresholds.auto_accept", 0.85)
	v.SetDefault("thresholds.quarantine", 0.65)
	v.SetDefault("thresholds.min_confidence", 0.7)
	v.SetDefault("thresholds.year_tolerance", 1)

	v.SetDefault("scoring.title_weight", 0.5)
	v.SetDefault("scoring.year_weight", 0.3)
	v.SetDefault("scoring.keyword_weight", 0.2)

	v.SetDefault("sources.tvmaze_enabled", true)
	v.SetDefault("sources.movie_fallback_policy", "on_empty")
	v.SetDefault("sources.rate_limit_ms", 250)

	v.SetDefault("resolver.workers", 4)
	v.SetDefault("resolver.cache_path", "")
	v.SetDefault("resolver.cache_ttl_hours", 24*7)

	v.SetDefault("behavior.write_nfo", true)
	v.SetDefault("behavior.probe_files", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate rejects configurations the pipeline cannot run safely with.
func (c *Config) Validate() error {
	bounds := map[string]float64{
		"thresholds.auto_accept":    c.Thresholds.AutoAccept,
		"thresholds.quarantine":     c.Thresholds.Quarantine,
		"thresholds.min_confidence": c.Thresholds.MinConfidence,
	}
	for name, val := range bounds {
		if val < 0 || val > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, val)
		}
	}
	if c.Thresholds.Quarantine > c.Thresholds.AutoAccept {
		return fmt.Errorf("thresholds.quarantine (%v) must not exceed thresholds.auto_accept (%v)",
			c.Thresholds.Quarantine, c.Thresholds.AutoAccept)
	}

	sum := c.Scoring.TitleWeight + c.Scoring.YearWeight + c.Scoring.KeywordWeight
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", sum)
	}

	switch c.Sources.MovieFallbackPolicy {
	case "on_empty", "always":
	default:
		return fmt.Errorf("sources.movie_fallback_policy must be %q or %q, got %q",
			"on_empty", "always", c.Sources.MovieFallbackPolicy)
	}

	if c.Resolver.Workers < 1 {
		return fmt.Errorf("resolver.workers must be at least 1, got %d", c.Resolver.Workers)
	}
	return nil
}

// RateLimitInterval returns the per-source pacing interval.
func (c *Config) RateLimitInterval() time.Duration {
	return time.Duration(c.Sources.RateLimitMillis) * time.Millisecond
}

// CacheTTL returns the query cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Resolver.CacheTTLHours) * time.Hour
}
