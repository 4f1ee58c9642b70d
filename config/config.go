// Package config loads application configuration from a YAML file with an
// environment overlay: an optional .env is applied first, then variables
// prefixed SCRIBE_ override file values (SCRIBE_WHISPER_URL, etc.).
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/skillsenselab/scribe/diarization/gap"
	"github.com/skillsenselab/scribe/diarization/pyannote"
	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/observability"
	"github.com/skillsenselab/scribe/server"
	"github.com/skillsenselab/scribe/transcription/whisper"
	"github.com/skillsenselab/scribe/validation"
)

// envPrefix namespaces environment variable overrides.
const envPrefix = "SCRIBE"

// DiarizationConfig selects and tunes the diarization backend.
type DiarizationConfig struct {
	// Backend is the diarization backend name.
	Backend string `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=pyannote gap"`
	// GapThreshold is the pause length in seconds that flips the speaker
	// for the gap backend.
	GapThreshold float64 `yaml:"gap_threshold" mapstructure:"gap_threshold" validate:"gte=0"`
}

// OutputConfig controls serialization defaults.
type OutputConfig struct {
	// Format is the default output format.
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=json txt md"`
	// WordTimestamps requests word-level timestamps from the backend.
	WordTimestamps bool `yaml:"word_timestamps" mapstructure:"word_timestamps"`
}

// Config is the root application configuration.
type Config struct {
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Whisper       whisper.Config       `yaml:"whisper" mapstructure:"whisper"`
	Pyannote      pyannote.Config      `yaml:"pyannote" mapstructure:"pyannote"`
	Diarization   DiarizationConfig    `yaml:"diarization" mapstructure:"diarization"`
	Output        OutputConfig         `yaml:"output" mapstructure:"output"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields with working local-development values.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Diarization.Backend == "" {
		c.Diarization.Backend = pyannote.ProviderName
	}
	if c.Diarization.GapThreshold == 0 {
		c.Diarization.GapThreshold = gap.DefaultThreshold
	}
	if c.Output.Format == "" {
		c.Output.Format = "txt"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return errors.Validation(err.Error())
	}
	if err := c.Server.Validate(); err != nil {
		return errors.Validation(err.Error())
	}
	return validation.Validate(c)
}

// Load reads configuration from path (empty means search standard
// locations), applies the environment overlay, defaults, and validation.
func Load(path string) (*Config, error) {
	// A local .env never overrides variables already set in the
	// environment; godotenv.Load is a fill-in, not an overlay.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NotFound("config file", path).WithCause(err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		// Missing config is fine: defaults plus env cover the common case.
		_ = v.ReadInConfig()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.InvalidInput("config", "cannot parse configuration").WithCause(err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
