package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the tunable surface the core accepts. Every value has a
// working default; a YAML file and environment variables both override.
type Config struct {
	DBPath string `yaml:"db_path"`

	Scoring struct {
		W1Urgency         float64 `yaml:"w1_urgency"`
		W2Importance      float64 `yaml:"w2_importance"`
		W3Effort          float64 `yaml:"w3_effort"`
		ImportanceDefault float64 `yaml:"importance_default"`
		UrgencyCap        float64 `yaml:"urgency_cap"`
	} `yaml:"scoring"`

	Confidence struct {
		AutoAcceptThreshold float64 `yaml:"auto_accept_threshold"`
		DateParsed          float64 `yaml:"date_parsed_weight"`
		Keyword             float64 `yaml:"keyword_weight"`
		Heading             float64 `yaml:"heading_weight"`
		Repeat              float64 `yaml:"repeat_weight"`
		KeywordDecay        float64 `yaml:"keyword_decay"`
	} `yaml:"confidence"`

	Risk struct {
		HighThreshold     float64 `yaml:"high_threshold"`
		ModerateThreshold float64 `yaml:"moderate_threshold"`
	} `yaml:"risk"`

	SlotGranularityMin  int      `yaml:"slot_granularity_min"`
	RecomputeRetryLimit int      `yaml:"recompute_retry_limit"`
	ExtractTimeout      Duration `yaml:"extract_timeout"`
}

// Duration wraps time.Duration so YAML scalars like "20s" parse via
// time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the documented defaults: 30-minute slots, 0.75
// auto-accept, 0.6/0.35 risk bands, 3 recompute retries.
func Default() Config {
	var cfg Config
	cfg.DBPath = "studyplanner.db"
	cfg.Scoring.W1Urgency = 10.0
	cfg.Scoring.W2Importance = 1.0
	cfg.Scoring.W3Effort = 0.25
	cfg.Scoring.ImportanceDefault = 3.0
	cfg.Scoring.UrgencyCap = 1.0
	cfg.Confidence.AutoAcceptThreshold = 0.75
	cfg.Confidence.DateParsed = 0.40
	cfg.Confidence.Keyword = 0.30
	cfg.Confidence.Heading = 0.15
	cfg.Confidence.Repeat = 0.15
	cfg.Confidence.KeywordDecay = 0.02
	cfg.Risk.HighThreshold = 0.6
	cfg.Risk.ModerateThreshold = 0.35
	cfg.SlotGranularityMin = 30
	cfg.RecomputeRetryLimit = 3
	cfg.ExtractTimeout = Duration(20 * time.Second)
	return cfg
}

// Load reads the YAML file at path (missing file is fine), then applies
// environment overrides, then validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("STUDYPLANNER_DB")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := envFloat("STUDYPLANNER_AUTO_ACCEPT"); ok {
		cfg.Confidence.AutoAcceptThreshold = v
	}
	if v, ok := envInt("STUDYPLANNER_SLOT_MIN"); ok {
		cfg.SlotGranularityMin = v
	}
	if v, ok := envInt("STUDYPLANNER_RETRY_LIMIT"); ok {
		cfg.RecomputeRetryLimit = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYPLANNER_EXTRACT_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ExtractTimeout = Duration(d)
		}
	}
}

func envFloat(key string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c Config) Validate() error {
	if c.Confidence.AutoAcceptThreshold < 0 || c.Confidence.AutoAcceptThreshold > 1 {
		return fmt.Errorf("auto_accept_threshold %v out of range [0,1]", c.Confidence.AutoAcceptThreshold)
	}
	if c.Risk.ModerateThreshold >= c.Risk.HighThreshold {
		return fmt.Errorf("risk moderate_threshold %v must be below high_threshold %v",
			c.Risk.ModerateThreshold, c.Risk.HighThreshold)
	}
	if c.SlotGranularityMin <= 0 {
		return fmt.Errorf("slot_granularity_min must be positive")
	}
	if c.RecomputeRetryLimit < 1 {
		return fmt.Errorf("recompute_retry_limit must be at least 1")
	}
	if c.ExtractTimeout <= 0 {
		return fmt.Errorf("extract_timeout must be positive")
	}
	return nil
}
