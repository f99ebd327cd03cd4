package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "SPARQL_SCANNER_CONFIG"
	timeoutEnv     = "SPARQL_SCANNER_TIMEOUT_MS"
	concurrencyEnv = "SPARQL_SCANNER_CONCURRENCY"
	strictEnv      = "SPARQL_SCANNER_STRICT"
	logLevelEnv    = "LOG_LEVEL"
	logFormatEnv   = "LOG_FORMAT"

	defaultTimeoutMs   = 8000
	defaultConcurrency = 10
)

// Config holds every run parameter; it is built once and passed down explicitly.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Probe      ProbeConfig      `yaml:"probe"`
	Input      InputConfig      `yaml:"input"`
	Candidates CandidatesConfig `yaml:"candidates"`
	Output     OutputConfig     `yaml:"output"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ProbeConfig controls live verification.
type ProbeConfig struct {
	Verify       bool   `yaml:"verify"`
	TimeoutMs    int    `yaml:"timeoutMs"`
	Concurrency  int    `yaml:"concurrency"`
	Strict       bool   `yaml:"strict"`
	UserAgent    string `yaml:"userAgent"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes"`
}

// Timeout converts the per-request timeout to a duration.
func (p ProbeConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutMs) * time.Millisecond
}

// InputConfig describes the record document and which records take part.
type InputConfig struct {
	Path         string   `yaml:"path"`
	Country      string   `yaml:"country"`
	CountryField string   `yaml:"countryField"`
	Fields       []string `yaml:"fields"`
}

// CandidatesConfig lists where endpoint candidates come from.
type CandidatesConfig struct {
	ExplicitFields []string `yaml:"explicitFields"`
	BaseFields     []string `yaml:"baseFields"`
	Suffixes       []string `yaml:"suffixes"`
}

// OutputConfig names the result document and the optional report.
type OutputConfig struct {
	Path       string `yaml:"path"`
	Report     string `yaml:"report"`
	TitleField string `yaml:"titleField"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// path wins over the SPARQL_SCANNER_CONFIG variable.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate rejects values the run cannot work with.
func (c Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Probe.TimeoutMs <= 0 {
		return fmt.Errorf("timeout must be positive, got %d ms", c.Probe.TimeoutMs)
	}
	if c.Probe.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Probe.Concurrency)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(timeoutEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Probe.TimeoutMs = n
		} else {
			log.Printf("config: ignoring %s=%q: %v", timeoutEnv, v, err)
		}
	}

	if v := os.Getenv(concurrencyEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Probe.Concurrency = n
		} else {
			log.Printf("config: ignoring %s=%q: %v", concurrencyEnv, v, err)
		}
	}

	if v := os.Getenv(strictEnv); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Probe.Strict = b
		} else {
			log.Printf("config: ignoring %s=%q: %v", strictEnv, v, err)
		}
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(logFormatEnv); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Probe.Verify {
		base.Probe.Verify = true
	}
	if override.Probe.TimeoutMs != 0 {
		base.Probe.TimeoutMs = override.Probe.TimeoutMs
	}
	if override.Probe.Concurrency != 0 {
		base.Probe.Concurrency = override.Probe.Concurrency
	}
	if override.Probe.Strict {
		base.Probe.Strict = true
	}
	if override.Probe.UserAgent != "" {
		base.Probe.UserAgent = override.Probe.UserAgent
	}
	if override.Probe.MaxBodyBytes != 0 {
		base.Probe.MaxBodyBytes = override.Probe.MaxBodyBytes
	}

	if override.Input.Path != "" {
		base.Input.Path = override.Input.Path
	}
	if override.Input.Country != "" {
		base.Input.Country = override.Input.Country
	}
	if override.Input.CountryField != "" {
		base.Input.CountryField = override.Input.CountryField
	}
	if len(override.Input.Fields) > 0 {
		base.Input.Fields = override.Input.Fields
	}

	if len(override.Candidates.ExplicitFields) > 0 {
		base.Candidates.ExplicitFields = override.Candidates.ExplicitFields
	}
	if len(override.Candidates.BaseFields) > 0 {
		base.Candidates.BaseFields = override.Candidates.BaseFields
	}
	if len(override.Candidates.Suffixes) > 0 {
		base.Candidates.Suffixes = override.Candidates.Suffixes
	}

	if override.Output.Path != "" {
		base.Output.Path = override.Output.Path
	}
	if override.Output.Report != "" {
		base.Output.Report = override.Output.Report
	}
	if override.Output.TitleField != "" {
		base.Output.TitleField = override.Output.TitleField
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Probe: ProbeConfig{
			TimeoutMs:    defaultTimeoutMs,
			Concurrency:  defaultConcurrency,
			UserAgent:    "SparqlScanner/1.0",
			MaxBodyBytes: 1 << 20,
		},
		Input: InputConfig{
			CountryField: "country",
			Fields:       []string{"name", "title", "country", "url", "homepage"},
		},
		Output: OutputConfig{
			Path:       "sparql-endpoints.json",
			TitleField: "name",
		},
	}
}
