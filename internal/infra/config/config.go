package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Corpus source kinds.
const (
	SourceFile        = "file"
	SourcePostgres    = "postgres"
	SourceObjectStore = "objectstore"
	SourceValkey      = "valkey"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Matcher MatcherConfig `yaml:"matcher"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	MCP     MCPConfig     `yaml:"mcp"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// MatcherConfig tunes the similarity engine.
type MatcherConfig struct {
	Threshold         float64 `yaml:"threshold"`
	Workers           int     `yaml:"workers"`
	ParallelThreshold int     `yaml:"parallelThreshold"`
}

// CorpusConfig selects where the FAQ corpus comes from and how it is refreshed.
type CorpusConfig struct {
	Source          string            `yaml:"source"`
	Path            string            `yaml:"path"`
	Watch           bool              `yaml:"watch"`
	WatchDebounce   time.Duration     `yaml:"watchDebounce"`
	RefreshInterval time.Duration     `yaml:"refreshInterval"`
	LoadTimeout     time.Duration     `yaml:"loadTimeout"`
	Postgres        PostgresConfig    `yaml:"postgres"`
	ObjectStore     ObjectStoreConfig `yaml:"objectStore"`
	Valkey          ValkeyConfig      `yaml:"valkey"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Table    string `yaml:"table"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ObjectStoreConfig points at a corpus document in S3-compatible storage.
type ObjectStoreConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// ValkeyConfig contains connection information for a corpus list in Valkey.
type ValkeyConfig struct {
	Addr string `yaml:"addr"`
	Key  string `yaml:"key"`
}

// MCPConfig controls the MCP tool server.
type MCPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	BaseURL string `yaml:"baseUrl"`
}

// WatchFile reports whether the corpus file should be watched. Watch is
// ignored for remote sources.
func (c CorpusConfig) WatchFile() bool {
	return c.Watch && c.Source == SourceFile
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	// PORT is what most PaaS runtimes inject; it wins over HTTP_ADDRESS.
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Address = "0.0.0.0:" + v
		}
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("FAQ_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matcher.Threshold = parsed
		}
	}
	if v := os.Getenv("FAQ_WORKERS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Matcher.Workers = parsed
		}
	}
	if v := os.Getenv("FAQ_PARALLEL_THRESHOLD"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Matcher.ParallelThreshold = parsed
		}
	}
	if v := os.Getenv("CORPUS_SOURCE"); v != "" {
		cfg.Corpus.Source = strings.ToLower(v)
	}
	if v := os.Getenv("CORPUS_PATH"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := os.Getenv("CORPUS_WATCH"); v != "" {
		cfg.Corpus.Watch = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CORPUS_REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Corpus.RefreshInterval = parsed
		}
	}
	if v := os.Getenv("CORPUS_POSTGRES_DSN"); v != "" {
		cfg.Corpus.Postgres.DSN = v
	}
	if v := os.Getenv("CORPUS_POSTGRES_TABLE"); v != "" {
		cfg.Corpus.Postgres.Table = v
	}
	if v := os.Getenv("CORPUS_S3_ENDPOINT"); v != "" {
		cfg.Corpus.ObjectStore.Endpoint = v
	}
	if v := os.Getenv("CORPUS_S3_ACCESS_KEY"); v != "" {
		cfg.Corpus.ObjectStore.AccessKey = v
	}
	if v := os.Getenv("CORPUS_S3_SECRET_KEY"); v != "" {
		cfg.Corpus.ObjectStore.SecretKey = v
	}
	if v := os.Getenv("CORPUS_S3_BUCKET"); v != "" {
		cfg.Corpus.ObjectStore.Bucket = v
	}
	if v := os.Getenv("CORPUS_S3_KEY"); v != "" {
		cfg.Corpus.ObjectStore.Key = v
	}
	if v := os.Getenv("CORPUS_VALKEY_ADDR"); v != "" {
		cfg.Corpus.Valkey.Addr = v
	}
	if v := os.Getenv("CORPUS_VALKEY_KEY"); v != "" {
		cfg.Corpus.Valkey.Key = v
	}
	if v := os.Getenv("MCP_ENABLED"); v != "" {
		cfg.MCP.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("MCP_ADDRESS"); v != "" {
		cfg.MCP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":5000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Matcher: MatcherConfig{
			Threshold:         0.3,
			Workers:           4,
			ParallelThreshold: 2000,
		},
		Corpus: CorpusConfig{
			Source:        SourceFile,
			Path:          "configs/faqs.yaml",
			WatchDebounce: 250 * time.Millisecond,
			LoadTimeout:   10 * time.Second,
			Postgres: PostgresConfig{
				Table:    "faqs",
				MaxConns: 2,
			},
			Valkey: ValkeyConfig{
				Key: "faq:corpus",
			},
		},
		MCP: MCPConfig{
			Enabled: false,
			Address: ":5001",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Matcher.Threshold < 0 || c.Matcher.Threshold > 1 {
		return errors.New("matcher.threshold must be within [0, 1]")
	}
	if c.Matcher.Workers < 0 {
		return errors.New("matcher.workers cannot be negative")
	}
	if c.Matcher.ParallelThreshold < 0 {
		return errors.New("matcher.parallelThreshold cannot be negative")
	}
	if c.Corpus.RefreshInterval < 0 {
		return errors.New("corpus.refreshInterval cannot be negative")
	}
	switch c.Corpus.Source {
	case SourceFile:
		if strings.TrimSpace(c.Corpus.Path) == "" {
			return errors.New("corpus.path cannot be empty for file source")
		}
	case SourcePostgres:
		if strings.TrimSpace(c.Corpus.Postgres.DSN) == "" {
			return errors.New("corpus.postgres.dsn cannot be empty for postgres source")
		}
		if !validIdentifier(c.Corpus.Postgres.Table) {
			return errors.New("corpus.postgres.table must be a plain identifier")
		}
	case SourceObjectStore:
		s := c.Corpus.ObjectStore
		if strings.TrimSpace(s.Endpoint) == "" || strings.TrimSpace(s.Bucket) == "" || strings.TrimSpace(s.Key) == "" {
			return errors.New("corpus.objectStore endpoint, bucket and key are required for objectstore source")
		}
	case SourceValkey:
		if strings.TrimSpace(c.Corpus.Valkey.Addr) == "" || strings.TrimSpace(c.Corpus.Valkey.Key) == "" {
			return errors.New("corpus.valkey addr and key are required for valkey source")
		}
	default:
		return fmt.Errorf("corpus.source %q is not supported", c.Corpus.Source)
	}
	if c.MCP.Enabled && strings.TrimSpace(c.MCP.Address) == "" {
		return errors.New("mcp.address cannot be empty when mcp is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
