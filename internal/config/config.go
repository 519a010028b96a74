package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/ssr/internal/errors"
)

const (
	// DefaultPort is the default render server port.
	DefaultPort = 3000

	// DefaultHost is the default render server host.
	DefaultHost = "localhost"

	// DefaultCacheTTL is the default lifetime of cached renders.
	DefaultCacheTTL = "5m"

	// DefaultCacheMaxEntries bounds the memory cache backend.
	DefaultCacheMaxEntries = 10000

	// DefaultIndent is the default pretty-print indentation.
	DefaultIndent = "  "
)

// ConfigFileNames are the file names Load looks for, in order.
var ConfigFileNames = []string{"vango-ssr.json", "vango-ssr.yaml", "vango-ssr.yml"}

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config is the complete vango-ssr configuration.
type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
	Serializer SerializerConfig `json:"serializer" yaml:"serializer"`
	Log        LogConfig        `json:"log" yaml:"log"`
	Publish    PublishConfig    `json:"publish,omitempty" yaml:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig configures the HTTP render service.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// CacheConfig configures the render cache.
type CacheConfig struct {
	// Backend is memory, redis or none.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`

	// TTL is a Go duration string. "0" disables expiry.
	TTL string `json:"ttl,omitempty" yaml:"ttl,omitempty"`

	// MaxEntries caps the memory backend. Negative removes the cap.
	MaxEntries int `json:"maxEntries,omitempty" yaml:"maxEntries,omitempty"`

	Redis RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// SerializerConfig configures markup output.
type SerializerConfig struct {
	Pretty bool   `json:"pretty,omitempty" yaml:"pretty,omitempty"`
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// PublishConfig configures render publishing.
type PublishConfig struct {
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config configures the S3 client used for s3:// destinations.
type S3Config struct {
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the AWS endpoint for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// UsePathStyle addresses buckets as endpoint/bucket.
	UsePathStyle bool `json:"usePathStyle,omitempty" yaml:"usePathStyle,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from dir. It returns the defaults when no config
// file exists.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from path. The format follows the extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E030").WithDetailf("read %s", path).Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E030").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E030").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E030").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.configPath
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheMemory
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = DefaultCacheMaxEntries
	}
	if c.Cache.Redis.Addr == "" {
		c.Cache.Redis.Addr = "localhost:6379"
	}

	if c.Serializer.Indent == "" {
		c.Serializer.Indent = DefaultIndent
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks value ranges and enums.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E031").
			WithDetailf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return errors.New("E031").
			WithDetailf("cache.backend must be memory, redis or none, got %q", c.Cache.Backend)
	}

	if ttl, err := time.ParseDuration(c.Cache.TTL); err != nil || ttl < 0 {
		return errors.New("E031").
			WithDetailf("cache.ttl must be a non-negative duration, got %q", c.Cache.TTL).
			WithSuggestion(`Use a Go duration such as "30s" or "5m".`)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("E031").WithDetailf("log.level: %v", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E031").WithDetailf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Address returns host:port for the render server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// CacheTTL returns the parsed cache TTL. Invalid values yield zero; Validate
// reports them.
func (c *Config) CacheTTL() time.Duration {
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return ttl
}

// SlogLevel returns the configured log level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	level, err := parseLevel(l.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds a logger writing to w in the configured format.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
