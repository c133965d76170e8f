package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kgzivf/blogbackend/pkg"
)

// Deployment is the hosting target the service is built for. It decides the
// REST route chain and which database URL is preferred.
type Deployment string

const (
	DeploymentLocal      Deployment = "local"
	DeploymentContainer  Deployment = "container"
	DeploymentServerless Deployment = "serverless"
)

func ParseDeployment(s string) (Deployment, error) {
	switch d := Deployment(strings.ToLower(strings.TrimSpace(s))); d {
	case DeploymentLocal, DeploymentContainer, DeploymentServerless:
		return d, nil
	case "":
		return DeploymentLocal, nil
	default:
		return "", fmt.Errorf("unknown deployment: %s", s)
	}
}

// Backend selects where blog data lives.
type Backend string

const (
	BackendSQL     Backend = "sql"
	BackendREST    Backend = "rest"
	BackendPostAPI Backend = "postapi"
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendSQL, BackendREST, BackendPostAPI:
		return b, nil
	case "":
		return BackendSQL, nil
	default:
		return "", fmt.Errorf("unknown backend: %s", s)
	}
}

const (
	DefaultPoolMin         = 2
	DefaultPoolMax         = 10
	DefaultPoolIdleTimeout = 30 * time.Second
	DefaultPostAPIBaseURL  = "https://postapi.kgzivf.com"
	DefaultRequestTimeout  = 10 * time.Second
	DefaultRouteCacheTTL   = time.Minute
)

type Database struct {
	URL             string   `toml:"url"`
	InternalURL     string   `toml:"internal_url"`
	ExternalURL     string   `toml:"external_url"`
	PoolMin         int32    `toml:"pool_min"`
	PoolMax         int32    `toml:"pool_max"`
	PoolIdleTimeout Duration `toml:"pool_idle_timeout"`
	TouchColumn     string   `toml:"touch_column"`
}

type REST struct {
	SupabaseURL string `toml:"supabase_url"`
	AnonKey     string `toml:"-"`
	ProxyURL    string `toml:"proxy_url"`
	PageHTTPS   bool   `toml:"page_https"`
	// RouteCacheTTL unset means DefaultRouteCacheTTL, "0s" disables the cache.
	RouteCacheTTL *Duration `toml:"route_cache_ttl"`
	Timeout       Duration  `toml:"timeout"`
}

type PostAPI struct {
	BaseURL     string   `toml:"base_url"`
	APIKey      string   `toml:"-"`
	Timeout     Duration `toml:"timeout"`
	CacheTTL    Duration `toml:"cache_ttl"`
	EnableDebug bool     `toml:"enable_debug"`
}

type Config struct {
	Host        string     `toml:"host"`
	Port        int        `toml:"port"`
	Environment string     `toml:"environment"`
	Deployment  Deployment `toml:"deployment"`
	Backend     Backend    `toml:"backend"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	AllowedOrigins       []string `toml:"allowed_origins"`
	ProxyRateLimitPerMin int      `toml:"proxy_rate_limit_per_min"`

	Database Database `toml:"database"`
	REST     REST     `toml:"rest"`
	PostAPI  PostAPI  `toml:"postapi"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path, picks the section for env and overlays
// secrets and knobs from the environment.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	c.Database.URL = pkg.FirstNonEmpty(getenv("DATABASE_URL"), c.Database.URL)
	c.Database.InternalURL = pkg.FirstNonEmpty(getenv("DOKPLOY_DATABASE_URL"), getenv("DATABASE_URL_INTERNAL"), c.Database.InternalURL)
	c.REST.SupabaseURL = pkg.FirstNonEmpty(getenv("SUPABASE_URL"), c.REST.SupabaseURL)
	c.REST.AnonKey = getenv("SUPABASE_ANON_KEY")
	c.PostAPI.BaseURL = pkg.FirstNonEmpty(getenv("POSTAPI_BASE_URL"), c.PostAPI.BaseURL)
	c.PostAPI.APIKey = getenv("POSTAPI_KEY")

	for name, target := range map[string]*int32{
		"DB_POOL_MIN": &c.Database.PoolMin,
		"DB_POOL_MAX": &c.Database.PoolMax,
	} {
		if v := getenv(name); v != "" {
			n, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}
			*target = int32(n)
		}
	}

	if v := getenv("DB_POOL_IDLE_TIMEOUT"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DB_POOL_IDLE_TIMEOUT: %w", err)
		}
		c.Database.PoolIdleTimeout = Duration{time.Duration(ms) * time.Millisecond}
	}

	return nil
}

// WinnerCacheTTL is how long the last successful REST route is preferred.
func (r REST) WinnerCacheTTL() time.Duration {
	if r.RouteCacheTTL == nil {
		return DefaultRouteCacheTTL
	}
	return r.RouteCacheTTL.Duration
}

func (c *Config) applyDefaults() {
	if c.Deployment == "" {
		c.Deployment = DeploymentLocal
	}
	if c.Backend == "" {
		c.Backend = BackendSQL
	}
	if c.Database.PoolMin <= 0 {
		c.Database.PoolMin = DefaultPoolMin
	}
	if c.Database.PoolMax <= 0 {
		c.Database.PoolMax = DefaultPoolMax
	}
	if c.Database.PoolIdleTimeout.Duration <= 0 {
		c.Database.PoolIdleTimeout = Duration{DefaultPoolIdleTimeout}
	}
	if c.Database.TouchColumn == "" {
		c.Database.TouchColumn = "updated_at"
	}
	if c.REST.Timeout.Duration <= 0 {
		c.REST.Timeout = Duration{DefaultRequestTimeout}
	}
	if c.PostAPI.BaseURL == "" {
		c.PostAPI.BaseURL = DefaultPostAPIBaseURL
	}
	if c.PostAPI.Timeout.Duration <= 0 {
		c.PostAPI.Timeout = Duration{DefaultRequestTimeout}
	}
}

func (c *Config) Validate() error {
	if _, err := ParseDeployment(string(c.Deployment)); err != nil {
		return err
	}
	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return err
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("pool_min %d greater than pool_max %d", c.Database.PoolMin, c.Database.PoolMax)
	}

	switch c.Backend {
	case BackendSQL:
		if c.DatabaseURL() == "" {
			return fmt.Errorf("backend %s requires a database url", c.Backend)
		}
	case BackendREST:
		if c.REST.SupabaseURL == "" && c.REST.ProxyURL == "" {
			return fmt.Errorf("backend %s requires supabase_url or proxy_url", c.Backend)
		}
		if c.Deployment == DeploymentServerless && c.REST.ProxyURL == "" {
			return fmt.Errorf("deployment %s requires proxy_url", c.Deployment)
		}
	}

	return nil
}

// DatabaseURL picks the connection string for the deployment: containers
// reach the database over the internal network, everything else uses the
// public URL.
func (c *Config) DatabaseURL() string {
	if c.Deployment == DeploymentContainer {
		return pkg.FirstNonEmpty(c.Database.InternalURL, c.Database.URL, c.Database.ExternalURL)
	}
	return pkg.FirstNonEmpty(c.Database.URL, c.Database.ExternalURL, c.Database.InternalURL)
}

// ConnectionType reports whether DatabaseURL points to the internal network.
func (c *Config) ConnectionType() string {
	if url := c.DatabaseURL(); url != "" && url == c.Database.InternalURL {
		return "internal"
	}
	return "external"
}

// Duration decodes TOML strings like "30s" or "1m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}
