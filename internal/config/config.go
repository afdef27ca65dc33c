// Package config loads the IDX API server settings.
//
// Sources, lowest to highest precedence: defaults, a YAML or JSON file, IDX_*
// environment variables. Command-line flags are applied on top by the caller.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no explicit config path is given. A missing
// default file is not an error.
const DefaultFile = "idx.yaml"

// Claim store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Settings configures the API server.
type Settings struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	EIDOAgentURL   string        `mapstructure:"eido_agent_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	Metrics        bool          `mapstructure:"metrics"`
	Claims         ClaimSettings `mapstructure:"claims"`
}

// ClaimSettings selects and configures the claim store.
type ClaimSettings struct {
	Backend string        `mapstructure:"backend"`
	Redis   RedisSettings `mapstructure:"redis"`
}

// RedisSettings configures the Redis claim store.
type RedisSettings struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Host:           "127.0.0.1",
		Port:           8001,
		EIDOAgentURL:   "http://localhost:8000",
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
		Metrics:        true,
		Claims: ClaimSettings{
			Backend: BackendMemory,
			Redis: RedisSettings{
				Addr:   "localhost:6379",
				Prefix: "idx:",
			},
		},
	}
}

// envKeys maps environment variables to dotted settings keys.
var envKeys = map[string]string{
	"IDX_HOST":            "host",
	"IDX_PORT":            "port",
	"IDX_EIDO_AGENT_URL":  "eido_agent_url",
	"EIDO_AGENT_URL":      "eido_agent_url",
	"IDX_REQUEST_TIMEOUT": "request_timeout",
	"IDX_LOG_LEVEL":       "log_level",
	"IDX_METRICS":         "metrics",
	"IDX_CLAIMS_BACKEND":  "claims.backend",
	"IDX_REDIS_ADDR":      "claims.redis.addr",
	"IDX_REDIS_PASSWORD":  "claims.redis.password",
	"IDX_REDIS_DB":        "claims.redis.db",
	"IDX_REDIS_PREFIX":    "claims.redis.prefix",
	"IDX_REDIS_TTL":       "claims.redis.ttl",
}

// Load builds Settings from defaults, the file at path and the environment.
// An empty path means DefaultFile, which may be absent.
func Load(path string) (Settings, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Settings, error) {
	settings := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	raw, err := readFile(path, explicit)
	if err != nil {
		return Settings{}, err
	}

	// EIDO_AGENT_URL is the legacy name; the IDX_ prefixed one wins.
	for _, env := range []string{"EIDO_AGENT_URL", "IDX_EIDO_AGENT_URL"} {
		if v, ok := lookup(env); ok {
			setPath(raw, envKeys[env], v)
		}
	}
	for env, key := range envKeys {
		if key == "eido_agent_url" {
			continue
		}
		if v, ok := lookup(env); ok {
			setPath(raw, key, v)
		}
	}

	if err := decode(raw, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func readFile(path string, explicit bool) (map[string]any, error) {
	raw := map[string]any{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return raw, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// setPath sets a dotted key, creating nested maps as needed.
func setPath(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func decode(raw map[string]any, out *Settings) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr returns host:port.
func (s Settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Validate reports the first invalid setting.
func (s Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid port %d", s.Port)
	}
	if s.EIDOAgentURL == "" {
		return fmt.Errorf("eido_agent_url is required")
	}
	u, err := url.Parse(s.EIDOAgentURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid eido_agent_url %q", s.EIDOAgentURL)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	switch s.Claims.Backend {
	case BackendMemory:
	case BackendRedis:
		if s.Claims.Redis.Addr == "" {
			return fmt.Errorf("claims.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown claims backend %q", s.Claims.Backend)
	}
	return nil
}
