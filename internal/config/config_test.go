package config

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := load("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.NoError(t, s.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "idx.yaml", `
port: 9001
eido_agent_url: http://eido:8000
request_timeout: 5s
claims:
  backend: redis
  redis:
    addr: redis:6379
    db: 2
`)

	s, err := load(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, 9001, s.Port)
	assert.Equal(t, "http://eido:8000", s.EIDOAgentURL)
	assert.Equal(t, 5*time.Second, s.RequestTimeout)
	assert.Equal(t, BackendRedis, s.Claims.Backend)
	assert.Equal(t, "redis:6379", s.Claims.Redis.Addr)
	assert.Equal(t, 2, s.Claims.Redis.DB)
	// untouched keys keep defaults
	assert.Equal(t, "idx:", s.Claims.Redis.Prefix)
	assert.NoError(t, s.Validate())
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "idx.json", `{"log_level":"debug","metrics":false}`)

	s, err := load(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.False(t, s.Metrics)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "idx.yaml", "port: 9001\neido_agent_url: http://file:8000\n")

	s, err := load(path, envMap(map[string]string{
		"IDX_PORT":           "9100",
		"EIDO_AGENT_URL":     "http://legacy:8000",
		"IDX_EIDO_AGENT_URL": "http://env:8000",
		"IDX_METRICS":        "false",
		"IDX_REDIS_TTL":      "1h",
	}))
	require.NoError(t, err)
	assert.Equal(t, 9100, s.Port)
	assert.Equal(t, "http://env:8000", s.EIDOAgentURL)
	assert.False(t, s.Metrics)
	assert.Equal(t, time.Hour, s.Claims.Redis.TTL)
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := load("", envMap(map[string]string{"EIDO_AGENT_URL": "http://legacy:8000"}))
	require.NoError(t, err)
	assert.Equal(t, "http://legacy:8000", s.EIDOAgentURL)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Missing Explicit File", func(t *testing.T) {
		_, err := load(filepath.Join(t.TempDir(), "nope.yaml"), noEnv)
		assert.Error(t, err)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := load(writeFile(t, "bad.yaml", "port: [1"), noEnv)
		assert.Error(t, err)
	})

	t.Run("Unknown Key", func(t *testing.T) {
		_, err := load(writeFile(t, "typo.yaml", "prot: 80\n"), noEnv)
		assert.Error(t, err)
	})

	t.Run("Bad Type", func(t *testing.T) {
		_, err := load(writeFile(t, "idx.yaml", "port: eighty\n"), noEnv)
		assert.Error(t, err)
	})
}

func TestSettings_Validate(t *testing.T) {
	mutate := func(f func(*Settings)) Settings {
		s := Default()
		f(&s)
		return s
	}

	cases := map[string]Settings{
		"port zero":       mutate(func(s *Settings) { s.Port = 0 }),
		"port too large":  mutate(func(s *Settings) { s.Port = 70000 }),
		"empty upstream":  mutate(func(s *Settings) { s.EIDOAgentURL = "" }),
		"relative url":    mutate(func(s *Settings) { s.EIDOAgentURL = "eido:8000" }),
		"zero timeout":    mutate(func(s *Settings) { s.RequestTimeout = 0 }),
		"unknown backend": mutate(func(s *Settings) { s.Claims.Backend = "etcd" }),
		"redis no addr": mutate(func(s *Settings) {
			s.Claims.Backend = BackendRedis
			s.Claims.Redis.Addr = ""
		}),
	}
	for name, s := range cases {
		assert.Error(t, s.Validate(), name)
	}

	assert.Equal(t, "127.0.0.1:8001", Default().Addr())
}

func TestSettings_Addr_IPv6(t *testing.T) {
	s := Default()
	s.Host = "::1"
	assert.Equal(t, "[::1]:8001", s.Addr())

	host, port, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)
	assert.Equal(t, "::1", host)
	assert.Equal(t, "8001", port)
}
