package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
workers:
  rank-micro-niches:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "niche-workers", cfg.App.Name)
	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, "./configs/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, "micro_niches", cfg.Catalog.Table)
	assert.Equal(t, 300000, cfg.Scoring.CacheTTL)
	assert.True(t, cfg.Scoring.CacheEnabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Metrics.Address)

	w := cfg.Workers["rank-micro-niches"]
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 10000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFile_EnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_BROKER", "zeebe:26500")
	path := writeConfig(t, `
camunda:
  broker_address: ${TEST_BROKER}
catalog:
  source: file
  path: ./catalog.yaml
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("DATABASE_REDIS_ADDRESS", "redis:6379")
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", cfg.Database.Redis.Address)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "catalog:\n  source: file\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name:    "unknown catalog source",
			body:    "camunda:\n  broker_address: x:1\ncatalog:\n  source: s3\n",
			wantErr: "catalog.source must be",
		},
		{
			name:    "postgres source without host",
			body:    "camunda:\n  broker_address: x:1\ncatalog:\n  source: postgres\n",
			wantErr: "database.postgres.host is required",
		},
		{
			name:    "cache without ttl",
			body:    "camunda:\n  broker_address: x:1\nscoring:\n  cache_enabled: true\n  cache_ttl: -1\n",
			wantErr: "scoring.cache_ttl must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetWorkerConfig_Fallback(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"score-micro-niche": {Enabled: false, MaxJobsActive: 1},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "score-micro-niche"))
	assert.True(t, IsWorkerEnabled(cfg, "rank-micro-niches"))
	assert.Equal(t, 1, GetWorkerConfig(cfg, "score-micro-niche").MaxJobsActive)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "rank-micro-niches").MaxJobsActive)
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "niches", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=niches sslmode=disable", p.GetDSN())
}
