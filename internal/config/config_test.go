package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsInTestEnv(t *testing.T) {
	// 测试环境下找不到配置文件时返回默认配置而不是报错
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Store.Capacity)
	assert.False(t, cfg.MinIO.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
server:
  address: ":9090"
database:
  driver: "mysql"
  host: "db.internal"
  port: 3306
  username: "resume"
  database: "resume_screen"
scorer:
  model_path: "models/rank.txt"
store:
  capacity: 5
logger:
  level: "warn"
  format: "json"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "models/rank.txt", cfg.Scorer.ModelPath)
	assert.Equal(t, 5, cfg.Store.Capacity)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	content := `
database:
  driver: "mysql"
  password: "from-file"
scorer:
  model_path: "from-file.txt"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("RESUME_DB_PASSWORD", "from-env")
	t.Setenv("RESUME_SCORER_MODEL", "from-env.txt")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "from-env.txt", cfg.Scorer.ModelPath)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \"\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/resumes.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Store.Capacity)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestCreateSampleConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, CreateSampleConfig(path))

	// 不覆盖已有文件
	assert.Error(t, CreateSampleConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Store.Capacity)
}
