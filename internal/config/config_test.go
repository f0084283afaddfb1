package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridops/outage-gin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault 测试默认配置
func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "outage", cfg.Database.DBName)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.Equal(t, int64(10*1024*1024), cfg.Import.MaxFileSize)
	assert.Equal(t, 1000, cfg.Import.MaxRowsCSV)
	assert.Equal(t, 1000, cfg.Import.MaxRowsXLSX)
	assert.Equal(t, 10, cfg.Import.MinLeadDays)
	assert.Equal(t, 10, cfg.Import.ErrorDetailLimit)
	assert.Equal(t, "Asia/Bangkok", cfg.Import.Timezone)

	assert.NoError(t, cfg.Validate())
}

// TestLoadFromFile 测试从配置文件加载
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
env: production
server:
  port: 9090
database:
  password: secret
import:
  max_rows_csv: 500
  min_lead_days: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 500, cfg.Import.MaxRowsCSV)
	assert.Equal(t, 5, cfg.Import.MinLeadDays)
	// 未覆盖的键保留默认值
	assert.Equal(t, 1000, cfg.Import.MaxRowsXLSX)
}

// TestLoadMissingFile 测试配置文件不存在
func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

// TestValidate 测试配置校验
func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad timezone", func(c *config.Config) { c.Import.Timezone = "Mars/Olympus" }},
		{"zero file size", func(c *config.Config) { c.Import.MaxFileSize = 0 }},
		{"zero csv rows", func(c *config.Config) { c.Import.MaxRowsCSV = 0 }},
		{"zero xlsx rows", func(c *config.Config) { c.Import.MaxRowsXLSX = 0 }},
		{"negative lead days", func(c *config.Config) { c.Import.MinLeadDays = -1 }},
		{"production without password", func(c *config.Config) { c.Env = "production" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// TestIsProduction 测试环境判定
func TestIsProduction(t *testing.T) {
	assert.False(t, config.IsProduction(nil))
	assert.False(t, config.IsProduction(config.Default()))

	cfg := config.Default()
	cfg.Env = "production"
	assert.True(t, config.IsProduction(cfg))
}
