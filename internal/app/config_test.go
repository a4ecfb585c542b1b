package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTestConfig(t, "security:\n  access-token-key: k1\n  refresh-token-key: k2\n")

	cfg, realpath, err := LoadConfig(path)
	assert.Nil(t, err)
	assert.NotEmpty(t, realpath)

	// 未设置的字段取默认值
	assert.Equal(t, "release", cfg.Server.RunMode)
	assert.Equal(t, ":9000", cfg.Server.HttpPort)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 15, cfg.Limiter.AuthLimit)
	assert.Equal(t, 100, cfg.Limiter.DefaultLimit)
	assert.Equal(t, "/api/auth", cfg.Limiter.AuthPathPrefix)
	assert.Equal(t, 5400, cfg.Security.RefreshCookieMaxAge)

	assert.Equal(t, "k1", cfg.Security.AccessTokenKey)
	assert.Equal(t, "k2", cfg.Security.RefreshTokenKey)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeTestConfig(t, "security:\n  access-token-key: file-key\n")

	t.Setenv("ACCESS_TOKEN_SECRET", "env-access-key")
	t.Setenv("REFRESH_TOKEN_SECRET", "env-refresh-key")

	cfg, _, err := LoadConfig(path)
	assert.Nil(t, err)

	// 环境变量覆盖配置文件
	assert.Equal(t, "env-access-key", cfg.Security.AccessTokenKey)
	assert.Equal(t, "env-refresh-key", cfg.Security.RefreshTokenKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig("does/not/exist.yaml")
	assert.NotNil(t, err)
}

func TestParseExpiry(t *testing.T) {
	assert.Equal(t, time.Hour, parseExpiry("1h", 0))
	assert.Equal(t, 30*time.Minute, parseExpiry("30m", 0))
	assert.Equal(t, 90*time.Second, parseExpiry("90s", 0))

	// d 后缀表示天
	assert.Equal(t, 7*24*time.Hour, parseExpiry("7d", 0))

	// 非法输入取回退值
	assert.Equal(t, time.Hour, parseExpiry("", time.Hour))
	assert.Equal(t, time.Hour, parseExpiry("bogus", time.Hour))
	assert.Equal(t, time.Hour, parseExpiry("xd", time.Hour))
}

func TestGetLimiterConfig(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Limiter.Window = "60s"
	cfg.Limiter.AuthLimit = 15
	cfg.Limiter.DefaultLimit = 100
	cfg.Limiter.AuthPathPrefix = "/api/auth"

	lc := cfg.GetLimiterConfig()
	assert.Equal(t, 60*time.Second, lc.Window)
	assert.Equal(t, 15, lc.AuthLimit)
	assert.Equal(t, 100, lc.DefaultLimit)
	assert.Equal(t, "/api/auth", lc.AuthPathPrefix)
}
