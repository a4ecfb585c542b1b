// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/haierkeys/shared-notes-service/pkg/limiter"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Security SecurityConfig `yaml:"security"`
	Redis    RedisConfig    `yaml:"redis"`
	Limiter  LimiterConfig  `yaml:"limiter"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时输出到 stderr
	File string `yaml:"file"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite / mysql / postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
}

// SecurityConfig 安全配置
// Signing key material is loaded once at startup and immutable thereafter.
type SecurityConfig struct {
	// AccessTokenKey 访问 Token 签名密钥
	AccessTokenKey string `yaml:"access-token-key"`
	// RefreshTokenKey 刷新 Token 签名密钥
	RefreshTokenKey string `yaml:"refresh-token-key"`
	// AccessTokenExpiry 访问 Token 过期时间，支持格式：1h（小时）、30m（分钟）、7d（天）
	AccessTokenExpiry string `yaml:"access-token-expiry" default:"1h"`
	// RefreshTokenExpiry 刷新 Token 过期时间
	RefreshTokenExpiry string `yaml:"refresh-token-expiry" default:"2h"`
	// RefreshCookieMaxAge 刷新 Token Cookie 的 Max-Age（秒）
	RefreshCookieMaxAge int `yaml:"refresh-cookie-max-age" default:"5400"`
}

// RedisConfig 限流计数器存储配置
type RedisConfig struct {
	// Addr 地址
	Addr string `yaml:"addr" default:"127.0.0.1:6379"`
	// Password 密码
	Password string `yaml:"password"`
	// DB 数据库编号
	DB int `yaml:"db" default:"0"`
}

// LimiterConfig 限流配置
type LimiterConfig struct {
	// Window 计数窗口长度，支持格式：60s、1m
	Window string `yaml:"window" default:"60s"`
	// AuthLimit 认证路由每窗口允许的请求数
	AuthLimit int `yaml:"auth-limit" default:"15"`
	// DefaultLimit 其它路由每窗口允许的请求数
	DefaultLimit int `yaml:"default-limit" default:"100"`
	// AuthPathPrefix 选择 AuthLimit 的路径前缀
	AuthPathPrefix string `yaml:"auth-path-prefix" default:"/api/auth"`
}

// LoadConfig loads the YAML config file, applies struct defaults and
// environment overrides for secret material.
// LoadConfig 加载配置文件，应用默认值与密钥环境变量覆盖
func LoadConfig(path string) (*AppConfig, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "read config file")
	}

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, "", errors.Wrap(err, "parse config file")
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, "", errors.Wrap(err, "apply config defaults")
	}

	// Secrets from the environment win over the file.
	// 环境变量中的密钥优先于配置文件
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		cfg.Security.AccessTokenKey = v
	}
	if v := os.Getenv("REFRESH_TOKEN_SECRET"); v != "" {
		cfg.Security.RefreshTokenKey = v
	}

	realpath, err := filepath.Abs(path)
	if err != nil {
		realpath = path
	}
	cfg.File = realpath

	return cfg, realpath, nil
}

// parseExpiry parses durations and additionally supports a d (day) suffix.
// parseExpiry 解析时长，额外支持 d（天）后缀
func parseExpiry(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return fallback
		}
		return time.Duration(days) * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// GetAccessTokenExpiry 获取访问 Token 过期时间
func (c *AppConfig) GetAccessTokenExpiry() time.Duration {
	return parseExpiry(c.Security.AccessTokenExpiry, time.Hour)
}

// GetRefreshTokenExpiry 获取刷新 Token 过期时间
func (c *AppConfig) GetRefreshTokenExpiry() time.Duration {
	return parseExpiry(c.Security.RefreshTokenExpiry, 2*time.Hour)
}

// GetLimiterConfig 获取限流器配置
func (c *AppConfig) GetLimiterConfig() limiter.Config {
	return limiter.Config{
		Window:         parseExpiry(c.Limiter.Window, 60*time.Second),
		AuthLimit:      c.Limiter.AuthLimit,
		DefaultLimit:   c.Limiter.DefaultLimit,
		AuthPathPrefix: c.Limiter.AuthPathPrefix,
	}
}
