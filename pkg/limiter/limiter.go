// Package limiter implements a fixed-window request counter backed by an
// external TTL store.
// Package limiter 实现基于外部 TTL 存储的固定窗口请求计数器
package limiter

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store is the counting backend. Incr must be atomic across processes.
// Store 是计数后端，Incr 必须跨进程原子
type Store interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// Config rate window configuration
// Config 限流窗口配置
type Config struct {
	// Window counting window length
	Window time.Duration
	// AuthLimit allowed hits per window for auth routes
	AuthLimit int
	// DefaultLimit allowed hits per window for all other routes
	DefaultLimit int
	// AuthPathPrefix path prefix that selects AuthLimit
	AuthPathPrefix string
}

type Limiter struct {
	store Store
	cfg   Config
}

func New(store Store, cfg Config) *Limiter {
	if cfg.Window <= 0 {
		cfg.Window = 60 * time.Second
	}
	return &Limiter{store: store, cfg: cfg}
}

// Key builds the counter key for one client/route pair.
func Key(ip, method, path string) string {
	return fmt.Sprintf("%s %s %s", ip, method, path)
}

// LimitFor returns the per-window threshold for a request path.
func (l *Limiter) LimitFor(path string) int {
	if strings.HasPrefix(path, l.cfg.AuthPathPrefix) {
		return l.cfg.AuthLimit
	}
	return l.cfg.DefaultLimit
}

// Allow counts one hit and reports whether it is within the limit.
// The window TTL is set only on the first hit, a true fixed window.
// Allow 计数一次并判断是否在限额内，TTL 只在窗口首次命中时设置
func (l *Limiter) Allow(ctx context.Context, key string, limit int) (bool, error) {
	count, err := l.store.Incr(ctx, key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.store.Expire(ctx, key, l.cfg.Window); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
