package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Default token issuer
// 默认 Token 签发者
const DefaultTokenIssuer = "shared-notes-service"

// TokenKind selects the signing key and lifetime.
type TokenKind string

const (
	// TokenKindAccess short-lived per-request credential
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh longer-lived session-renewal credential
	TokenKindRefresh TokenKind = "refresh"
)

// ErrMissingSecretKey is a configuration failure, never a client error.
// ErrMissingSecretKey 属于配置错误，不是客户端错误
var ErrMissingSecretKey = errors.New("token secret key is not configured")

// TokenConfig 定义 Token 管理器的配置
type TokenConfig struct {
	AccessSecretKey  string        `yaml:"access-secret-key"`  // 访问 Token 签名密钥
	RefreshSecretKey string        `yaml:"refresh-secret-key"` // 刷新 Token 签名密钥
	AccessExpiry     time.Duration `yaml:"access-expiry"`      // 访问 Token 过期时间，默认 1 小时
	RefreshExpiry    time.Duration `yaml:"refresh-expiry"`     // 刷新 Token 过期时间，默认 2 小时
	Issuer           string        `yaml:"issuer"`             // Token 签发者
}

// TokenManager 定义 Token 管理接口
type TokenManager interface {
	Generate(kind TokenKind, uid int64, email string) (string, error)
	Parse(kind TokenKind, token string) (*UserEntity, error)
}

type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.AccessExpiry == 0 {
		cfg.AccessExpiry = time.Hour
	}
	if cfg.RefreshExpiry == 0 {
		cfg.RefreshExpiry = 2 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// UserEntity represents the identity claims stored in the JWT.
// The password is never embedded.
type UserEntity struct {
	UID   int64  `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (t *tokenManager) keyFor(kind TokenKind) (string, error) {
	var key string
	switch kind {
	case TokenKindAccess:
		key = t.config.AccessSecretKey
	case TokenKindRefresh:
		key = t.config.RefreshSecretKey
	default:
		return "", fmt.Errorf("unknown token kind: %s", kind)
	}
	if key == "" {
		return "", ErrMissingSecretKey
	}
	return key, nil
}

func (t *tokenManager) expiryFor(kind TokenKind) time.Duration {
	if kind == TokenKindRefresh {
		return t.config.RefreshExpiry
	}
	return t.config.AccessExpiry
}

// Generate 生成一个新的 JWT Token
func (t *tokenManager) Generate(kind TokenKind, uid int64, email string) (string, error) {
	key, err := t.keyFor(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &UserEntity{
		UID:   uid,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiryFor(kind))),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   string(kind) + "-token",
			ID:        strconv.FormatInt(uid, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(key))
}

// Parse 解析 JWT Token 并返回用户信息
func (t *tokenManager) Parse(kind TokenKind, tokenString string) (*UserEntity, error) {
	key, err := t.keyFor(kind)
	if err != nil {
		return nil, err
	}

	claims := &UserEntity{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(key), nil
	})

	if err != nil {
		return nil, err
	}

	if !parsedToken.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}

// IsTokenInvalid reports whether err means the presented token is bad
// (expired, malformed, wrong signature) as opposed to a server-side failure.
// IsTokenInvalid 判断错误是否为客户端 Token 无效，而非服务端故障
func IsTokenInvalid(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) ||
		errors.Is(err, jwt.ErrTokenUnverifiable)
}

// GetUID extracts the user ID from the request context.
func GetUID(ctx *gin.Context) (out int64) {
	user, exist := ctx.Get("user_token")
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.UID
		}
	}
	return
}

// GetUserToken extracts the verified identity from the request context.
func GetUserToken(ctx *gin.Context) *UserEntity {
	user, exist := ctx.Get("user_token")
	if !exist {
		return nil
	}
	userEntity, ok := user.(*UserEntity)
	if !ok {
		return nil
	}
	return userEntity
}
