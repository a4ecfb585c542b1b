package app

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		AccessSecretKey:  "access-secret",
		RefreshSecretKey: "refresh-secret",
		AccessExpiry:     1 * time.Hour,
		RefreshExpiry:    2 * time.Hour,
		Issuer:           "test-issuer",
	}
	tm := NewTokenManager(cfg)

	uid := int64(1001)
	email := "test@example.com"

	// 1. 测试生成和解析
	token, err := tm.Generate(TokenKindAccess, uid, email)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsedUser, err := tm.Parse(TokenKindAccess, token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// 验证字段
	if parsedUser.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, parsedUser.UID)
	}
	if parsedUser.Email != email {
		t.Errorf("Expected Email %s, got %s", email, parsedUser.Email)
	}
	if parsedUser.Issuer != cfg.Issuer {
		t.Errorf("Expected Issuer %s, got %s", cfg.Issuer, parsedUser.Issuer)
	}

	// 验证 ExpiresAt (由于只存了秒级 Unix 戳，允许 1 秒内的误差)
	expectedExp := time.Now().Add(cfg.AccessExpiry)
	if parsedUser.ExpiresAt.Unix() < expectedExp.Unix()-1 || parsedUser.ExpiresAt.Unix() > expectedExp.Unix()+1 {
		t.Errorf("Expected ExpiresAt around %v, got %v", expectedExp, parsedUser.ExpiresAt)
	}

	// 2. 访问密钥不能解析刷新 Token
	refreshToken, err := tm.Generate(TokenKindRefresh, uid, email)
	if err != nil {
		t.Fatalf("Generate (refresh) failed: %v", err)
	}
	if _, err := tm.Parse(TokenKindAccess, refreshToken); err == nil {
		t.Error("Expected error when parsing refresh token with access key, but got nil")
	}
	if _, err := tm.Parse(TokenKindRefresh, refreshToken); err != nil {
		t.Errorf("Parse (refresh) failed: %v", err)
	}

	// 3. 测试错误的密钥
	wrongKeyCfg := cfg
	wrongKeyCfg.AccessSecretKey = "wrong-secret"
	tmWrongKey := NewTokenManager(wrongKeyCfg)

	wrongToken, _ := tmWrongKey.Generate(TokenKindAccess, uid, email)
	_, err = tm.Parse(TokenKindAccess, wrongToken)
	if err == nil {
		t.Error("Expected error for token generated with different secret key, but got nil")
	}
	if !IsTokenInvalid(err) {
		t.Errorf("Expected IsTokenInvalid for wrong key error, got %v", err)
	}

	// 4. 测试篡改后的 Token
	tamperedToken := token + "xyz"
	_, err = tm.Parse(TokenKindAccess, tamperedToken)
	if err == nil {
		t.Error("Expected error for tampered token, but got nil")
	}
	if !IsTokenInvalid(err) {
		t.Errorf("Expected IsTokenInvalid for tampered token error, got %v", err)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	cfg := TokenConfig{
		AccessSecretKey:  "access-secret",
		RefreshSecretKey: "refresh-secret",
		AccessExpiry:     -1 * time.Second,
		Issuer:           "test-issuer",
	}
	tm := NewTokenManager(cfg)

	expiredToken, err := tm.Generate(TokenKindAccess, 1, "test@example.com")
	if err != nil {
		t.Fatalf("Generate (expired) failed: %v", err)
	}

	_, err = tm.Parse(TokenKindAccess, expiredToken)
	if err == nil {
		t.Error("Expected error for expired token, but got nil")
	}
	if !IsTokenInvalid(err) {
		t.Errorf("Expected IsTokenInvalid for expired token error, got %v", err)
	}
}

func TestTokenManager_MissingSecret(t *testing.T) {
	tm := NewTokenManager(TokenConfig{})

	// 未配置密钥属于服务端配置错误
	_, err := tm.Generate(TokenKindAccess, 1, "test@example.com")
	if !errors.Is(err, ErrMissingSecretKey) {
		t.Errorf("Expected ErrMissingSecretKey, got %v", err)
	}
	if IsTokenInvalid(err) {
		t.Error("Missing secret must not be classified as an invalid client token")
	}

	_, err = tm.Parse(TokenKindRefresh, "whatever")
	if !errors.Is(err, ErrMissingSecretKey) {
		t.Errorf("Expected ErrMissingSecretKey, got %v", err)
	}
}
