package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	internalApp "github.com/haierkeys/shared-notes-service/internal/app"
	"github.com/haierkeys/shared-notes-service/internal/dao"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// memStore 内存限流计数后端
type memStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemStore() *memStore {
	return &memStore{counts: map[string]int64{}}
}

func (s *memStore) Incr(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key], nil
}

func (s *memStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := dao.NewDBEngine(&dao.DatabaseConfig{
		Type: "sqlite",
		Path: ":memory:",
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg := &internalApp.AppConfig{}
	cfg.Server.RunMode = gin.TestMode
	cfg.Database.AutoMigrate = true
	cfg.Security.AccessTokenKey = "test-access-secret"
	cfg.Security.RefreshTokenKey = "test-refresh-secret"
	cfg.Security.AccessTokenExpiry = "1h"
	cfg.Security.RefreshTokenExpiry = "2h"
	cfg.Security.RefreshCookieMaxAge = 5400
	cfg.Limiter.Window = "60s"
	cfg.Limiter.AuthLimit = 15
	cfg.Limiter.DefaultLimit = 100
	cfg.Limiter.AuthPathPrefix = "/api/auth"

	store := newMemStore()
	container, err := internalApp.NewApp(cfg, zap.NewNop(), db, store)
	if err != nil {
		t.Fatal(err)
	}

	return NewRouter(container), store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.1.2.3:12345"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	out := map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func signupUser(t *testing.T, r *gin.Engine, email string) (token string, id int64) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup %s: status %d body %s", email, w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	return body["accessToken"].(string), int64(body["id"].(float64))
}

func TestSignupFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotEmpty(t, body["accessToken"])

	// 刷新 Token 不出现在响应体
	_, ok := body["refreshToken"]
	assert.False(t, ok)

	// 刷新 Token 通过 Cookie 下发
	var refreshCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "refreshToken" {
			refreshCookie = c
		}
	}
	if assert.NotNil(t, refreshCookie) {
		assert.NotEmpty(t, refreshCookie.Value)
		assert.Equal(t, "/", refreshCookie.Path)
		assert.Equal(t, 5400, refreshCookie.MaxAge)
		assert.True(t, refreshCookie.HttpOnly)
		assert.True(t, refreshCookie.Secure)
		assert.Equal(t, http.SameSiteNoneMode, refreshCookie.SameSite)
	}

	// 重复注册
	w = doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decodeBody(t, w)
	assert.Equal(t, "UserExistsError", errBody["name"])
}

func TestSignupValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	// 邮箱格式错误
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", decodeBody(t, w)["name"])

	// 密码过短
	w = doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "bob@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", decodeBody(t, w)["name"])
}

func TestLoginFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	signupUser(t, r, "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["accessToken"])

	// 密码错误
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AuthorizationError", decodeBody(t, w)["name"])

	// 未知用户
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ghost@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "UserNotFoundError", decodeBody(t, w)["name"])
}

func TestNotesRequireAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/notes", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AuthorizationError", decodeBody(t, w)["name"])
}

func TestNoteCrudFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	token, uid := signupUser(t, r, "alice@example.com")

	// 创建
	w := doJSON(t, r, http.MethodPost, "/api/notes", token, gin.H{
		"title": "groceries",
		"body":  "milk, eggs",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	created := decodeBody(t, w)
	noteID := int64(created["id"].(float64))
	assert.Equal(t, float64(uid), created["createdByUserId"])

	// 读取
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/notes/%d", noteID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "groceries", decodeBody(t, w)["title"])

	// 列表
	w = doJSON(t, r, http.MethodGet, "/api/notes", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// 更新
	w = doJSON(t, r, http.MethodPut, "/api/notes", token, gin.H{
		"id":    noteID,
		"title": "errands",
		"body":  "milk, eggs, bread",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "errands", decodeBody(t, w)["title"])

	// 删除
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/notes/%d", noteID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/notes/%d", noteID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ResourceNotFound", decodeBody(t, w)["name"])
}

func TestNoteInvalidID(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := signupUser(t, r, "alice@example.com")

	// 非数字 ID 是校验错误，而非 404
	w := doJSON(t, r, http.MethodGet, "/api/notes/abcd", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", decodeBody(t, w)["name"])

	w = doJSON(t, r, http.MethodDelete, "/api/notes/-5", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoteShareFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	aliceToken, aliceID := signupUser(t, r, "alice@example.com")
	bobToken, bobID := signupUser(t, r, "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/notes", aliceToken, gin.H{
		"title": "plan",
		"body":  "v1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	noteID := int64(decodeBody(t, w)["id"].(float64))

	// Bob 在分享前不可见
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/notes/%d", noteID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Alice 分享给 Bob，成功为空 200
	w = doJSON(t, r, http.MethodPost, "/api/notes/share", aliceToken, gin.H{
		"noteId": noteID,
		"userId": bobID,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	// Bob 现在可读可写
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/notes/%d", noteID), bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/notes", bobToken, gin.H{
		"id":    noteID,
		"title": "plan",
		"body":  "v2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)

	// 创建者保持为 Alice，最后更新者为 Bob
	assert.Equal(t, float64(aliceID), updated["createdByUserId"])
	assert.Equal(t, float64(bobID), updated["lastUpdatedByUserId"])

	// 自我分享被拒绝
	w = doJSON(t, r, http.MethodPost, "/api/notes/share", aliceToken, gin.H{
		"noteId": noteID,
		"userId": aliceID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", decodeBody(t, w)["name"])

	// 分享给不存在的用户
	w = doJSON(t, r, http.MethodPost, "/api/notes/share", aliceToken, gin.H{
		"noteId": noteID,
		"userId": 99999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ResourceNotFound", decodeBody(t, w)["name"])
}

func TestRateLimit(t *testing.T) {
	r, _ := newTestRouter(t)

	// 认证路由限 15 次
	var w *httptest.ResponseRecorder
	for i := 0; i < 15; i++ {
		w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "alice@example.com",
			"password": "password123",
		})
		assert.NotEqual(t, http.StatusServiceUnavailable, w.Code, "hit %d should not be limited", i+1)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "RateLimitExceededError", decodeBody(t, w)["name"])

	// 其它路由不受认证路由计数影响
	w = doJSON(t, r, http.MethodGet, "/api/version", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVersionEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/version", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["name"])
	assert.NotEmpty(t, body["version"])
}
