package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/YTU94/ai-e-contract/config"
	"github.com/YTU94/ai-e-contract/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-0123456789abcdef"

func signToken(t *testing.T, userID string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func authTestRouter(t *testing.T, rdb *redis.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{AppEnv: "development", JWTSecret: testSecret}
	st := store.New(cfg, nil)

	r := gin.New()
	r.GET("/protected", Auth(cfg, rdb, st), func(c *gin.Context) {
		id, _ := c.Get("user_id")
		email, _ := c.Get("email")
		c.JSON(http.StatusOK, gin.H{"id": id, "email": email})
	})
	return r
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := authTestRouter(t, nil)

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "未授权访问")
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	r := authTestRouter(t, nil)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "无效的 Authorization 头")
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	r := authTestRouter(t, nil)

	token := signToken(t, "user_1", time.Now().Add(-time.Hour))
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "登录已过期")
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	r := authTestRouter(t, nil)

	token := signToken(t, "user_1", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_1")
	assert.Contains(t, w.Body.String(), "demo@example.com")
}

func TestAuthAcceptsCookie(t *testing.T) {
	r := authTestRouter(t, nil)

	token := signToken(t, "user_1", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_1")
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	r := authTestRouter(t, nil)

	token := signToken(t, "user_999", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "用户不存在")
}

func TestAuthCachesIdentityInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := authTestRouter(t, rdb)

	token := signToken(t, "user_1", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cached, err := mr.Get("user:user_1:data")
	require.NoError(t, err)

	var identity CachedIdentity
	require.NoError(t, json.Unmarshal([]byte(cached), &identity))
	assert.Equal(t, "user_1", identity.UserID)
	assert.Equal(t, "demo@example.com", identity.Email)
}

func TestAuthServesFromRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	// Pre-seed the cache with an identity the store does not know. If the
	// handler sees it, the lookup never touched the store.
	identity := CachedIdentity{UserID: "user_1", Email: "cached@example.com", Name: "缓存用户"}
	data, _ := json.Marshal(identity)
	require.NoError(t, mr.Set("user:user_1:data", string(data)))

	r := authTestRouter(t, rdb)
	token := signToken(t, "user_1", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cached@example.com")
}
