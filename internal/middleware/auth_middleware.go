package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/YTU94/ai-e-contract/config"
	"github.com/YTU94/ai-e-contract/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const identityCacheTTL = 10 * time.Minute

// CachedIdentity is the session identity kept in Redis between requests.
type CachedIdentity struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

// Auth validates the JWT from the auth_token cookie or the Authorization
// header, resolves the user (Redis cache first, then the store) and puts the
// identity on the gin context.
func Auth(cfg *config.Config, rdb *redis.Client, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortUnauthorized(c, "未授权访问")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				abortUnauthorized(c, "无效的 Authorization 头")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			abortUnauthorized(c, "登录已过期，请重新登录")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "无效的令牌")
			return
		}
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			abortUnauthorized(c, "无效的令牌")
			return
		}

		cacheKey := fmt.Sprintf("user:%s:data", userID)
		if rdb != nil {
			cached, err := rdb.Get(c.Request.Context(), cacheKey).Result()
			if err == nil {
				var identity CachedIdentity
				if json.Unmarshal([]byte(cached), &identity) == nil {
					setIdentity(c, &identity)
					return
				}
				slog.Warn("Failed to unmarshal cached identity", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("Redis GET failed", "error", err, "user_id", userID)
			}
		}

		user, err := st.FindUserByID(c.Request.Context(), userID)
		if err != nil {
			slog.Error("Identity lookup failed", "error", err, "user_id", userID)
			abortUnauthorized(c, "未授权访问")
			return
		}
		if user == nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			abortUnauthorized(c, "用户不存在")
			return
		}

		identity := CachedIdentity{
			UserID:  user.ID,
			Email:   user.Email,
			Name:    user.Name,
			Company: user.Company,
		}

		if rdb != nil {
			if data, err := json.Marshal(identity); err == nil {
				if err := rdb.Set(c.Request.Context(), cacheKey, data, identityCacheTTL).Err(); err != nil {
					slog.Error("Failed to cache identity", "error", err, "user_id", userID)
				}
			}
		}

		setIdentity(c, &identity)
	}
}

func setIdentity(c *gin.Context, identity *CachedIdentity) {
	c.Set("user_id", identity.UserID)
	c.Set("email", identity.Email)
	c.Set("userName", identity.Name)
	c.Set("company", identity.Company)
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
