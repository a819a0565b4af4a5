package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/YTU94/ai-e-contract/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost   = 12
	sessionValid = 30 * 24 * time.Hour
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Company  string `json:"company"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates a new account. Email uniqueness is checked here,
// not inside the store.
func (h *Handler) RegisterHandler(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求数据格式错误", "details": err.Error()})
		return
	}

	existing, err := h.Store.FindUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		slog.Error("Registration lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败，请稍后重试"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "该邮箱已被注册"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		slog.Error("Password hashing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败，请稍后重试"})
		return
	}

	user, err := h.Store.CreateUser(c.Request.Context(), &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Company:  input.Company,
		Role:     models.RoleUser,
	})
	if err != nil {
		slog.Error("User creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败，请稍后重试"})
		return
	}

	h.audit(c, "REGISTER", "User", user.ID, models.JSONMap{"email": user.Email})
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "注册成功",
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"company":   user.Company,
			"createdAt": user.CreatedAt,
		},
	})
}

// LoginHandler verifies credentials and issues a 30-day JWT, both as a
// cookie and in the body for API clients.
func (h *Handler) LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请输入邮箱和密码"})
		return
	}

	user, err := h.Store.FindUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		slog.Error("Login lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败，请稍后重试"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户不存在"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "密码错误"})
		return
	}

	expiresAt := time.Now().Add(sessionValid)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.Cfg.JWTSecret))
	if err != nil {
		slog.Error("Token signing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败，请稍后重试"})
		return
	}

	c.SetCookie("auth_token", tokenStr, int(sessionValid.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tokenStr,
		"user": gin.H{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"company": user.Company,
		},
	})
}

// LogoutHandler clears the session cookie.
func (h *Handler) LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MeHandler returns the identity established by the auth middleware.
func (h *Handler) MeHandler(c *gin.Context) {
	name, _ := c.Get("userName")
	email, _ := c.Get("email")
	company, _ := c.Get("company")
	c.JSON(http.StatusOK, gin.H{
		"id":      currentUserID(c),
		"name":    name,
		"email":   email,
		"company": company,
	})
}
