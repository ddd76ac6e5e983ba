package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/nejmigmc-soft/landmarkweb/config"
	"github.com/nejmigmc-soft/landmarkweb/middleware"
	"github.com/nejmigmc-soft/landmarkweb/models"
	"github.com/nejmigmc-soft/landmarkweb/utils"
)

type AuthController struct {
	db  *gorm.DB
	rdb *redis.Client
	cfg *config.Config
}

func NewAuthController(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *AuthController {
	return &AuthController{db: db, rdb: rdb, cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Phone    *string `json:"phone"`
}

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// POST /auth/login
// Sets the session token as an httpOnly cookie; the SPA never reads it.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if user.PasswordHash != HashPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, ac.cfg.JWTSecret)
	if err != nil {
		utils.LogError(err, "jwt sign")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, int(utils.TokenTTL.Seconds()), "/", "", secureCookies(), true)

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Giriş başarılı",
	})
}

// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: HashPassword(req.Password),
		Phone:        req.Phone,
		Role:         models.RoleAgent,
	}
	if err := ac.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		utils.LogError(err, "user register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GET /auth/me (JWT)
func (ac *AuthController) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /auth/logout (JWT)
// Blacklists the presented token for its remaining lifetime and clears
// the cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token != "" && ac.rdb != nil {
		ttl := utils.TokenTTL
		if claims, err := utils.ParseJWT(token, ac.cfg.JWTSecret); err == nil {
			if exp, ok := claims["exp"].(float64); ok {
				if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
					ttl = remaining
				}
			}
		}
		ac.rdb.Set(c.Request.Context(), "blacklist:"+token, 1, ttl)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", "", -1, "/", "", secureCookies(), true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// secureCookies: Secure flag on in release mode, off for local http dev.
func secureCookies() bool {
	return gin.Mode() == gin.ReleaseMode
}
