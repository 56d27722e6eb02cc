package handlers

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/config"
	"github.com/glowbook/salon-api/internal/mailer"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/token"
	"github.com/glowbook/salon-api/internal/validators"
)

const verificationCodeTTL = 10 * time.Minute

type AuthHandler struct {
	db     *gorm.DB
	tokens *token.Store
	mail   mailer.Mailer
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, tokens *token.Store, mail mailer.Mailer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, mail: mail, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=100"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=8"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_email_domain"})
		return
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "username_or_email_taken"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		Username:     username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "client",
		IsSuperAdmin: false,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	if err := h.sendCode(&user, models.CodePurposeVerifyEmail); err != nil {
		log.Printf("auth: failed to send verification code to %s: %v", user.Email, err)
	}

	bearer, err := h.tokens.Issue(c.Request.Context(), &user, "api", h.tokenTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":               "Registered. Use the verification code sent to your email.",
		"token":                 bearer,
		"user":                  user,
		"requires_verification": true,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_request"})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_credentials", "message": "Invalid credentials."})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_credentials", "message": "Invalid credentials."})
		return
	}

	// Unverified users still get a token so they can reach the
	// verification endpoints.
	bearer, err := h.tokens.Issue(c.Request.Context(), &user, "api", h.tokenTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":               "Login successful.",
		"token":                 bearer,
		"user":                  user,
		"requires_verification": user.EmailVerifiedAt == nil,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	bearer := c.MustGet(middleware.ContextToken).(string)

	if err := h.tokens.Revoke(c.Request.Context(), bearer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Same response whether or not the account exists.
	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err == nil {
		if err := h.sendCode(&user, models.CodePurposeResetPassword); err != nil {
			log.Printf("auth: failed to send reset code to %s: %v", email, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset code has been sent."})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_code", "message": "Invalid or expired code."})
		return
	}

	if !consumeCode(h.db, user.ID, models.CodePurposeResetPassword, req.Code) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_code", "message": "Invalid or expired code."})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	h.db.Model(&user).Update("password_hash", string(hashed))

	// Log the user out everywhere.
	if err := h.tokens.RevokeAllForUser(c.Request.Context(), user.ID); err != nil {
		log.Printf("auth: failed to revoke tokens for user %d: %v", user.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset. Please login again."})
}

// --------- Code helpers ---------

func (h *AuthHandler) tokenTTL() time.Duration {
	return time.Duration(h.config.TokenTTLHours) * time.Hour
}

func (h *AuthHandler) sendCode(user *models.User, purpose string) error {
	code, err := issueCode(h.db, user.ID, purpose)
	if err != nil {
		return err
	}

	if purpose == models.CodePurposeResetPassword {
		return h.mail.SendPasswordResetCode(user.Email, code)
	}
	return h.mail.SendVerificationCode(user.Email, code)
}

// issueCode replaces any outstanding code of the same purpose with a fresh
// 6-digit one.
func issueCode(db *gorm.DB, userID uint, purpose string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	db.Where("user_id = ? AND purpose = ?", userID, purpose).
		Delete(&models.EmailVerificationCode{})

	rec := models.EmailVerificationCode{
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(verificationCodeTTL),
	}
	if err := db.Create(&rec).Error; err != nil {
		return "", err
	}

	return code, nil
}

// consumeCode validates and burns a code. A code is single use.
func consumeCode(db *gorm.DB, userID uint, purpose, code string) bool {
	var rec models.EmailVerificationCode
	err := db.Where(
		"user_id = ? AND purpose = ? AND code = ? AND expires_at > ?",
		userID, purpose, code, time.Now(),
	).First(&rec).Error
	if err != nil {
		return false
	}

	db.Delete(&rec)
	return true
}
