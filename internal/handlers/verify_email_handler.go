package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/mailer"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
)

type VerifyEmailHandler struct {
	db   *gorm.DB
	mail mailer.Mailer
}

func NewVerifyEmailHandler(db *gorm.DB, mail mailer.Mailer) *VerifyEmailHandler {
	return &VerifyEmailHandler{db: db, mail: mail}
}

type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

func (h *VerifyEmailHandler) Verify(c *gin.Context) {
	user := middleware.UserFrom(c)

	if user.EmailVerifiedAt != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Email already verified."})
		return
	}

	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_request"})
		return
	}

	if !consumeCode(h.db, user.ID, models.CodePurposeVerifyEmail, req.Code) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_code", "message": "Invalid or expired code."})
		return
	}

	now := time.Now()
	h.db.Model(user).Update("email_verified_at", now)

	c.JSON(http.StatusOK, gin.H{"message": "Email verified."})
}

func (h *VerifyEmailHandler) Resend(c *gin.Context) {
	user := middleware.UserFrom(c)

	if user.EmailVerifiedAt != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Email already verified."})
		return
	}

	code, err := issueCode(h.db, user.ID, models.CodePurposeVerifyEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_issue_code"})
		return
	}

	if err := h.mail.SendVerificationCode(user.Email, code); err != nil {
		log.Printf("verify: failed to send code to %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_send_code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent."})
}
