package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/storage"
)

type ProfileHandler struct {
	db     *gorm.DB
	images *storage.ImageStore
}

func NewProfileHandler(db *gorm.DB, images *storage.ImageStore) *ProfileHandler {
	return &ProfileHandler{db: db, images: images}
}

func (h *ProfileHandler) Show(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.UserFrom(c)})
}

// Update accepts multipart form data so the avatar can ride along with the
// profile fields.
func (h *ProfileHandler) Update(c *gin.Context) {
	user := middleware.UserFrom(c)

	updates := map[string]any{}
	if v, ok := c.GetPostForm("first_name"); ok {
		updates["first_name"] = v
	}
	if v, ok := c.GetPostForm("last_name"); ok {
		updates["last_name"] = v
	}
	if v, ok := c.GetPostForm("phone"); ok {
		updates["phone"] = v
	}
	if v, ok := c.GetPostForm("address"); ok {
		updates["address"] = v
	}

	if file, err := c.FormFile("avatar"); err == nil {
		src, err := file.Open()
		if err != nil {
			httperr.Unprocessable(c, "invalid_avatar", "Could not read uploaded avatar.")
			return
		}
		defer src.Close()

		url, err := h.images.Upload(c.Request.Context(), src, "avatars")
		if err != nil {
			httperr.Unprocessable(c, "invalid_avatar", "Avatar must be a valid JPEG, PNG or GIF image.")
			return
		}
		updates["avatar"] = url
	}

	if len(updates) > 0 {
		if err := h.db.Model(user).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_profile", "Could not update profile.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user := middleware.UserFrom(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", "Invalid password payload.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		httperr.Unprocessable(c, "wrong_password", "Current password is incorrect.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not change password.")
		return
	}

	if err := h.db.Model(user).Update("password_hash", string(hashed)).Error; err != nil {
		httperr.Internal(c, "failed_to_update_password", "Could not change password.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed."})
}
