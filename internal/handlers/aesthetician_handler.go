package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/dto"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/identity"
	"github.com/glowbook/salon-api/internal/models"
)

// AestheticianHandler feeds the booking UI: every verified user may list the
// staff members available for assignment.
type AestheticianHandler struct {
	db *gorm.DB
}

func NewAestheticianHandler(db *gorm.DB) *AestheticianHandler {
	return &AestheticianHandler{db: db}
}

func (h *AestheticianHandler) List(c *gin.Context) {
	var items []dto.AestheticianDTO
	if err := h.db.Model(&models.User{}).
		Select("id", "first_name", "last_name", "email").
		Where("role = ?", string(identity.RoleAesthetician)).
		Order("id ASC").
		Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_aestheticians", "Could not list aestheticians.")
		return
	}

	httpresp.Items(c, items)
}
