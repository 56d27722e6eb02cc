package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/storage"
)

type ServiceHandler struct {
	db     *gorm.DB
	images *storage.ImageStore
}

func NewServiceHandler(db *gorm.DB, images *storage.ImageStore) *ServiceHandler {
	return &ServiceHandler{db: db, images: images}
}

// ======================================================
// PUBLIC (any verified role)
// ======================================================

func (h *ServiceHandler) PublicList(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))

	q := h.db.Where("is_active = ?", true)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.Items(c, services)
}

func (h *ServiceHandler) Show(c *gin.Context) {
	var svc models.Service
	if err := h.db.First(&svc, c.Param("id")).Error; err != nil || !svc.IsActive {
		httperr.NotFound(c, "service_not_found", "Service not available.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": svc})
}

// ======================================================
// ADMIN
// ======================================================

func (h *ServiceHandler) AdminList(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	status := c.DefaultQuery("status", "all") // active | inactive | all

	q := h.db.Model(&models.Service{})
	switch status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.Items(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	svc := models.Service{
		IsActive:  true,
		CreatedBy: middleware.ActorFrom(c).ID,
	}

	if !h.bindServiceForm(c, &svc) {
		return
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": svc})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var svc models.Service
	if err := h.db.First(&svc, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if !h.bindServiceForm(c, &svc) {
		return
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": svc})
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	var svc models.Service
	if err := h.db.First(&svc, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if err := h.db.Delete(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete service.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted."})
}

// bindServiceForm applies the multipart form fields onto svc, uploading a
// new image when one is attached. Reports false after writing an error
// response.
func (h *ServiceHandler) bindServiceForm(c *gin.Context, svc *models.Service) bool {
	if v, ok := c.GetPostForm("name"); ok {
		svc.Name = strings.TrimSpace(v)
	}
	if v, ok := c.GetPostForm("description"); ok {
		svc.Description = v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			httperr.Unprocessable(c, "invalid_price", "Price must be a non-negative number.")
			return false
		}
		svc.Price = price
	}
	if v, ok := c.GetPostForm("duration_minutes"); ok {
		mins, err := strconv.Atoi(v)
		if err != nil || mins < 1 || mins > 600 {
			httperr.Unprocessable(c, "invalid_duration", "Duration must be between 1 and 600 minutes.")
			return false
		}
		svc.DurationMinutes = mins
	}
	if v, ok := c.GetPostForm("is_active"); ok {
		svc.IsActive = v == "true" || v == "1"
	}

	if svc.Name == "" {
		httperr.Unprocessable(c, "invalid_name", "Service name is required.")
		return false
	}
	if svc.DurationMinutes == 0 {
		httperr.Unprocessable(c, "invalid_duration", "Duration is required.")
		return false
	}

	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			httperr.Unprocessable(c, "invalid_image", "Could not read uploaded image.")
			return false
		}
		defer src.Close()

		url, err := h.images.Upload(c.Request.Context(), src, "services")
		if err != nil {
			httperr.Unprocessable(c, "invalid_image", "Image must be a valid JPEG, PNG or GIF file.")
			return false
		}
		svc.Image = url
	}

	return true
}
