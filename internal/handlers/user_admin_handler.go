package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/identity"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
)

// UserAdminHandler is the admin-side user management surface. Super admins
// are protected: only a super admin can create other admins or touch one.
type UserAdminHandler struct {
	db *gorm.DB
}

func NewUserAdminHandler(db *gorm.DB) *UserAdminHandler {
	return &UserAdminHandler{db: db}
}

type AdminCreateUserRequest struct {
	Username  string `json:"username" binding:"required,max=100"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required"`
	Phone     string `json:"phone"`
}

type AdminUpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

func (h *UserAdminHandler) List(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	role := c.Query("role")

	q := h.db.Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			like, like, like, like,
		)
	}

	var users []models.User
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	httpresp.Items(c, users)
}

func (h *UserAdminHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", "Invalid user payload.")
		return
	}

	role, ok := identity.ParseRole(req.Role)
	if !ok {
		httperr.Unprocessable(c, "invalid_role", "Role must be admin, aesthetician or client.")
		return
	}
	if role == identity.RoleAdmin && !actor.IsSuper() {
		httperr.Forbidden(c, "super_admin_only", "Only a super admin can create admins.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, email).
		Count(&count)
	if count > 0 {
		httperr.Unprocessable(c, "username_or_email_taken", "Username or email is already in use.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create user.")
		return
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         string(role),
		Phone:        req.Phone,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create user.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *UserAdminHandler) Show(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserAdminHandler) Update(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if user.IsSuperAdmin && !actor.IsSuper() {
		httperr.Forbidden(c, "super_admin_only", "Only a super admin can modify a super admin.")
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", "Invalid user payload.")
		return
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Role != nil {
		role, ok := identity.ParseRole(*req.Role)
		if !ok {
			httperr.Unprocessable(c, "invalid_role", "Role must be admin, aesthetician or client.")
			return
		}
		if role == identity.RoleAdmin && !actor.IsSuper() {
			httperr.Forbidden(c, "super_admin_only", "Only a super admin can grant the admin role.")
			return
		}
		updates["role"] = string(role)
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_user", "Could not update user.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserAdminHandler) Delete(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if user.ID == actor.ID {
		httperr.Unprocessable(c, "cannot_delete_self", "You cannot delete your own account.")
		return
	}
	if user.IsSuperAdmin {
		httperr.Forbidden(c, "super_admin_only", "Super admin accounts cannot be deleted.")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_user", "Could not delete user.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}
