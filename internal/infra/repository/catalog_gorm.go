package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/booking"
	"github.com/glowbook/salon-api/internal/models"
)

// CatalogGormRepository answers the referential checks the booking core
// consumes: does this service exist and take bookings, does this user carry
// a given role.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ServiceIsActive(
	ctx context.Context,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ? AND is_active = ?", serviceID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CatalogGormRepository) UserHasRole(
	ctx context.Context,
	userID uint,
	role string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", userID, role).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ domain.Catalog = (*CatalogGormRepository)(nil)
