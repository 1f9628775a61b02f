package repository

import (
	"context"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"gorm.io/gorm"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	FindByID(ctx context.Context, id string) (*models.Resource, error)
	FindByKind(ctx context.Context, kind models.ResourceKind) ([]models.Resource, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	return r.db.WithContext(ctx).Omit("Slots").Create(resource).Error
}

func (r *resourceRepository) FindByID(ctx context.Context, id string) (*models.Resource, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var resource models.Resource
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// FindByKind returns resources in insertion order.
func (r *resourceRepository) FindByKind(ctx context.Context, kind models.ResourceKind) ([]models.Resource, error) {
	var resources []models.Resource
	if err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("created_at ASC, id ASC").
		Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) Rename(ctx context.Context, id, name string) error {
	if !validID(id) {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&models.Resource{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the resource; slots and their reservations go with it via ON DELETE CASCADE.
func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Resource{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
