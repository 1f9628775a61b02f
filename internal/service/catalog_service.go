package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/repository"
	"gorm.io/gorm"
)

type CatalogService interface {
	List(ctx context.Context, kind models.ResourceKind) ([]models.Resource, error)
	Create(ctx context.Context, kind models.ResourceKind, name string) (*models.Resource, error)
	Get(ctx context.Context, id string) (*models.Resource, error)
	Rename(ctx context.Context, id, name string) (*models.Resource, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	repo repository.ResourceRepository
}

func NewCatalogService(repo repository.ResourceRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) List(ctx context.Context, kind models.ResourceKind) ([]models.Resource, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
	resources, err := s.repo.FindByKind(ctx, kind)
	if err != nil {
		return nil, storeError(err)
	}
	return resources, nil
}

// Create is admin-only; the caller enforces that.
func (s *catalogService) Create(ctx context.Context, kind models.ResourceKind, name string) (*models.Resource, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	resource := &models.Resource{Kind: kind, Name: name}
	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, storeError(fmt.Errorf("create resource: %w", err))
	}
	return resource, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*models.Resource, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, resourceError(id, err)
	}
	return resource, nil
}

func (s *catalogService) Rename(ctx context.Context, id, name string) (*models.Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.repo.Rename(ctx, id, name); err != nil {
		return nil, resourceError(id, err)
	}
	return s.Get(ctx, id)
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return resourceError(id, err)
	}
	return nil
}

func resourceError(id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("resource %s: %w", id, ErrNotFound)
	}
	return storeError(err)
}
