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

const searchLimit = 20

// UserService reads the local replica of the profile store.
type UserService interface {
	Resolve(ctx context.Context, id string) (*models.User, error)
	Search(ctx context.Context, query, callerID string) ([]models.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Resolve(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, storeError(err)
	}
	return user, nil
}

// Search returns users whose first or last name starts with query. An empty
// query returns nothing.
func (s *userService) Search(ctx context.Context, query, callerID string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}
	users, err := s.repo.Search(ctx, query, callerID, searchLimit)
	if err != nil {
		return nil, storeError(err)
	}
	return users, nil
}
