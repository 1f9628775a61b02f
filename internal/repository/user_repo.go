package repository

import (
	"context"
	"strings"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	Search(ctx context.Context, prefix, excludeID string, limit int) ([]models.User, error)
	FindSocial(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var users []models.User
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", valid).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Search matches a case-insensitive prefix of first or last name.
func (r *userRepository) Search(ctx context.Context, prefix, excludeID string, limit int) ([]models.User, error) {
	pattern := escapeLike(strings.ToLower(prefix)) + "%"

	q := r.db.WithContext(ctx).
		Where("lower(first_name) LIKE ? OR lower(last_name) LIKE ?", pattern, pattern)
	if validID(excludeID) {
		q = q.Where("id <> ?", excludeID)
	}

	var users []models.User
	if err := q.Order("last_name ASC, first_name ASC, id ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Upsert inserts or refreshes the replica row (same ID from the identity
// service) and replaces its friend set and reports.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "email", "admin", "banned", "telegram_chat_id", "updated_at"}),
		}).Create(user).Error
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserFriend{}).Error; err != nil {
			return err
		}
		friends := make([]models.UserFriend, 0, len(user.Friends))
		for _, f := range user.Friends {
			if validID(f.FriendID) && f.FriendID != user.ID {
				friends = append(friends, models.UserFriend{UserID: user.ID, FriendID: f.FriendID})
			}
		}
		if len(friends) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&friends).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Report{}).Error; err != nil {
			return err
		}
		reports := make([]models.Report, 0, len(user.Reports))
		for _, rep := range user.Reports {
			if !validID(rep.ReportedByID) {
				continue
			}
			rep.ID = ""
			rep.UserID = user.ID
			reports = append(reports, rep)
		}
		if len(reports) > 0 {
			if err := tx.Create(&reports).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindSocial loads a user with its friend set and reports.
func (r *userRepository) FindSocial(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Friends", func(db *gorm.DB) *gorm.DB { return db.Order("friend_id ASC") }).
		Preload("Reports", func(db *gorm.DB) *gorm.DB { return db.Order("reported_at ASC") }).
		Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
