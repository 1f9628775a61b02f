package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a read-only replica of the identity/profile record.
type User struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName      string    `gorm:"not null;default:''" json:"first_name"`
	LastName       string    `gorm:"not null;default:''" json:"last_name"`
	Email          string    `gorm:"not null;default:''" json:"email"`
	Admin          bool      `gorm:"not null;default:false" json:"admin"`
	Banned         bool      `gorm:"not null;default:false" json:"banned"`
	TelegramChatID *int64    `json:"telegram_chat_id,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`

	Friends []UserFriend `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"friends,omitempty"`
	Reports []Report     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"reports,omitempty"`
}

// UserFriend is one edge of a user's friend set. FriendID is not a foreign
// key: the friend may not have been replicated yet.
type UserFriend struct {
	UserID   string `gorm:"type:uuid;primaryKey" json:"user_id"`
	FriendID string `gorm:"type:uuid;primaryKey" json:"friend_id"`
}

func (UserFriend) TableName() string { return "user_friends" }

// Report is a complaint filed against UserID by ReportedByID.
type Report struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ReportedByID string    `gorm:"type:uuid;not null" json:"reported_by_id"`
	Reason       string    `gorm:"not null;default:''" json:"reason"`
	Timestamp    time.Time `gorm:"column:reported_at;not null" json:"timestamp"`
}

func (Report) TableName() string { return "user_reports" }

func (r *Report) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// FriendIDs returns the friend set as a slice.
func (u *User) FriendIDs() []string {
	ids := make([]string, len(u.Friends))
	for i, f := range u.Friends {
		ids[i] = f.FriendID
	}
	return ids
}

func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.ID
	}
	return name
}
