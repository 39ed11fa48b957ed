package model

import (
	"strings"
	"time"
)

// User is the owner directory read model used to decorate content views.
type User struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	Username  string
	FirstName string
	LastName  string
	Email     string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "user_info"
}

// DisplayName falls back from full name to first name to username to email.
func (u *User) DisplayName() string {
	first := strings.TrimSpace(u.FirstName)
	last := strings.TrimSpace(u.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case strings.TrimSpace(u.Username) != "":
		return u.Username
	default:
		return u.Email
	}
}
