package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username              string    `gorm:"column:username;size:255;not null;uniqueIndex" json:"username"`
	Email                 string    `gorm:"column:email;size:255;not null" json:"email"`
	FirstName             string    `gorm:"column:first_name;size:255;not null" json:"first_name"`
	LastName              string    `gorm:"column:last_name;size:255;not null" json:"last_name"`
	PasswordHash          string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Refresh               string    `gorm:"column:refresh_token;size:255" json:"-"`
	RefreshTokenExpiredAt time.Time `gorm:"column:refresh_token_expired_at" json:"-"`
}

// AuthorName is the display name snapshotted onto review posts, comments
// and events at creation time.
func (u *User) AuthorName() string {
	return u.FirstName + " " + u.LastName
}
