package models

import "gorm.io/gorm"

type Event struct {
	gorm.Model
	EventTitle       string `gorm:"column:event_title;size:255;not null" json:"event_title"`
	EventDescription string `gorm:"column:event_description;type:text" json:"event_description"`
	EventDate        string `gorm:"column:event_date;size:100" json:"event_date"`
	LikesAmount      int    `gorm:"column:likes_amount;default:0" json:"likes_amount"`
	AuthorName       string `gorm:"column:author_name;size:255" json:"author_name"`
	UserID           uint   `gorm:"column:user_id;not null" json:"user_id"`
	User             *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
