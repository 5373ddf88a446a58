package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	CommentText   string `gorm:"column:comment_text;type:text;not null" json:"comment_text"`
	CommentAuthor string `gorm:"column:comment_author;size:255" json:"comment_author"`
	LikesAmount   int    `gorm:"column:likes_amount;default:0" json:"likes_amount"`
	ReviewPostID  uint   `gorm:"column:review_post_id;not null" json:"review_post_id"`
	UserID        uint   `gorm:"column:user_id;not null" json:"user_id"`
	User          *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
