package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	CourseCode        string `gorm:"column:course_code;size:50;not null" json:"course_code"`
	CourseName        string `gorm:"column:course_name;size:255;not null" json:"course_name"`
	CourseDescription string `gorm:"column:course_description;type:text" json:"course_description"`
	ReviewPostsAmount int    `gorm:"column:review_posts_amount;default:0" json:"review_posts_amount"`
	UserID            uint   `gorm:"column:user_id;not null" json:"user_id"`
	User              *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
