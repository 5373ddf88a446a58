package models

import "gorm.io/gorm"

// ReviewPost belongs to a Course by foreign key; course_code and course_name
// are copied from the course when the post is created and are not kept in
// sync with later course edits.
type ReviewPost struct {
	gorm.Model
	ReviewPostTitle string    `gorm:"column:review_post_title;size:255;not null" json:"review_post_title"`
	ReviewPostText  string    `gorm:"column:review_post_text;type:text;not null" json:"review_post_text"`
	AuthorName      string    `gorm:"column:author_name;size:255" json:"author_name"`
	LikesAmount     int       `gorm:"column:likes_amount;default:0" json:"likes_amount"`
	CommentsAmount  int       `gorm:"column:comments_amount;default:0" json:"comments_amount"`
	CourseID        uint      `gorm:"column:course_id;not null" json:"course_id"`
	CourseCode      string    `gorm:"column:course_code;size:50" json:"course_code"`
	CourseName      string    `gorm:"column:course_name;size:255" json:"course_name"`
	UserID          uint      `gorm:"column:user_id;not null" json:"user_id"`
	User            *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments        []Comment `gorm:"foreignKey:ReviewPostID" json:"comments,omitempty"`
}
