package model

import (
	"time"
)

type Post struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Images    string    `gorm:"type:text" json:"images"`
	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

type PostLike struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_post_like_user_post" json:"user_id"`
	PostID    int64     `gorm:"not null;uniqueIndex:idx_post_like_user_post;index" json:"post_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
