package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBanned   = "banned"
)

type User struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"size:255;not null" json:"-"`
	Nickname       string     `gorm:"size:100" json:"nickname"`
	Gender         string     `gorm:"size:10;default:other" json:"gender"` // male, female, other
	Birth          *time.Time `gorm:"type:date" json:"birth,omitempty"`
	Country        string     `gorm:"size:100;default:中国" json:"country"`
	Province       string     `gorm:"size:100;default:广东" json:"province"`
	City           string     `gorm:"size:100;default:广州" json:"city"`
	Role           string     `gorm:"size:10;default:user;index" json:"role"`
	Status         string     `gorm:"size:10;default:active" json:"status"`
	AvatarURL      string     `gorm:"size:255" json:"avatar_url"`
	Description    string     `gorm:"type:text" json:"description"`
	BackgroundURL  string     `gorm:"size:255" json:"background_url"`
	FollowersCount int        `gorm:"default:0" json:"followers_count"`
	FollowCount    int        `gorm:"default:0" json:"follow_count"`
	LikeCount      int        `gorm:"default:0" json:"like_count"`
	FavoriteCount  int        `gorm:"default:0" json:"favorite_count"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Follow 关注关系
type Follow struct {
	FollowerID int64     `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowedID int64     `gorm:"primaryKey;autoIncrement:false;index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "user_followers"
}
