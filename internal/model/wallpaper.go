package model

import (
	"time"
)

// 壁纸审核状态
const (
	WallpaperStatusPending  = "pending"
	WallpaperStatusApproved = "approved"
	WallpaperStatusRejected = "rejected"
)

type Wallpaper struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null;index" json:"name"`
	URL           string    `gorm:"size:255;not null;uniqueIndex" json:"url"`
	ThumbnailURL  string    `gorm:"size:255" json:"thumbnail_url,omitempty"`
	Alt           string    `gorm:"size:255" json:"alt"`
	Type          string    `gorm:"size:50;not null" json:"type"`
	FileSize      int64     `gorm:"not null" json:"file_size"`
	Dimensions    string    `gorm:"size:50;not null" json:"dimensions"`
	CreatedBy     int64     `gorm:"not null;index" json:"created_by"`
	DownloadCount int       `gorm:"default:0" json:"download_count"`
	LikeCount     int       `gorm:"default:0" json:"like_count"`
	FavoriteCount int       `gorm:"default:0" json:"favorite_count"`
	Status        string    `gorm:"size:20;default:pending;index" json:"status"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 关联
	Author *User  `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
	Tags   []*Tag `gorm:"many2many:wallpaper_tags" json:"tags,omitempty"`
}

func (Wallpaper) TableName() string {
	return "wallpapers"
}

// HeatValue 热度 = 下载*3 + 喜欢*2 + 收藏
func (w *Wallpaper) HeatValue() int {
	return w.DownloadCount*3 + w.LikeCount*2 + w.FavoriteCount
}

type Tag struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}

// WallpaperLike 用户喜欢的壁纸
type WallpaperLike struct {
	UserID      int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	WallpaperID int64     `gorm:"primaryKey;autoIncrement:false;index" json:"wallpaper_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (WallpaperLike) TableName() string {
	return "user_favorite_wallpapers"
}

// WallpaperCollect 用户收藏的壁纸
type WallpaperCollect struct {
	UserID      int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	WallpaperID int64     `gorm:"primaryKey;autoIncrement:false;index" json:"wallpaper_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (WallpaperCollect) TableName() string {
	return "user_collect_wallpapers"
}
