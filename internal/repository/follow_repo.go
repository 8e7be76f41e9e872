package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) WithTx(tx *gorm.DB) *FollowRepository {
	return &FollowRepository{db: tx}
}

func (r *FollowRepository) Create(followerID, followedID int64) error {
	return r.db.Create(&model.Follow{FollowerID: followerID, FollowedID: followedID}).Error
}

// Delete 返回是否删除了记录
func (r *FollowRepository) Delete(followerID, followedID int64) (bool, error) {
	result := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{})
	return result.RowsAffected > 0, result.Error
}

func (r *FollowRepository) Exists(followerID, followedID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// CountFollowers 粉丝数
func (r *FollowRepository) CountFollowers(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowing 关注数
func (r *FollowRepository) CountFollowing(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
