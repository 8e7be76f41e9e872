package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
)

// UserPostCount 用户发帖数统计
type UserPostCount struct {
	UserID    int64
	PostCount int64
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) WithTx(tx *gorm.DB) *PostRepository {
	return &PostRepository{db: tx}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) GetByID(id int64) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Exists 检查帖子是否存在
func (r *PostRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListWithUser 获取全部帖子（新的在前）
func (r *PostRepository) ListWithUser() ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Preload("User").Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, err
}

// ListByIDsWithUser 获取指定帖子（新的在前）
func (r *PostRepository) ListByIDsWithUser(ids []int64) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	var posts []*model.Post
	err := r.db.Preload("User").
		Where("id IN ?", ids).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// IncrementViews 浏览数 +1，返回是否命中
func (r *PostRepository) IncrementViews(id int64) (bool, error) {
	result := r.db.Model(&model.Post{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))
	return result.RowsAffected > 0, result.Error
}

func (r *PostRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.Post{}).Error
}

func (r *PostRepository) CountByUserID(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// TopPosters 按发帖数倒序取前 limit 个用户
func (r *PostRepository) TopPosters(limit int) ([]UserPostCount, error) {
	var rows []UserPostCount
	err := r.db.Model(&model.Post{}).
		Select("user_id, COUNT(*) AS post_count").
		Group("user_id").
		Order("post_count DESC, user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// LikeExists 检查是否已点赞
func (r *PostRepository) LikeExists(userID, postID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostRepository) CreateLike(userID, postID int64) error {
	return r.db.Create(&model.PostLike{UserID: userID, PostID: postID}).Error
}

func (r *PostRepository) DeleteLike(userID, postID int64) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.PostLike{}).Error
}

// DeleteLikesByPost 删除帖子的全部点赞
func (r *PostRepository) DeleteLikesByPost(postID int64) error {
	return r.db.Where("post_id = ?", postID).Delete(&model.PostLike{}).Error
}

// ListLikesByPostIDs 批量获取点赞（含用户）
func (r *PostRepository) ListLikesByPostIDs(postIDs []int64) ([]*model.PostLike, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likes []*model.PostLike
	err := r.db.Preload("User").
		Where("post_id IN ?", postIDs).
		Order("created_at ASC, id ASC").
		Find(&likes).Error
	return likes, err
}
