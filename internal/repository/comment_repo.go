package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
)

// CommentScope 评论删除范围：post_id = X 或 parent_id = X
type CommentScope struct {
	column string
	value  int64
}

// PostScope 某帖子下的全部评论
func PostScope(postID int64) CommentScope {
	return CommentScope{column: "post_id", value: postID}
}

// ParentScope 某评论的直接回复
func ParentScope(commentID int64) CommentScope {
	return CommentScope{column: "parent_id", value: commentID}
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *CommentRepository) WithTx(tx *gorm.DB) *CommentRepository {
	return &CommentRepository{db: tx}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByIDWithUser 获取评论及用户信息
func (r *CommentRepository) GetByIDWithUser(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("User").Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPostID 获取帖子下的全部评论（含各层回复），按创建时间升序
func (r *CommentRepository) ListByPostID(postID int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// ListByPostIDs 批量获取多个帖子的评论
func (r *CommentRepository) ListByPostIDs(postIDs []int64) ([]*model.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var comments []*model.Comment
	err := r.db.Preload("User").
		Where("post_id IN ?", postIDs).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// ListReplies 获取直接回复
func (r *CommentRepository) ListReplies(parentID int64) ([]*model.Comment, error) {
	var replies []*model.Comment
	err := r.db.Preload("User").
		Where("parent_id = ?", parentID).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	return replies, err
}

// CountByPostID 获取帖子的评论数
func (r *CommentRepository) CountByPostID(postID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// DeleteScope 深度优先删除范围内的评论及其全部回复，返回删除的行数。
// 调用方负责提供事务。
func (r *CommentRepository) DeleteScope(scope CommentScope) (int64, error) {
	var ids []int64
	err := r.db.Model(&model.Comment{}).
		Where(scope.column+" = ?", scope.value).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}

	var total int64
	for _, id := range ids {
		n, err := r.deleteNode(id)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DeleteTree 删除单条评论及其全部回复
func (r *CommentRepository) DeleteTree(id int64) (int64, error) {
	return r.deleteNode(id)
}

func (r *CommentRepository) deleteNode(id int64) (int64, error) {
	removed, err := r.DeleteScope(ParentScope(id))
	if err != nil {
		return removed, err
	}

	result := r.db.Where("id = ?", id).Delete(&model.Comment{})
	if result.Error != nil {
		return removed, result.Error
	}
	return removed + result.RowsAffected, nil
}
