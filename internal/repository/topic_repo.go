package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
)

// TopicPostCount 话题参与数
type TopicPostCount struct {
	TopicID   int64
	PostCount int64
}

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

func (r *TopicRepository) WithTx(tx *gorm.DB) *TopicRepository {
	return &TopicRepository{db: tx}
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.db.Create(topic).Error
}

func (r *TopicRepository) GetByID(id int64) (*model.Topic, error) {
	var topic model.Topic
	if err := r.db.Where("id = ?", id).First(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Topic{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *TopicRepository) List() ([]*model.Topic, error) {
	var topics []*model.Topic
	err := r.db.Order("id ASC").Find(&topics).Error
	return topics, err
}

// ListHot 按浏览数倒序
func (r *TopicRepository) ListHot(limit int) ([]*model.Topic, error) {
	var topics []*model.Topic
	err := r.db.Order("view_count DESC, id ASC").Limit(limit).Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.Topic{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// CountPosts 各话题绑定的帖子数
func (r *TopicRepository) CountPosts() (map[int64]int64, error) {
	var rows []TopicPostCount
	err := r.db.Model(&model.PostTopic{}).
		Select("topic_id, COUNT(*) AS post_count").
		Group("topic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.TopicID] = row.PostCount
	}
	return counts, nil
}

func (r *TopicRepository) BindingExists(postID, topicID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostTopic{}).
		Where("post_id = ? AND topic_id = ?", postID, topicID).
		Count(&count).Error
	return count > 0, err
}

func (r *TopicRepository) Bind(postID, topicID int64) error {
	return r.db.Create(&model.PostTopic{PostID: postID, TopicID: topicID}).Error
}

// DeleteBindingsByPost 删除帖子的全部话题绑定
func (r *TopicRepository) DeleteBindingsByPost(postID int64) error {
	return r.db.Where("post_id = ?", postID).Delete(&model.PostTopic{}).Error
}

// ListBindingsByPostIDs 批量获取帖子绑定的话题
func (r *TopicRepository) ListBindingsByPostIDs(postIDs []int64) ([]*model.PostTopic, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var bindings []*model.PostTopic
	err := r.db.Preload("Topic").Where("post_id IN ?", postIDs).Find(&bindings).Error
	return bindings, err
}

// PostIDsByTopic 话题下的帖子 ID
func (r *TopicRepository) PostIDsByTopic(topicID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.PostTopic{}).Where("topic_id = ?", topicID).Pluck("post_id", &ids).Error
	return ids, err
}
