package model

import (
	"time"
)

type Topic struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ViewCount   int       `gorm:"default:0;index" json:"view_count"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Topic) TableName() string {
	return "topics"
}

// PostTopic 帖子与话题的绑定
type PostTopic struct {
	PostID  int64 `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	TopicID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"topic_id"`

	Topic *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
}

func (PostTopic) TableName() string {
	return "post_topics"
}
