package dto

// CreateTopicRequest 创建话题请求
type CreateTopicRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// BindTopicRequest 帖子绑定话题
type BindTopicRequest struct {
	PostID  int64 `json:"post_id" binding:"required"`
	TopicID int64 `json:"topic_id" binding:"required"`
}

// TopicBrief 帖子上的话题
type TopicBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TopicItem 话题信息
type TopicItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ViewCount   int    `json:"view_count"`
	JoinCount   int64  `json:"join_count"`
	CreatedAt   string `json:"created_at"`
}
