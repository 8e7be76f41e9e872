package dto

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	Content string   `json:"content" binding:"max=5000"`
	Images  []string `json:"images"`
}

// CreatePostResponse 发帖响应
type CreatePostResponse struct {
	ID int64 `json:"id"`
}

// PostLikeItem 帖子点赞
type PostLikeItem struct {
	UserID    int64      `json:"user_id"`
	User      *UserBrief `json:"user,omitempty"`
	CreatedAt string     `json:"created_at"`
}

// PostItem 帖子详情
type PostItem struct {
	ID        int64           `json:"id"`
	Content   string          `json:"content"`
	Images    []string        `json:"images"`
	Views     int             `json:"views"`
	User      *UserBrief      `json:"user,omitempty"`
	Likes     []*PostLikeItem `json:"likes"`
	LikeCount int             `json:"like_count"`
	Comments  []*CommentItem  `json:"comments"`
	Topics    []*TopicBrief   `json:"topics"`
	CreatedAt string          `json:"created_at"`
}

// PostLikeResponse 点赞切换结果
type PostLikeResponse struct {
	Liked bool `json:"liked"`
}
