package dto

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	Content  string `json:"content" binding:"max=2000"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// CommentItem 评论项
type CommentItem struct {
	ID        int64          `json:"id"`
	PostID    int64          `json:"post_id"`
	ParentID  *int64         `json:"parent_id"`
	Content   string         `json:"content"`
	User      *UserBrief     `json:"user"`
	Replies   []*CommentItem `json:"replies"`
	CreatedAt string         `json:"created_at"`
}

// DeleteCommentResponse 删除评论响应
type DeleteCommentResponse struct {
	Deleted int64 `json:"deleted"`
}
