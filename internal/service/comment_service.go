package service

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/repository"
)

var (
	ErrEmptyContent      = errors.New("评论内容不能为空")
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrCommentPermission = errors.New("无权删除此评论")
	ErrParentNotFound    = errors.New("父评论不存在")
	ErrParentNotInPost   = errors.New("父评论不属于该帖子")
)

type CommentService struct {
	db          *gorm.DB
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
}

func NewCommentService(
	db *gorm.DB,
	commentRepo *repository.CommentRepository,
	postRepo *repository.PostRepository,
) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Create 发表评论或回复
func (s *CommentService) Create(authorID, postID int64, req *dto.CreateCommentRequest) (*dto.CommentItem, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	exists, err := s.postRepo.Exists(postID)
	if err != nil {
		return nil, fmt.Errorf("check post %d: %w", postID, err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("load parent comment %d: %w", *req.ParentID, err)
		}
		if parent.PostID != postID {
			return nil, ErrParentNotInPost
		}
	}

	comment := &model.Comment{
		UserID:   authorID,
		PostID:   postID,
		ParentID: req.ParentID,
		Content:  content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	created, err := s.commentRepo.GetByIDWithUser(comment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload comment %d: %w", comment.ID, err)
	}
	return toCommentItem(created), nil
}

// ListByPost 获取帖子的全部评论，每条只附带直接回复
func (s *CommentService) ListByPost(postID int64) ([]*dto.CommentItem, error) {
	exists, err := s.postRepo.Exists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPostID(postID)
	if err != nil {
		return nil, err
	}
	return withDirectReplies(comments), nil
}

// ListByPosts 批量获取多个帖子的评论列表，结构同 ListByPost
func (s *CommentService) ListByPosts(postIDs []int64) (map[int64][]*dto.CommentItem, error) {
	comments, err := s.commentRepo.ListByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}

	byPost := make(map[int64][]*model.Comment)
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}

	result := make(map[int64][]*dto.CommentItem, len(byPost))
	for postID, list := range byPost {
		result[postID] = withDirectReplies(list)
	}
	return result, nil
}

// GetTree 获取单条评论及其全部层级的回复
func (s *CommentService) GetTree(commentID int64) (*dto.CommentItem, error) {
	root, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	// 一次取出整帖评论，在内存中组装
	comments, err := s.commentRepo.ListByPostID(root.PostID)
	if err != nil {
		return nil, err
	}

	children := make(map[int64][]*model.Comment)
	var self *model.Comment
	for _, c := range comments {
		if c.ID == commentID {
			self = c
		}
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}
	if self == nil {
		return nil, ErrCommentNotFound
	}

	return buildTree(self, children, map[int64]bool{}), nil
}

func buildTree(c *model.Comment, children map[int64][]*model.Comment, seen map[int64]bool) *dto.CommentItem {
	item := toCommentItem(c)
	seen[c.ID] = true
	for _, child := range children[c.ID] {
		if seen[child.ID] {
			continue
		}
		item.Replies = append(item.Replies, buildTree(child, children, seen))
	}
	return item
}

// withDirectReplies 每条评论附带直接回复，回复本身不再展开
func withDirectReplies(comments []*model.Comment) []*dto.CommentItem {
	replies := make(map[int64][]*model.Comment)
	for _, c := range comments {
		if c.ParentID != nil {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		}
	}

	items := make([]*dto.CommentItem, len(comments))
	for i, c := range comments {
		items[i] = toCommentItem(c)
		for _, r := range replies[c.ID] {
			items[i].Replies = append(items[i].Replies, toCommentItem(r))
		}
	}
	return items
}

// Delete 删除评论及其所有回复，评论作者或帖子作者可操作，返回删除条数
func (s *CommentService) Delete(userID, commentID int64) (int64, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCommentNotFound
		}
		return 0, err
	}

	if comment.UserID != userID {
		post, err := s.postRepo.GetByID(comment.PostID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		if post == nil || post.UserID != userID {
			return 0, ErrCommentPermission
		}
	}

	var removed int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		n, err := s.commentRepo.WithTx(tx).DeleteTree(commentID)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete comment %d: %w", commentID, err)
	}

	log.Debugf("[comment] user %d removed comment %d (%d rows)", userID, commentID, removed)
	return removed, nil
}

// PurgePost 在调用方事务中删除帖子下的全部评论
func (s *CommentService) PurgePost(tx *gorm.DB, postID int64) (int64, error) {
	return s.commentRepo.WithTx(tx).DeleteScope(repository.PostScope(postID))
}
