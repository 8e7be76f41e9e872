package service

import (
	"encoding/json"
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
	ErrPostNotFound     = errors.New("帖子不存在")
	ErrPostPermission   = errors.New("无权删除此帖子")
	ErrEmptyPostContent = errors.New("帖子内容不能为空")
)

// CommentPurger 删除帖子时清理评论，在调用方事务中执行
type CommentPurger interface {
	PurgePost(tx *gorm.DB, postID int64) (int64, error)
}

// CommentLister 批量获取帖子评论
type CommentLister interface {
	ListByPosts(postIDs []int64) (map[int64][]*dto.CommentItem, error)
}

type PostService struct {
	db        *gorm.DB
	postRepo  *repository.PostRepository
	topicRepo *repository.TopicRepository
	purger    CommentPurger
	comments  CommentLister
}

func NewPostService(
	db *gorm.DB,
	postRepo *repository.PostRepository,
	topicRepo *repository.TopicRepository,
	purger CommentPurger,
	comments CommentLister,
) *PostService {
	return &PostService{
		db:        db,
		postRepo:  postRepo,
		topicRepo: topicRepo,
		purger:    purger,
		comments:  comments,
	}
}

// Create 发帖
func (s *PostService) Create(userID int64, req *dto.CreatePostRequest) (*dto.CreatePostResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyPostContent
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:  userID,
		Content: content,
		Images:  string(encoded),
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return &dto.CreatePostResponse{ID: post.ID}, nil
}

// List 获取全部帖子，新的在前
func (s *PostService) List() ([]*dto.PostItem, error) {
	posts, err := s.postRepo.ListWithUser()
	if err != nil {
		return nil, err
	}
	return s.assemble(posts)
}

// ListByIDs 获取指定帖子
func (s *PostService) ListByIDs(ids []int64) ([]*dto.PostItem, error) {
	posts, err := s.postRepo.ListByIDsWithUser(ids)
	if err != nil {
		return nil, err
	}
	return s.assemble(posts)
}

// assemble 批量附加点赞、评论与话题
func (s *PostService) assemble(posts []*model.Post) ([]*dto.PostItem, error) {
	items := make([]*dto.PostItem, len(posts))
	if len(posts) == 0 {
		return items, nil
	}

	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	likes, err := s.postRepo.ListLikesByPostIDs(ids)
	if err != nil {
		return nil, err
	}
	likesByPost := make(map[int64][]*dto.PostLikeItem)
	for _, l := range likes {
		likesByPost[l.PostID] = append(likesByPost[l.PostID], &dto.PostLikeItem{
			UserID:    l.UserID,
			User:      toUserBrief(l.User),
			CreatedAt: formatTime(l.CreatedAt),
		})
	}

	comments, err := s.comments.ListByPosts(ids)
	if err != nil {
		return nil, err
	}

	bindings, err := s.topicRepo.ListBindingsByPostIDs(ids)
	if err != nil {
		return nil, err
	}
	topicsByPost := make(map[int64][]*dto.TopicBrief)
	for _, b := range bindings {
		if b.Topic == nil {
			continue
		}
		topicsByPost[b.PostID] = append(topicsByPost[b.PostID], &dto.TopicBrief{ID: b.Topic.ID, Name: b.Topic.Name})
	}

	for i, p := range posts {
		item := &dto.PostItem{
			ID:        p.ID,
			Content:   p.Content,
			Images:    decodeImages(p.Images),
			Views:     p.Views,
			User:      toUserBrief(p.User),
			Likes:     likesByPost[p.ID],
			Comments:  comments[p.ID],
			Topics:    topicsByPost[p.ID],
			CreatedAt: formatTime(p.CreatedAt),
		}
		if item.Likes == nil {
			item.Likes = []*dto.PostLikeItem{}
		}
		if item.Comments == nil {
			item.Comments = []*dto.CommentItem{}
		}
		if item.Topics == nil {
			item.Topics = []*dto.TopicBrief{}
		}
		item.LikeCount = len(item.Likes)
		items[i] = item
	}
	return items, nil
}

func decodeImages(raw string) []string {
	images := []string{}
	if raw == "" {
		return images
	}
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		// 兼容单个 URL 的旧数据
		return []string{raw}
	}
	return images
}

// View 增加浏览量
func (s *PostService) View(postID int64) error {
	hit, err := s.postRepo.IncrementViews(postID)
	if err != nil {
		return err
	}
	if !hit {
		return ErrPostNotFound
	}
	return nil
}

// ToggleLike 点赞/取消点赞
func (s *PostService) ToggleLike(userID, postID int64) (*dto.PostLikeResponse, error) {
	exists, err := s.postRepo.Exists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	liked, err := s.postRepo.LikeExists(userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.postRepo.DeleteLike(userID, postID); err != nil {
			return nil, err
		}
		return &dto.PostLikeResponse{Liked: false}, nil
	}

	if err := s.postRepo.CreateLike(userID, postID); err != nil {
		return nil, err
	}
	return &dto.PostLikeResponse{Liked: true}, nil
}

// Delete 删除帖子：评论、点赞、话题绑定、帖子本身在同一事务中删除
func (s *PostService) Delete(userID, postID int64) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.UserID != userID {
		return ErrPostPermission
	}

	var purged int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		n, err := s.purger.PurgePost(tx, postID)
		if err != nil {
			return fmt.Errorf("purge comments: %w", err)
		}
		purged = n

		postRepo := s.postRepo.WithTx(tx)
		if err := postRepo.DeleteLikesByPost(postID); err != nil {
			return fmt.Errorf("delete likes: %w", err)
		}
		if err := s.topicRepo.WithTx(tx).DeleteBindingsByPost(postID); err != nil {
			return fmt.Errorf("delete topic bindings: %w", err)
		}
		return postRepo.Delete(postID)
	})
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}

	log.Infof("[post] post %d deleted with %d comments", postID, purged)
	return nil
}
