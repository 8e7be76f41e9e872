package service

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/cache"
	"github.com/qs3c/wallpaper_server/internal/repository"
)

var (
	ErrTopicNotFound = errors.New("话题不存在")
	ErrTopicExists   = errors.New("话题已存在")
	ErrEmptyTopic    = errors.New("话题名称不能为空")
	ErrAlreadyBound  = errors.New("帖子已绑定该话题")
)

const (
	hotTopicLimit = 3
	hotTopicKey   = "topics:hot"
)

type TopicService struct {
	topicRepo *repository.TopicRepository
	postRepo  *repository.PostRepository
	posts     *PostService
	cache     *cache.Cache
	hotTTL    time.Duration
}

func NewTopicService(
	topicRepo *repository.TopicRepository,
	postRepo *repository.PostRepository,
	posts *PostService,
	c *cache.Cache,
	hotTTL time.Duration,
) *TopicService {
	return &TopicService{
		topicRepo: topicRepo,
		postRepo:  postRepo,
		posts:     posts,
		cache:     c,
		hotTTL:    hotTTL,
	}
}

func (s *TopicService) getTopic(id int64) (*model.Topic, error) {
	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

// List 获取全部话题及参与帖子数
func (s *TopicService) List() ([]*dto.TopicItem, error) {
	topics, err := s.topicRepo.List()
	if err != nil {
		return nil, err
	}
	counts, err := s.topicRepo.CountPosts()
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TopicItem, len(topics))
	for i, t := range topics {
		items[i] = toTopicItem(t, counts[t.ID])
	}
	return items, nil
}

// Create 创建话题，名称唯一
func (s *TopicService) Create(req *dto.CreateTopicRequest) (*dto.TopicItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyTopic
	}

	exists, err := s.topicRepo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTopicExists
	}

	topic := &model.Topic{Name: name, Description: req.Description}
	if err := s.topicRepo.Create(topic); err != nil {
		return nil, err
	}
	return toTopicItem(topic, 0), nil
}

// Bind 帖子绑定话题
func (s *TopicService) Bind(req *dto.BindTopicRequest) error {
	exists, err := s.postRepo.Exists(req.PostID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}
	if _, err := s.getTopic(req.TopicID); err != nil {
		return err
	}

	bound, err := s.topicRepo.BindingExists(req.PostID, req.TopicID)
	if err != nil {
		return err
	}
	if bound {
		return ErrAlreadyBound
	}
	return s.topicRepo.Bind(req.PostID, req.TopicID)
}

// Hot 浏览量最高的话题
func (s *TopicService) Hot(ctx context.Context) ([]*dto.TopicItem, error) {
	var cached []*dto.TopicItem
	hit, err := s.cache.GetJSON(ctx, hotTopicKey, &cached)
	if err != nil {
		log.Warnf("[topic] read hot cache failed: %v", err)
	}
	if hit {
		return cached, nil
	}

	topics, err := s.topicRepo.ListHot(hotTopicLimit)
	if err != nil {
		return nil, err
	}
	counts, err := s.topicRepo.CountPosts()
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TopicItem, len(topics))
	for i, t := range topics {
		items[i] = toTopicItem(t, counts[t.ID])
	}

	if err := s.cache.SetJSON(ctx, hotTopicKey, items, s.hotTTL); err != nil {
		log.Warnf("[topic] write hot cache failed: %v", err)
	}
	return items, nil
}

// Get 获取话题详情，浏览量加一
func (s *TopicService) Get(ctx context.Context, id int64) (*dto.TopicItem, error) {
	topic, err := s.getTopic(id)
	if err != nil {
		return nil, err
	}

	if err := s.topicRepo.IncrementViews(id); err != nil {
		return nil, err
	}
	topic.ViewCount++

	if err := s.cache.Delete(ctx, hotTopicKey); err != nil {
		log.Warnf("[topic] invalidate hot cache failed: %v", err)
	}

	counts, err := s.topicRepo.CountPosts()
	if err != nil {
		return nil, err
	}
	return toTopicItem(topic, counts[id]), nil
}

// Posts 话题下的帖子
func (s *TopicService) Posts(id int64) ([]*dto.PostItem, error) {
	if _, err := s.getTopic(id); err != nil {
		return nil, err
	}

	ids, err := s.topicRepo.PostIDsByTopic(id)
	if err != nil {
		return nil, err
	}
	return s.posts.ListByIDs(ids)
}
