package service

import (
	"errors"
	"strings"

	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/repository"
)

var (
	ErrTagExists = errors.New("标签已存在")
	ErrEmptyTag  = errors.New("标签名不能为空")
)

type TagService struct {
	tagRepo *repository.TagRepository
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

func (s *TagService) List() ([]*model.Tag, error) {
	return s.tagRepo.List()
}

// Create 创建标签，名称唯一
func (s *TagService) Create(name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTag
	}

	exists, err := s.tagRepo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTagExists
	}

	tag := &model.Tag{Name: name}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}
