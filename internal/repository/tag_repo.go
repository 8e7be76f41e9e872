package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) WithTx(tx *gorm.DB) *TagRepository {
	return &TagRepository{db: tx}
}

func (r *TagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

func (r *TagRepository) GetByID(id int64) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Tag{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *TagRepository) List() ([]*model.Tag, error) {
	var tags []*model.Tag
	err := r.db.Order("id ASC").Find(&tags).Error
	return tags, err
}
