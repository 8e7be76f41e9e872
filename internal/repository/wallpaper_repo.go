package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
)

// 壁纸计数字段
const (
	WallpaperColDownloads = "download_count"
	WallpaperColLikes     = "like_count"
	WallpaperColFavorites = "favorite_count"
)

// 排序方式
const (
	SortByNew      = "new"
	SortByLike     = "like"
	SortByDownload = "download"
)

var sortOrders = map[string]string{
	SortByNew:      "created_at DESC, id DESC",
	SortByLike:     "like_count DESC, id DESC",
	SortByDownload: "download_count DESC, id DESC",
}

const heatOrder = "(download_count * 3 + like_count * 2 + favorite_count) DESC, id DESC"

type WallpaperRepository struct {
	db *gorm.DB
}

func NewWallpaperRepository(db *gorm.DB) *WallpaperRepository {
	return &WallpaperRepository{db: db}
}

func (r *WallpaperRepository) WithTx(tx *gorm.DB) *WallpaperRepository {
	return &WallpaperRepository{db: tx}
}

func (r *WallpaperRepository) withRelations() *gorm.DB {
	return r.db.Preload("Author").Preload("Tags")
}

func (r *WallpaperRepository) Create(wp *model.Wallpaper) error {
	return r.db.Create(wp).Error
}

// AddTag 为壁纸添加标签
func (r *WallpaperRepository) AddTag(wp *model.Wallpaper, tag *model.Tag) error {
	return r.db.Model(wp).Association("Tags").Append(tag)
}

func (r *WallpaperRepository) GetByID(id int64) (*model.Wallpaper, error) {
	var wp model.Wallpaper
	if err := r.withRelations().Where("id = ?", id).First(&wp).Error; err != nil {
		return nil, err
	}
	return &wp, nil
}

func (r *WallpaperRepository) ExistsByURL(url string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Wallpaper{}).Where("url = ?", url).Count(&count).Error
	return count > 0, err
}

func (r *WallpaperRepository) List() ([]*model.Wallpaper, error) {
	var wps []*model.Wallpaper
	err := r.withRelations().Order("created_at DESC, id DESC").Find(&wps).Error
	return wps, err
}

// ListHot 按热度（下载*3 + 喜欢*2 + 收藏）倒序
func (r *WallpaperRepository) ListHot(limit int) ([]*model.Wallpaper, error) {
	var wps []*model.Wallpaper
	err := r.withRelations().Order(heatOrder).Limit(limit).Find(&wps).Error
	return wps, err
}

// ListSorted 按 SortBy* 排序，未知方式按最新处理
func (r *WallpaperRepository) ListSorted(by string) ([]*model.Wallpaper, error) {
	order, ok := sortOrders[by]
	if !ok {
		order = sortOrders[SortByNew]
	}
	var wps []*model.Wallpaper
	err := r.withRelations().Order(order).Find(&wps).Error
	return wps, err
}

func (r *WallpaperRepository) ListByTagName(name string) ([]*model.Wallpaper, error) {
	var wps []*model.Wallpaper
	err := r.withRelations().
		Joins("JOIN wallpaper_tags ON wallpaper_tags.wallpaper_id = wallpapers.id").
		Joins("JOIN tags ON tags.id = wallpaper_tags.tag_id").
		Where("tags.name = ?", name).
		Order("wallpapers.created_at DESC, wallpapers.id DESC").
		Find(&wps).Error
	return wps, err
}

// Search 按名称或描述模糊匹配
func (r *WallpaperRepository) Search(keyword string) ([]*model.Wallpaper, error) {
	var wps []*model.Wallpaper
	pattern := "%" + keyword + "%"
	err := r.withRelations().
		Where("name LIKE ? OR alt LIKE ?", pattern, pattern).
		Order("created_at DESC, id DESC").
		Find(&wps).Error
	return wps, err
}

func (r *WallpaperRepository) ListByCreator(userID int64) ([]*model.Wallpaper, error) {
	var wps []*model.Wallpaper
	err := r.withRelations().Where("created_by = ?", userID).
		Order("created_at DESC, id DESC").Find(&wps).Error
	return wps, err
}

// ListLikedBy 用户喜欢的壁纸
func (r *WallpaperRepository) ListLikedBy(userID int64) ([]*model.Wallpaper, error) {
	var wps []*model.Wallpaper
	err := r.withRelations().
		Joins("JOIN user_favorite_wallpapers l ON l.wallpaper_id = wallpapers.id").
		Where("l.user_id = ?", userID).
		Order("l.created_at DESC").
		Find(&wps).Error
	return wps, err
}

// ListCollectedBy 用户收藏的壁纸
func (r *WallpaperRepository) ListCollectedBy(userID int64) ([]*model.Wallpaper, error) {
	var wps []*model.Wallpaper
	err := r.withRelations().
		Joins("JOIN user_collect_wallpapers c ON c.wallpaper_id = wallpapers.id").
		Where("c.user_id = ?", userID).
		Order("c.created_at DESC").
		Find(&wps).Error
	return wps, err
}

func (r *WallpaperRepository) CountByCreator(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Wallpaper{}).Where("created_by = ?", userID).Count(&count).Error
	return count, err
}

// IncrementCounter 调整计数字段，column 必须是 WallpaperCol* 常量之一
func (r *WallpaperRepository) IncrementCounter(id int64, column string, delta int) error {
	return r.db.Model(&model.Wallpaper{}).Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}

func (r *WallpaperRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.Wallpaper{}).Where("id = ?", id).Update("status", status).Error
}

// Delete 删除壁纸及其喜欢、收藏、标签关联
func (r *WallpaperRepository) Delete(wp *model.Wallpaper) error {
	if err := r.db.Where("wallpaper_id = ?", wp.ID).Delete(&model.WallpaperLike{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("wallpaper_id = ?", wp.ID).Delete(&model.WallpaperCollect{}).Error; err != nil {
		return err
	}
	if err := r.db.Model(wp).Association("Tags").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&model.Wallpaper{}, wp.ID).Error
}

func (r *WallpaperRepository) LikeExists(userID, wallpaperID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.WallpaperLike{}).
		Where("user_id = ? AND wallpaper_id = ?", userID, wallpaperID).Count(&count).Error
	return count > 0, err
}

func (r *WallpaperRepository) CreateLike(userID, wallpaperID int64) error {
	return r.db.Create(&model.WallpaperLike{UserID: userID, WallpaperID: wallpaperID}).Error
}

func (r *WallpaperRepository) DeleteLike(userID, wallpaperID int64) error {
	return r.db.Where("user_id = ? AND wallpaper_id = ?", userID, wallpaperID).
		Delete(&model.WallpaperLike{}).Error
}

func (r *WallpaperRepository) CollectExists(userID, wallpaperID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.WallpaperCollect{}).
		Where("user_id = ? AND wallpaper_id = ?", userID, wallpaperID).Count(&count).Error
	return count > 0, err
}

func (r *WallpaperRepository) CreateCollect(userID, wallpaperID int64) error {
	return r.db.Create(&model.WallpaperCollect{UserID: userID, WallpaperID: wallpaperID}).Error
}

func (r *WallpaperRepository) DeleteCollect(userID, wallpaperID int64) error {
	return r.db.Where("user_id = ? AND wallpaper_id = ?", userID, wallpaperID).
		Delete(&model.WallpaperCollect{}).Error
}

// CountLikesByUser 用户喜欢的壁纸数
func (r *WallpaperRepository) CountLikesByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.WallpaperLike{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountCollectsByUser 用户收藏的壁纸数
func (r *WallpaperRepository) CountCollectsByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.WallpaperCollect{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
