package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/cache"
	"github.com/qs3c/wallpaper_server/internal/pkg/moderation"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
	"github.com/qs3c/wallpaper_server/internal/repository"
)

var (
	ErrWallpaperNotFound   = errors.New("壁纸不存在")
	ErrWallpaperExists     = errors.New("壁纸已存在")
	ErrWallpaperPermission = errors.New("无权删除此壁纸")
	ErrTagNotFound         = errors.New("标签不存在")
	ErrInvalidSort         = errors.New("排序方式只能是 new、like 或 download")
	ErrEmptyKeyword        = errors.New("搜索关键词不能为空")
	ErrNoResults           = errors.New("没有找到相关壁纸")
	ErrEmptyImageURL       = errors.New("图片地址不能为空")
)

const (
	defaultHotLimit = 20
	hotWallpaperKey = "wallpapers:hot"
)

// 热门列表缓存前 hotCacheSize 条，更大的 limit 直接查库
const hotCacheSize = 100

// ImageModerator 图片合规审核
type ImageModerator interface {
	ModerateImage(ctx context.Context, imageURL string) (*moderation.Result, error)
}

type WallpaperService struct {
	db            *gorm.DB
	wallpaperRepo *repository.WallpaperRepository
	tagRepo       *repository.TagRepository
	userRepo      *repository.UserRepository
	storage       storage.Storage
	moderator     ImageModerator
	cache         *cache.Cache
	hotTTL        time.Duration
}

func NewWallpaperService(
	db *gorm.DB,
	wallpaperRepo *repository.WallpaperRepository,
	tagRepo *repository.TagRepository,
	userRepo *repository.UserRepository,
	store storage.Storage,
	moderator ImageModerator,
	c *cache.Cache,
	hotTTL time.Duration,
) *WallpaperService {
	return &WallpaperService{
		db:            db,
		wallpaperRepo: wallpaperRepo,
		tagRepo:       tagRepo,
		userRepo:      userRepo,
		storage:       store,
		moderator:     moderator,
		cache:         c,
		hotTTL:        hotTTL,
	}
}

func (s *WallpaperService) getWallpaper(repo *repository.WallpaperRepository, id int64) (*model.Wallpaper, error) {
	wp, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWallpaperNotFound
		}
		return nil, err
	}
	return wp, nil
}

// invalidateHot 计数变化后清理热门缓存，失败只记录日志
func (s *WallpaperService) invalidateHot(ctx context.Context) {
	if err := s.cache.Delete(ctx, hotWallpaperKey); err != nil {
		log.Warnf("[wallpaper] invalidate hot cache failed: %v", err)
	}
}

// Save 保存上传后的壁纸信息，标签不存在时整体回滚
func (s *WallpaperService) Save(ctx context.Context, userID int64, req *dto.SaveWallpaperRequest) (*dto.WallpaperItem, error) {
	exists, err := s.wallpaperRepo.ExistsByURL(req.URL)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrWallpaperExists
	}

	wp := &model.Wallpaper{
		Name:         strings.TrimSpace(req.Name),
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		Alt:          req.Alt,
		Type:         req.Type,
		FileSize:     req.FileSize,
		Dimensions:   fmt.Sprintf("%dx%d", req.Width, req.Height),
		CreatedBy:    userID,
		Status:       model.WallpaperStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.wallpaperRepo.WithTx(tx)
		if err := repo.Create(wp); err != nil {
			return err
		}
		if req.TagID == nil {
			return nil
		}

		tag, err := s.tagRepo.WithTx(tx).GetByID(*req.TagID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return err
		}
		return repo.AddTag(wp, tag)
	})
	if err != nil {
		if errors.Is(err, ErrTagNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("save wallpaper: %w", err)
	}

	s.invalidateHot(ctx)
	return s.Get(wp.ID)
}

// Get 获取壁纸详情
func (s *WallpaperService) Get(id int64) (*dto.WallpaperItem, error) {
	wp, err := s.getWallpaper(s.wallpaperRepo, id)
	if err != nil {
		return nil, err
	}
	return toWallpaperItem(wp), nil
}

// List 获取全部壁纸
func (s *WallpaperService) List() ([]*dto.WallpaperItem, error) {
	wps, err := s.wallpaperRepo.List()
	if err != nil {
		return nil, err
	}
	return toWallpaperItems(wps), nil
}

// Hot 按热度（下载×3 + 喜欢×2 + 收藏）排序
func (s *WallpaperService) Hot(ctx context.Context, limit int) ([]*dto.WallpaperItem, error) {
	if limit <= 0 {
		limit = defaultHotLimit
	}

	if limit <= hotCacheSize {
		var cached []*dto.WallpaperItem
		hit, err := s.cache.GetJSON(ctx, hotWallpaperKey, &cached)
		if err != nil {
			log.Warnf("[wallpaper] read hot cache failed: %v", err)
		}
		if hit {
			return truncateItems(cached, limit), nil
		}
	}

	fetch := limit
	if fetch < hotCacheSize {
		fetch = hotCacheSize
	}
	wps, err := s.wallpaperRepo.ListHot(fetch)
	if err != nil {
		return nil, err
	}
	items := toWallpaperItems(wps)

	if limit <= hotCacheSize {
		if err := s.cache.SetJSON(ctx, hotWallpaperKey, items, s.hotTTL); err != nil {
			log.Warnf("[wallpaper] write hot cache failed: %v", err)
		}
	}
	return truncateItems(items, limit), nil
}

func truncateItems(items []*dto.WallpaperItem, limit int) []*dto.WallpaperItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// Sorted 按 new、like、download 排序，空值按最新
func (s *WallpaperService) Sorted(by string) ([]*dto.WallpaperItem, error) {
	switch by {
	case "":
		by = repository.SortByNew
	case repository.SortByNew, repository.SortByLike, repository.SortByDownload:
	default:
		return nil, ErrInvalidSort
	}

	wps, err := s.wallpaperRepo.ListSorted(by)
	if err != nil {
		return nil, err
	}
	return toWallpaperItems(wps), nil
}

// ByTag 按标签名获取壁纸
func (s *WallpaperService) ByTag(name string) ([]*dto.WallpaperItem, error) {
	wps, err := s.wallpaperRepo.ListByTagName(name)
	if err != nil {
		return nil, err
	}
	return toWallpaperItems(wps), nil
}

// Search 按名称或描述模糊搜索
func (s *WallpaperService) Search(keyword string) ([]*dto.WallpaperItem, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	wps, err := s.wallpaperRepo.Search(keyword)
	if err != nil {
		return nil, err
	}
	if len(wps) == 0 {
		return nil, ErrNoResults
	}
	return toWallpaperItems(wps), nil
}

// ListByUser 用户上传的壁纸
func (s *WallpaperService) ListByUser(userID int64) ([]*dto.WallpaperItem, error) {
	wps, err := s.wallpaperRepo.ListByCreator(userID)
	if err != nil {
		return nil, err
	}
	return toWallpaperItems(wps), nil
}

// ListLiked 用户喜欢的壁纸
func (s *WallpaperService) ListLiked(userID int64) ([]*dto.WallpaperItem, error) {
	wps, err := s.wallpaperRepo.ListLikedBy(userID)
	if err != nil {
		return nil, err
	}
	return toWallpaperItems(wps), nil
}

// ListCollected 用户收藏的壁纸
func (s *WallpaperService) ListCollected(userID int64) ([]*dto.WallpaperItem, error) {
	wps, err := s.wallpaperRepo.ListCollectedBy(userID)
	if err != nil {
		return nil, err
	}
	return toWallpaperItems(wps), nil
}

// Relation 当前用户是否喜欢、收藏了该壁纸
func (s *WallpaperService) Relation(userID, id int64) (*dto.WallpaperRelation, error) {
	if _, err := s.getWallpaper(s.wallpaperRepo, id); err != nil {
		return nil, err
	}

	liked, err := s.wallpaperRepo.LikeExists(userID, id)
	if err != nil {
		return nil, err
	}
	collected, err := s.wallpaperRepo.CollectExists(userID, id)
	if err != nil {
		return nil, err
	}
	return &dto.WallpaperRelation{Liked: liked, Collected: collected}, nil
}

// ToggleLike 喜欢/取消喜欢，同步壁纸与作者的喜欢数
func (s *WallpaperService) ToggleLike(ctx context.Context, userID, id int64) (*dto.ToggleResponse, error) {
	var resp *dto.ToggleResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.wallpaperRepo.WithTx(tx)
		wp, err := s.getWallpaper(repo, id)
		if err != nil {
			return err
		}

		liked, err := repo.LikeExists(userID, id)
		if err != nil {
			return err
		}

		delta := 1
		if liked {
			delta = -1
			err = repo.DeleteLike(userID, id)
		} else {
			err = repo.CreateLike(userID, id)
		}
		if err != nil {
			return err
		}

		if err := repo.IncrementCounter(id, repository.WallpaperColLikes, delta); err != nil {
			return err
		}
		if err := s.userRepo.WithTx(tx).IncrementCounter(wp.CreatedBy, repository.UserColLikes, delta); err != nil {
			return err
		}

		resp = &dto.ToggleResponse{Active: !liked, Count: wp.LikeCount + delta}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateHot(ctx)
	return resp, nil
}

// ToggleCollect 收藏/取消收藏，同步壁纸与作者的收藏数
func (s *WallpaperService) ToggleCollect(ctx context.Context, userID, id int64) (*dto.ToggleResponse, error) {
	var resp *dto.ToggleResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.wallpaperRepo.WithTx(tx)
		wp, err := s.getWallpaper(repo, id)
		if err != nil {
			return err
		}

		collected, err := repo.CollectExists(userID, id)
		if err != nil {
			return err
		}

		delta := 1
		if collected {
			delta = -1
			err = repo.DeleteCollect(userID, id)
		} else {
			err = repo.CreateCollect(userID, id)
		}
		if err != nil {
			return err
		}

		if err := repo.IncrementCounter(id, repository.WallpaperColFavorites, delta); err != nil {
			return err
		}
		if err := s.userRepo.WithTx(tx).IncrementCounter(wp.CreatedBy, repository.UserColFavorites, delta); err != nil {
			return err
		}

		resp = &dto.ToggleResponse{Active: !collected, Count: wp.FavoriteCount + delta}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateHot(ctx)
	return resp, nil
}

// Download 记录一次下载并返回图片地址
func (s *WallpaperService) Download(ctx context.Context, id int64) (*dto.DownloadResponse, error) {
	wp, err := s.getWallpaper(s.wallpaperRepo, id)
	if err != nil {
		return nil, err
	}

	if err := s.wallpaperRepo.IncrementCounter(id, repository.WallpaperColDownloads, 1); err != nil {
		return nil, err
	}

	s.invalidateHot(ctx)
	return &dto.DownloadResponse{URL: wp.URL, DownloadCount: wp.DownloadCount + 1}, nil
}

// Delete 删除壁纸，上传者或管理员可操作
func (s *WallpaperService) Delete(ctx context.Context, userID, id int64) error {
	wp, err := s.getWallpaper(s.wallpaperRepo, id)
	if err != nil {
		return err
	}

	if wp.CreatedBy != userID {
		user, err := s.userRepo.GetByID(userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if user == nil || user.Role != model.RoleAdmin {
			return ErrWallpaperPermission
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.wallpaperRepo.WithTx(tx).Delete(wp)
	})
	if err != nil {
		return fmt.Errorf("delete wallpaper %d: %w", id, err)
	}

	// 文件清理失败只记录日志
	for _, url := range []string{wp.URL, wp.ThumbnailURL} {
		if key := s.storage.KeyOf(url); url != "" && key != "" {
			if err := s.storage.Delete(key); err != nil {
				log.Warnf("[wallpaper] remove file %s failed: %v", key, err)
			}
		}
	}

	s.invalidateHot(ctx)
	log.Infof("[wallpaper] user %d deleted wallpaper %d", userID, id)
	return nil
}

// Moderate 提交壁纸审核，并按审核建议更新状态
func (s *WallpaperService) Moderate(ctx context.Context, id int64) (*dto.ModerationResult, error) {
	wp, err := s.getWallpaper(s.wallpaperRepo, id)
	if err != nil {
		return nil, err
	}

	result, err := s.moderator.ModerateImage(ctx, wp.URL)
	if err != nil {
		return nil, fmt.Errorf("moderate wallpaper %d: %w", id, err)
	}

	status := statusFromSuggest(result.Suggest())
	if err := s.wallpaperRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	log.Infof("[wallpaper] wallpaper %d moderated: %s -> %s", id, result.Suggest(), status)
	return &dto.ModerationResult{
		WallpaperID: id,
		Suggest:     result.Suggest(),
		Status:      status,
	}, nil
}

// ModerateURL 直接审核任意图片地址，返回原始结果
func (s *WallpaperService) ModerateURL(ctx context.Context, imageURL string) (*moderation.Result, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, ErrEmptyImageURL
	}
	return s.moderator.ModerateImage(ctx, imageURL)
}

func statusFromSuggest(suggest string) string {
	switch suggest {
	case moderation.SuggestPass:
		return model.WallpaperStatusApproved
	case moderation.SuggestNonCompliance:
		return model.WallpaperStatusRejected
	default:
		return model.WallpaperStatusPending
	}
}
