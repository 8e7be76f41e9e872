package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/config"
	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/imaging"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
	"github.com/qs3c/wallpaper_server/internal/repository"
)

var (
	ErrInvalidGender    = errors.New("性别只能是 male、female 或 other")
	ErrInvalidBirth     = errors.New("生日格式错误")
	ErrEmptyBackground  = errors.New("背景图片地址不能为空")
	ErrFollowSelf       = errors.New("不能关注自己")
	ErrAlreadyFollowing = errors.New("已经关注过该用户")
	ErrNotFollowing     = errors.New("尚未关注该用户")
)

const topUserLimit = 3

type UserService struct {
	db            *gorm.DB
	userRepo      *repository.UserRepository
	followRepo    *repository.FollowRepository
	postRepo      *repository.PostRepository
	wallpaperRepo *repository.WallpaperRepository
	storage       storage.Storage
	cfg           *config.Config
}

func NewUserService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	followRepo *repository.FollowRepository,
	postRepo *repository.PostRepository,
	wallpaperRepo *repository.WallpaperRepository,
	store storage.Storage,
	cfg *config.Config,
) *UserService {
	return &UserService{
		db:            db,
		userRepo:      userRepo,
		followRepo:    followRepo,
		postRepo:      postRepo,
		wallpaperRepo: wallpaperRepo,
		storage:       store,
		cfg:           cfg,
	}
}

func (s *UserService) getUser(userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetProfile 获取用户主页信息，包含发帖、壁纸、喜欢、收藏数
func (s *UserService) GetProfile(userID int64) (*dto.UserProfile, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(user)
}

func (s *UserService) buildProfile(user *model.User) (*dto.UserProfile, error) {
	profile := toUserProfile(user)

	var err error
	if profile.PostCount, err = s.postRepo.CountByUserID(user.ID); err != nil {
		return nil, err
	}
	if profile.WallpaperCount, err = s.wallpaperRepo.CountByCreator(user.ID); err != nil {
		return nil, err
	}
	if profile.LikedCount, err = s.wallpaperRepo.CountLikesByUser(user.ID); err != nil {
		return nil, err
	}
	if profile.CollectedCount, err = s.wallpaperRepo.CountCollectsByUser(user.ID); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile 更新个人资料，未提供的字段保持不变
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	if _, err := s.getUser(userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Nickname != nil {
		fields["nickname"] = strings.TrimSpace(*req.Nickname)
	}
	if req.Gender != nil {
		switch *req.Gender {
		case "male", "female", "other":
			fields["gender"] = *req.Gender
		default:
			return nil, ErrInvalidGender
		}
	}
	if req.Birth != nil {
		birth, err := parseBirth(*req.Birth)
		if err != nil {
			return nil, err
		}
		fields["birth"] = birth
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.Province != nil {
		fields["province"] = *req.Province
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(userID)
}

// parseBirth 支持 YYYY-MM-DD 与 RFC3339，空串表示清除
func parseBirth(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidBirth
}

// UploadAvatar 上传头像并更新用户头像地址
func (s *UserService) UploadAvatar(userID int64, file io.Reader, filename string) (string, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return "", err
	}

	data, ext, err := readImage(file, filename, s.cfg.Upload.AvatarMaxSize, s.cfg.Upload.AllowedExtensions)
	if err != nil {
		return "", err
	}
	if _, err := imaging.Inspect(data); err != nil {
		return "", ErrInvalidFileType
	}

	avatarURL, err := s.storage.Put(storage.NewKey(avatarDir, ext), data, storage.ContentTypeByExt(ext))
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"avatar_url": avatarURL}); err != nil {
		return "", err
	}

	// 旧头像清理失败不影响结果
	if old := s.storage.KeyOf(user.AvatarURL); user.AvatarURL != "" && old != "" {
		if err := s.storage.Delete(old); err != nil {
			log.Warnf("[user] remove old avatar %s failed: %v", old, err)
		}
	}

	return avatarURL, nil
}

// UpdateBackground 更新主页背景图
func (s *UserService) UpdateBackground(userID int64, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrEmptyBackground
	}
	if _, err := s.getUser(userID); err != nil {
		return err
	}
	return s.userRepo.UpdateFields(userID, map[string]interface{}{"background_url": url})
}

// Follow 关注用户，双方计数在同一事务中更新
func (s *UserService) Follow(followerID, followedID int64) error {
	if followerID == followedID {
		return ErrFollowSelf
	}
	if _, err := s.getUser(followedID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		followRepo := s.followRepo.WithTx(tx)
		exists, err := followRepo.Exists(followerID, followedID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyFollowing
		}
		if err := followRepo.Create(followerID, followedID); err != nil {
			return err
		}

		userRepo := s.userRepo.WithTx(tx)
		if err := userRepo.IncrementCounter(followedID, repository.UserColFollowers, 1); err != nil {
			return err
		}
		return userRepo.IncrementCounter(followerID, repository.UserColFollowing, 1)
	})
}

// Unfollow 取消关注
func (s *UserService) Unfollow(followerID, followedID int64) error {
	if followerID == followedID {
		return ErrFollowSelf
	}
	if _, err := s.getUser(followedID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		removed, err := s.followRepo.WithTx(tx).Delete(followerID, followedID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNotFollowing
		}

		userRepo := s.userRepo.WithTx(tx)
		if err := userRepo.IncrementCounter(followedID, repository.UserColFollowers, -1); err != nil {
			return err
		}
		return userRepo.IncrementCounter(followerID, repository.UserColFollowing, -1)
	})
}

// FollowCounts 获取关注数与粉丝数
func (s *UserService) FollowCounts(userID int64) (*dto.FollowCounts, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowCounts{
		FollowersCount: user.FollowersCount,
		FollowCount:    user.FollowCount,
	}, nil
}

// IsFollowing followerID 是否关注了 followedID
func (s *UserService) IsFollowing(followerID, followedID int64) (*dto.FollowStatus, error) {
	following, err := s.followRepo.Exists(followerID, followedID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowStatus{Following: following}, nil
}

// TopUsers 发帖最多的用户
func (s *UserService) TopUsers() ([]*dto.TopUser, error) {
	rows, err := s.postRepo.TopPosters(topUserLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.UserID
	}
	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	result := make([]*dto.TopUser, 0, len(rows))
	for _, r := range rows {
		u, ok := byID[r.UserID]
		if !ok {
			continue
		}
		result = append(result, &dto.TopUser{UserBrief: *toUserBrief(u), PostCount: r.PostCount})
	}
	return result, nil
}

// ListUsers 管理员查看用户列表，role 为空时返回全部
func (s *UserService) ListUsers(role string) ([]*dto.UserProfile, error) {
	users, err := s.userRepo.List(role)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.UserProfile, len(users))
	for i, u := range users {
		result[i] = toUserProfile(u)
	}
	return result, nil
}

// IsAdmin 用户是否为管理员
func (s *UserService) IsAdmin(userID int64) (bool, error) {
	user, err := s.getUser(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == model.RoleAdmin, nil
}
