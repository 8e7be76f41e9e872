package service

import (
	"time"

	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/model/dto"
)

const dateLayout = "2006-01-02"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:        u.ID,
		Username:  u.Username,
		Nickname:  u.Nickname,
		AvatarURL: u.AvatarURL,
	}
}

func toUserProfile(u *model.User) *dto.UserProfile {
	p := &dto.UserProfile{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Nickname:       u.Nickname,
		Gender:         u.Gender,
		Country:        u.Country,
		Province:       u.Province,
		City:           u.City,
		Role:           u.Role,
		Status:         u.Status,
		AvatarURL:      u.AvatarURL,
		Description:    u.Description,
		BackgroundURL:  u.BackgroundURL,
		FollowersCount: u.FollowersCount,
		FollowCount:    u.FollowCount,
		LikeCount:      u.LikeCount,
		FavoriteCount:  u.FavoriteCount,
		CreatedAt:      formatTime(u.CreatedAt),
	}
	if u.Birth != nil {
		p.Birth = u.Birth.Format(dateLayout)
	}
	if u.LastLoginAt != nil {
		p.LastLoginAt = formatTime(*u.LastLoginAt)
	}
	return p
}

func toWallpaperItem(w *model.Wallpaper) *dto.WallpaperItem {
	item := &dto.WallpaperItem{
		ID:            w.ID,
		Name:          w.Name,
		URL:           w.URL,
		ThumbnailURL:  w.ThumbnailURL,
		Alt:           w.Alt,
		Type:          w.Type,
		FileSize:      w.FileSize,
		Dimensions:    w.Dimensions,
		DownloadCount: w.DownloadCount,
		LikeCount:     w.LikeCount,
		FavoriteCount: w.FavoriteCount,
		Heat:          w.HeatValue(),
		Status:        w.Status,
		Tags:          make([]string, 0, len(w.Tags)),
		Author:        toUserBrief(w.Author),
		CreatedAt:     formatTime(w.CreatedAt),
	}
	for _, tag := range w.Tags {
		item.Tags = append(item.Tags, tag.Name)
	}
	return item
}

func toWallpaperItems(wps []*model.Wallpaper) []*dto.WallpaperItem {
	items := make([]*dto.WallpaperItem, len(wps))
	for i, w := range wps {
		items[i] = toWallpaperItem(w)
	}
	return items
}

func toCommentItem(c *model.Comment) *dto.CommentItem {
	return &dto.CommentItem{
		ID:        c.ID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		User:      toUserBrief(c.User),
		Replies:   []*dto.CommentItem{},
		CreatedAt: formatTime(c.CreatedAt),
	}
}

func toTopicItem(t *model.Topic, joinCount int64) *dto.TopicItem {
	return &dto.TopicItem{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ViewCount:   t.ViewCount,
		JoinCount:   joinCount,
		CreatedAt:   formatTime(t.CreatedAt),
	}
}
