package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
)

var seq int64

func nextSeq() int64 {
	return atomic.AddInt64(&seq, 1)
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := nextSeq()
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", n),
		Email:        fmt.Sprintf("test_%d@example.com", n),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Gender:       "other",
		Role:         model.RoleUser,
		Status:       model.UserStatusActive,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithPasswordHash 设置密码哈希
func WithPasswordHash(hash string) func(*model.User) {
	return func(u *model.User) {
		u.PasswordHash = hash
	}
}

// AsAdmin 设置为管理员
func AsAdmin() func(*model.User) {
	return func(u *model.User) {
		u.Role = model.RoleAdmin
	}
}

// TestTag 创建测试标签
func TestTag(t *testing.T, db *gorm.DB, name string) *model.Tag {
	t.Helper()

	tag := &model.Tag{Name: name}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("Failed to create test tag: %v", err)
	}
	return tag
}

// TestWallpaper 创建测试壁纸
func TestWallpaper(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Wallpaper)) *model.Wallpaper {
	t.Helper()

	n := nextSeq()
	wp := &model.Wallpaper{
		Name:       fmt.Sprintf("wallpaper %d", n),
		URL:        fmt.Sprintf("http://127.0.0.1:5000/static/wallpapers/%d.png", n),
		Type:       "png",
		FileSize:   1024,
		Dimensions: "1920x1080",
		CreatedBy:  userID,
		Status:     model.WallpaperStatusPending,
	}

	for _, opt := range opts {
		opt(wp)
	}

	if err := db.Create(wp).Error; err != nil {
		t.Fatalf("Failed to create test wallpaper: %v", err)
	}
	return wp
}

// WithName 设置壁纸名称
func WithName(name string) func(*model.Wallpaper) {
	return func(w *model.Wallpaper) {
		w.Name = name
	}
}

// WithCounts 设置下载/喜欢/收藏计数
func WithCounts(download, like, favorite int) func(*model.Wallpaper) {
	return func(w *model.Wallpaper) {
		w.DownloadCount = download
		w.LikeCount = like
		w.FavoriteCount = favorite
	}
}

// WithTags 设置壁纸标签
func WithTags(tags ...*model.Tag) func(*model.Wallpaper) {
	return func(w *model.Wallpaper) {
		w.Tags = tags
	}
}

// TestPost 创建测试帖子
func TestPost(t *testing.T, db *gorm.DB, userID int64, content string) *model.Post {
	t.Helper()

	post := &model.Post{
		UserID:  userID,
		Content: content,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}

// TestComment 创建测试评论
func TestComment(t *testing.T, db *gorm.DB, userID, postID int64, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
	return comment
}

// TestReply 创建测试回复
func TestReply(t *testing.T, db *gorm.DB, userID, postID, parentID int64, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		UserID:   userID,
		PostID:   postID,
		ParentID: &parentID,
		Content:  content,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test reply: %v", err)
	}
	return comment
}

// TestTopic 创建测试话题
func TestTopic(t *testing.T, db *gorm.DB, name string, viewCount int) *model.Topic {
	t.Helper()

	topic := &model.Topic{
		Name:      name,
		ViewCount: viewCount,
	}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("Failed to create test topic: %v", err)
	}
	return topic
}

// BindTopic 绑定帖子与话题
func BindTopic(t *testing.T, db *gorm.DB, postID, topicID int64) {
	t.Helper()

	if err := db.Create(&model.PostTopic{PostID: postID, TopicID: topicID}).Error; err != nil {
		t.Fatalf("Failed to bind topic: %v", err)
	}
}

// TestPostLike 创建帖子点赞
func TestPostLike(t *testing.T, db *gorm.DB, userID, postID int64) {
	t.Helper()

	if err := db.Create(&model.PostLike{UserID: userID, PostID: postID}).Error; err != nil {
		t.Fatalf("Failed to create post like: %v", err)
	}
}
