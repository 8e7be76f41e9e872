package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/config"
	"github.com/qs3c/wallpaper_server/internal/api/middleware"
	"github.com/qs3c/wallpaper_server/internal/pkg/moderation"
	"github.com/qs3c/wallpaper_server/internal/pkg/response"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
	"github.com/qs3c/wallpaper_server/internal/repository"
	"github.com/qs3c/wallpaper_server/internal/service"
	"github.com/qs3c/wallpaper_server/internal/testutil"
)

const testBaseURL = "http://127.0.0.1:5000/static"

func init() {
	gin.SetMode(gin.TestMode)
}

type stubModerator struct {
	suggest string
	err     error
}

func (m *stubModerator) ModerateImage(_ context.Context, _ string) (*moderation.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := &moderation.Result{Code: "000000"}
	result.Data.Result.Suggest = m.suggest
	return result, nil
}

// testContext 本地测试上下文
type testContext struct {
	DB         *gorm.DB
	Config     *config.Config
	Moderator  *stubModerator
	Users      *service.UserService
	Auth       *service.AuthService
	Wallpapers *service.WallpaperService
	Uploads    *service.UploadService
	Tags       *service.TagService
	Comments   *service.CommentService
	Posts      *service.PostService
	Topics     *service.TopicService
	QRCodes    *service.QRCodeService
}

func setupTestContext(t *testing.T) (*testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key",
			ExpireHours: 24,
		},
		Upload: config.UploadConfig{
			MaxSize:           1 << 20,
			AvatarMaxSize:     64 << 10,
			ThumbnailWidth:    16,
			AllowedExtensions: []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
		},
	}
	store := storage.NewDiskStorage(t.TempDir(), testBaseURL)
	moderator := &stubModerator{suggest: moderation.SuggestPass}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	wallpaperRepo := repository.NewWallpaperRepository(db)
	tagRepo := repository.NewTagRepository(db)
	topicRepo := repository.NewTopicRepository(db)

	users := service.NewUserService(db, userRepo, repository.NewFollowRepository(db), postRepo, wallpaperRepo, store, cfg)
	comments := service.NewCommentService(db, repository.NewCommentRepository(db), postRepo)
	posts := service.NewPostService(db, postRepo, topicRepo, comments, comments)

	ctx := &testContext{
		DB:         db,
		Config:     cfg,
		Moderator:  moderator,
		Users:      users,
		Auth:       service.NewAuthService(userRepo, users, cfg),
		Wallpapers: service.NewWallpaperService(db, wallpaperRepo, tagRepo, userRepo, store, moderator, nil, 0),
		Uploads:    service.NewUploadService(store, cfg),
		Tags:       service.NewTagService(tagRepo),
		Comments:   comments,
		Posts:      posts,
		Topics:     service.NewTopicService(topicRepo, postRepo, posts, nil, 0),
		QRCodes:    service.NewQRCodeService(store),
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return ctx, cleanup
}

// mockAuth 模拟认证中间件
func mockAuth(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

// dataMap 把响应的 data 字段转为 map
func dataMap(t *testing.T, resp response.Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return data
}

// dataList 把响应的 data 字段转为切片
func dataList(t *testing.T, resp response.Response) []interface{} {
	t.Helper()
	data, ok := resp.Data.([]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return data
}
