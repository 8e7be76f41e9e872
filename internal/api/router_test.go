package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/config"
	"github.com/qs3c/wallpaper_server/internal/api/handler"
	"github.com/qs3c/wallpaper_server/internal/pkg/jwt"
	"github.com/qs3c/wallpaper_server/internal/pkg/moderation"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
	"github.com/qs3c/wallpaper_server/internal/repository"
	"github.com/qs3c/wallpaper_server/internal/service"
	"github.com/qs3c/wallpaper_server/internal/testutil"
)

const testSecret = "router-test-secret"

func setupEngine(t *testing.T) (*gin.Engine, *gorm.DB, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "test"},
		JWT:     config.JWTConfig{Secret: testSecret, ExpireHours: 1},
		Storage: config.StorageConfig{Driver: storage.DriverLocal, BaseDir: t.TempDir(), BaseURL: "http://localhost/static"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Upload: config.UploadConfig{
			MaxSize:           1 << 20,
			AvatarMaxSize:     64 << 10,
			ThumbnailWidth:    16,
			AllowedExtensions: []string{".png"},
		},
	}
	store := storage.NewDiskStorage(cfg.Storage.BaseDir, cfg.Storage.BaseURL)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	wallpaperRepo := repository.NewWallpaperRepository(db)
	tagRepo := repository.NewTagRepository(db)
	topicRepo := repository.NewTopicRepository(db)

	users := service.NewUserService(db, userRepo, repository.NewFollowRepository(db), postRepo, wallpaperRepo, store, cfg)
	wallpapers := service.NewWallpaperService(db, wallpaperRepo, tagRepo, userRepo, store,
		moderation.NewClient(&cfg.Moderation), nil, 0)
	comments := service.NewCommentService(db, repository.NewCommentRepository(db), postRepo)
	posts := service.NewPostService(db, postRepo, topicRepo, comments, comments)

	router := NewRouter(
		handler.NewAuthHandler(service.NewAuthService(userRepo, users, cfg)),
		handler.NewUserHandler(users, wallpapers),
		handler.NewWallpaperHandler(wallpapers, service.NewUploadService(store, cfg)),
		handler.NewTagHandler(service.NewTagService(tagRepo)),
		handler.NewPostHandler(posts),
		handler.NewCommentHandler(comments),
		handler.NewTopicHandler(service.NewTopicService(topicRepo, postRepo, posts, nil, 0)),
		handler.NewQRCodeHandler(service.NewQRCodeService(store)),
		users.IsAdmin,
		cfg,
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return router.Setup(), db, cleanup
}

func request(t *testing.T, engine http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	token, err := jwt.GenerateToken(userID, testSecret, 1)
	require.NoError(t, err)
	return token
}

func TestRouter_PublicRoutes(t *testing.T) {
	engine, _, cleanup := setupEngine(t)
	defer cleanup()

	for _, path := range []string{
		"/api/v1/wallpapers",
		"/api/v1/wallpapers/hot",
		"/api/v1/tags",
		"/api/v1/posts",
		"/api/v1/topics",
		"/api/v1/topics/hot",
		"/api/v1/users/top",
	} {
		w := request(t, engine, "GET", path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"), path)
	}
}

func TestRouter_RequiresAuth(t *testing.T) {
	engine, _, cleanup := setupEngine(t)
	defer cleanup()

	w := request(t, engine, "POST", "/api/v1/posts", "", map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(t, engine, "GET", "/api/v1/user/profile", "bad-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminRoutes(t *testing.T) {
	engine, db, cleanup := setupEngine(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	admin := testutil.TestUser(t, db, testutil.AsAdmin())

	w := request(t, engine, "POST", "/api/v1/tags", tokenFor(t, user.ID), map[string]string{"name": "space"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(t, engine, "POST", "/api/v1/tags", tokenFor(t, admin.ID), map[string]string{"name": "space"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(t, engine, "GET", "/api/v1/admin/users", tokenFor(t, admin.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CommentFlow(t *testing.T) {
	engine, db, cleanup := setupEngine(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	token := tokenFor(t, user.ID)

	w := request(t, engine, "POST", "/api/v1/posts", token, map[string]string{"content": "first"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := "/api/v1/posts/" + strconv.FormatInt(created.Data.ID, 10) + "/comments"
	w = request(t, engine, "POST", path, token, map[string]string{"content": "nice"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(t, engine, "GET", path, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(t, engine, "DELETE", "/api/v1/posts/"+strconv.FormatInt(created.Data.ID, 10), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaticPath(t *testing.T) {
	assert.Equal(t, "/static", staticPath("http://127.0.0.1:5000/static"))
	assert.Equal(t, "/files", staticPath("https://cdn.example.com/files"))
	assert.Equal(t, "/static", staticPath("http://127.0.0.1:5000"))
}
