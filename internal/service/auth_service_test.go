package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/jwt"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
	"github.com/qs3c/wallpaper_server/internal/repository"
	"github.com/qs3c/wallpaper_server/internal/testutil"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testConfig()
	userRepo := repository.NewUserRepository(db)
	users := NewUserService(
		db,
		userRepo,
		repository.NewFollowRepository(db),
		repository.NewPostRepository(db),
		repository.NewWallpaperRepository(db),
		storage.NewDiskStorage(t.TempDir(), testBaseURL),
		cfg,
	)
	service := NewAuthService(userRepo, users, cfg)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register_Success(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	resp, err := service.Register(&dto.RegisterRequest{
		Email:    "NewUser@Example.com",
		Username: "newuser",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.UserID)

	claims, err := jwt.ParseToken(resp.Token, "test-secret-key-for-testing")
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)

	var user model.User
	require.NoError(t, db.First(&user, resp.UserID).Error)
	assert.Equal(t, "newuser@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	testutil.TestUser(t, db, testutil.WithUsername("taken"), testutil.WithEmail("taken@example.com"))

	_, err := service.Register(&dto.RegisterRequest{Email: "taken@example.com", Username: "fresh", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = service.Register(&dto.RegisterRequest{Email: "fresh@example.com", Username: "taken", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	user := testutil.TestUser(t, db,
		testutil.WithEmail("login@example.com"),
		testutil.WithPasswordHash(hashPassword(t, "secret123")),
	)
	testutil.TestPost(t, db, user.ID, "hi")
	testutil.TestWallpaper(t, db, user.ID)

	resp, err := service.Login(&dto.LoginRequest{Email: "login@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, int64(1), resp.User.PostCount)
	assert.Equal(t, int64(1), resp.User.WallpaperCount)
	assert.NotEmpty(t, resp.User.LastLoginAt)

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.NotNil(t, reloaded.LastLoginAt)
}

func TestAuthService_Login_Errors(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	testutil.TestUser(t, db,
		testutil.WithEmail("user@example.com"),
		testutil.WithPasswordHash(hashPassword(t, "secret123")),
	)
	banned := testutil.TestUser(t, db,
		testutil.WithEmail("banned@example.com"),
		testutil.WithPasswordHash(hashPassword(t, "secret123")),
	)
	require.NoError(t, db.Model(banned).Update("status", model.UserStatusBanned).Error)

	tests := []struct {
		name    string
		req     *dto.LoginRequest
		wantErr error
	}{
		{"unknown email", &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"}, ErrUserNotFound},
		{"wrong password", &dto.LoginRequest{Email: "user@example.com", Password: "wrong"}, ErrInvalidCredentials},
		{"banned", &dto.LoginRequest{Email: "banned@example.com", Password: "secret123"}, ErrUserBanned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
