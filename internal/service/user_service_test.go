package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/wallpaper_server/config"
	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/model/dto"
	"github.com/qs3c/wallpaper_server/internal/pkg/storage"
	"github.com/qs3c/wallpaper_server/internal/repository"
	"github.com/qs3c/wallpaper_server/internal/testutil"
)

const testBaseURL = "http://127.0.0.1:5000/static"

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-for-testing",
			ExpireHours: 24,
		},
		Upload: config.UploadConfig{
			MaxSize:           1 << 20,
			AvatarMaxSize:     64 << 10,
			ThumbnailWidth:    16,
			AllowedExtensions: []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
		},
	}
}

// pngBytes 生成纯色 PNG
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setupUserService(t *testing.T) (*UserService, *gorm.DB, string, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	dir := t.TempDir()
	svc := NewUserService(
		db,
		repository.NewUserRepository(db),
		repository.NewFollowRepository(db),
		repository.NewPostRepository(db),
		repository.NewWallpaperRepository(db),
		storage.NewDiskStorage(dir, testBaseURL),
		testConfig(),
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return svc, db, dir, cleanup
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_GetProfile(t *testing.T) {
	svc, db, _, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithUsername("painter"))
	other := testutil.TestUser(t, db)
	testutil.TestPost(t, db, user.ID, "p1")
	testutil.TestPost(t, db, user.ID, "p2")
	mine := testutil.TestWallpaper(t, db, user.ID)
	theirs := testutil.TestWallpaper(t, db, other.ID)
	require.NoError(t, db.Create(&model.WallpaperLike{UserID: user.ID, WallpaperID: theirs.ID}).Error)
	require.NoError(t, db.Create(&model.WallpaperCollect{UserID: user.ID, WallpaperID: theirs.ID}).Error)
	require.NoError(t, db.Create(&model.WallpaperCollect{UserID: user.ID, WallpaperID: mine.ID}).Error)

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "painter", profile.Username)
	assert.Equal(t, int64(2), profile.PostCount)
	assert.Equal(t, int64(1), profile.WallpaperCount)
	assert.Equal(t, int64(1), profile.LikedCount)
	assert.Equal(t, int64(2), profile.CollectedCount)
	assert.Equal(t, "中国", profile.Country)

	_, err = svc.GetProfile(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, db, _, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	profile, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Nickname:    strPtr("  Neo "),
		Gender:      strPtr("male"),
		Birth:       strPtr("1999-12-31"),
		City:        strPtr("深圳"),
		Description: strPtr("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Neo", profile.Nickname)
	assert.Equal(t, "male", profile.Gender)
	assert.Equal(t, "1999-12-31", profile.Birth)
	assert.Equal(t, "深圳", profile.City)
	assert.Equal(t, "广东", profile.Province)
	assert.Equal(t, "hello", profile.Description)

	profile, err = svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Birth: strPtr("2001-02-03T10:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, "2001-02-03", profile.Birth)
	assert.Equal(t, "Neo", profile.Nickname)
}

func TestUserService_UpdateProfile_Errors(t *testing.T) {
	svc, db, _, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Gender: strPtr("robot")})
	assert.ErrorIs(t, err, ErrInvalidGender)

	_, err = svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Birth: strPtr("31/12/1999")})
	assert.ErrorIs(t, err, ErrInvalidBirth)

	_, err = svc.UpdateProfile(99999, &dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UploadAvatar(t *testing.T) {
	svc, db, dir, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	url, err := svc.UploadAvatar(user.ID, bytes.NewReader(pngBytes(t, 4, 4)), "me.PNG")
	require.NoError(t, err)
	assert.Contains(t, url, testBaseURL+"/avatars/")

	key := url[len(testBaseURL)+1:]
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)

	// 再次上传会清理旧头像
	newURL, err := svc.UploadAvatar(user.ID, bytes.NewReader(pngBytes(t, 4, 4)), "me2.png")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, newURL, profile.AvatarURL)
}

func TestUserService_UploadAvatar_Errors(t *testing.T) {
	svc, db, _, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := svc.UploadAvatar(user.ID, bytes.NewReader([]byte("MZ")), "virus.exe")
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = svc.UploadAvatar(user.ID, bytes.NewReader(make([]byte, 65<<10)), "big.png")
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = svc.UploadAvatar(user.ID, bytes.NewReader(nil), "empty.png")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = svc.UploadAvatar(user.ID, bytes.NewReader([]byte("not an image")), "fake.png")
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestUserService_UpdateBackground(t *testing.T) {
	svc, db, _, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	assert.ErrorIs(t, svc.UpdateBackground(user.ID, "  "), ErrEmptyBackground)
	require.NoError(t, svc.UpdateBackground(user.ID, "http://img/bg.png"))

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://img/bg.png", profile.BackgroundURL)
}

func TestUserService_FollowUnfollow(t *testing.T) {
	svc, db, _, cleanup := setupUserService(t)
	defer cleanup()

	alice := testutil.TestUser(t, db)
	bob := testutil.TestUser(t, db)

	require.NoError(t, svc.Follow(alice.ID, bob.ID))

	counts, err := svc.FollowCounts(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.FollowersCount)
	assert.Equal(t, 0, counts.FollowCount)

	counts, err = svc.FollowCounts(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.FollowCount)

	status, err := svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, status.Following)

	assert.ErrorIs(t, svc.Follow(alice.ID, bob.ID), ErrAlreadyFollowing)

	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))
	counts, err = svc.FollowCounts(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.FollowersCount)

	assert.ErrorIs(t, svc.Unfollow(alice.ID, bob.ID), ErrNotFollowing)

	counts, err = svc.FollowCounts(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.FollowCount)
}

func TestUserService_Follow_Errors(t *testing.T) {
	svc, db, _, cleanup := setupUserService(t)
	defer cleanup()

	alice := testutil.TestUser(t, db)

	assert.ErrorIs(t, svc.Follow(alice.ID, alice.ID), ErrFollowSelf)
	assert.ErrorIs(t, svc.Follow(alice.ID, 99999), ErrUserNotFound)
	assert.ErrorIs(t, svc.Unfollow(alice.ID, 99999), ErrUserNotFound)

	_, err := svc.FollowCounts(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_TopUsers(t *testing.T) {
	svc, db, _, cleanup := setupUserService(t)
	defer cleanup()

	users := make([]*model.User, 4)
	for i := range users {
		users[i] = testutil.TestUser(t, db)
	}
	for i, n := range []int{1, 3, 2, 5} {
		for j := 0; j < n; j++ {
			testutil.TestPost(t, db, users[i].ID, "post")
		}
	}

	top, err := svc.TopUsers()
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, users[3].ID, top[0].ID)
	assert.Equal(t, int64(5), top[0].PostCount)
	assert.Equal(t, users[1].ID, top[1].ID)
	assert.Equal(t, users[2].ID, top[2].ID)
}

func TestUserService_ListUsersAndIsAdmin(t *testing.T) {
	svc, db, _, cleanup := setupUserService(t)
	defer cleanup()

	admin := testutil.TestUser(t, db, testutil.AsAdmin())
	user := testutil.TestUser(t, db)

	all, err := svc.ListUsers("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	admins, err := svc.ListUsers(model.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, admin.ID, admins[0].ID)

	ok, err := svc.IsAdmin(admin.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAdmin(user.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsAdmin(99999)
	require.NoError(t, err)
	assert.False(t, ok)
}
