package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/wallpaper_server/internal/model"
	"github.com/qs3c/wallpaper_server/internal/testutil"
)

func TestPostRepository_ListWithUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostRepository(db)
	user := testutil.TestUser(t, db)
	first := testutil.TestPost(t, db, user.ID, "first")
	second := testutil.TestPost(t, db, user.ID, "second")

	posts, err := repo.ListWithUser()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
	require.NotNil(t, posts[0].User)
	assert.Equal(t, user.Username, posts[0].User.Username)

	posts, err = repo.ListByIDsWithUser([]int64{first.ID})
	require.NoError(t, err)
	require.Len(t, posts, 1)

	posts, err = repo.ListByIDsWithUser(nil)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_IncrementViews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostRepository(db)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID, "hello")

	hit, err := repo.IncrementViews(post.ID)
	require.NoError(t, err)
	assert.True(t, hit)

	found, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Views)

	hit, err = repo.IncrementViews(99999)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestPostRepository_Likes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostRepository(db)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID, "hello")

	require.NoError(t, repo.CreateLike(user.ID, post.ID))
	require.NoError(t, repo.CreateLike(other.ID, post.ID))

	liked, err := repo.LikeExists(user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	// 唯一索引阻止重复点赞
	assert.Error(t, repo.CreateLike(user.ID, post.ID))

	likes, err := repo.ListLikesByPostIDs([]int64{post.ID})
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.NotNil(t, likes[0].User)

	require.NoError(t, repo.DeleteLike(user.ID, post.ID))
	liked, err = repo.LikeExists(user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, repo.DeleteLikesByPost(post.ID))
	assert.Zero(t, testutil.CountRows(t, db, &model.PostLike{}, "post_id = ?", post.ID))
}

func TestPostRepository_TopPosters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPostRepository(db)
	a := testutil.TestUser(t, db)
	b := testutil.TestUser(t, db)
	c := testutil.TestUser(t, db)
	d := testutil.TestUser(t, db)

	for i := 0; i < 3; i++ {
		testutil.TestPost(t, db, b.ID, "b")
	}
	for i := 0; i < 2; i++ {
		testutil.TestPost(t, db, c.ID, "c")
	}
	testutil.TestPost(t, db, a.ID, "a")
	testutil.TestPost(t, db, d.ID, "d")

	top, err := repo.TopPosters(3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, b.ID, top[0].UserID)
	assert.Equal(t, int64(3), top[0].PostCount)
	assert.Equal(t, c.ID, top[1].UserID)
	assert.Equal(t, a.ID, top[2].UserID)

	count, err := repo.CountByUserID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestTopicRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewTopicRepository(db)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID, "hello")
	other := testutil.TestPost(t, db, user.ID, "world")

	nature := testutil.TestTopic(t, db, "nature", 5)
	city := testutil.TestTopic(t, db, "city", 10)
	testutil.TestTopic(t, db, "anime", 1)
	space := testutil.TestTopic(t, db, "space", 7)

	require.NoError(t, repo.Bind(post.ID, nature.ID))
	require.NoError(t, repo.Bind(other.ID, nature.ID))
	require.NoError(t, repo.Bind(post.ID, city.ID))

	bound, err := repo.BindingExists(post.ID, nature.ID)
	require.NoError(t, err)
	assert.True(t, bound)

	counts, err := repo.CountPosts()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[nature.ID])
	assert.Equal(t, int64(1), counts[city.ID])

	hot, err := repo.ListHot(3)
	require.NoError(t, err)
	require.Len(t, hot, 3)
	assert.Equal(t, city.ID, hot[0].ID)
	assert.Equal(t, space.ID, hot[1].ID)
	assert.Equal(t, nature.ID, hot[2].ID)

	ids, err := repo.PostIDsByTopic(nature.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{post.ID, other.ID}, ids)

	bindings, err := repo.ListBindingsByPostIDs([]int64{post.ID})
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.NotNil(t, bindings[0].Topic)

	require.NoError(t, repo.IncrementViews(nature.ID))
	found, err := repo.GetByID(nature.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, found.ViewCount)

	require.NoError(t, repo.DeleteBindingsByPost(post.ID))
	assert.Zero(t, testutil.CountRows(t, db, &model.PostTopic{}, "post_id = ?", post.ID))
}
