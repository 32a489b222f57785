package mysql

import (
	"context"
	"testing"

	"github.com/DennisDemir24/hobby-link/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func likeDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Post{}, &model.PostLike{}))
	return db
}

func TestPostLikeToggle(t *testing.T) {
	db := likeDB(t)
	post := &model.Post{CommunityID: 1, AuthorID: 1, Title: "t", Published: true}
	require.NoError(t, db.Create(post).Error)
	repo := &PostLikeRepository{DB: db}
	ctx := context.Background()

	liked, err := repo.Toggle(ctx, 2, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	cnt, err := repo.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cnt)

	// 再点一次取消，行与计数都回到零
	liked, err = repo.Toggle(ctx, 2, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	rows, err := repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)

	cnt, err = repo.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestPostLikeToggleManyUsers(t *testing.T) {
	db := likeDB(t)
	post := &model.Post{CommunityID: 1, AuthorID: 1, Title: "t", Published: true}
	require.NoError(t, db.Create(post).Error)
	repo := &PostLikeRepository{DB: db}
	ctx := context.Background()

	for uid := uint64(2); uid <= 5; uid++ {
		_, err := repo.Toggle(ctx, uid, post.ID)
		require.NoError(t, err)
	}

	ids, err := repo.ListUserIDsByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3, 4, 5}, ids)

	ok, err := repo.IsLiked(ctx, 3, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsLiked(ctx, 9, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLikeCountNeverNegative(t *testing.T) {
	db := likeDB(t)
	// 计数列被外部写歪成 0，但点赞行存在
	post := &model.Post{CommunityID: 1, AuthorID: 1, Title: "t", Published: true}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(&model.PostLike{UserID: 2, PostID: post.ID}).Error)
	repo := &PostLikeRepository{DB: db}
	ctx := context.Background()

	liked, err := repo.Toggle(ctx, 2, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	cnt, err := repo.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, cnt)
}
