package service

import (
	"context"
	"testing"

	"github.com/DennisDemir24/hobby-link/internal/apperr"
	"github.com/DennisDemir24/hobby-link/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture 创建者 admin + 一名普通成员 member + 一个局外人 outsider
type postFixture struct {
	db        *gorm.DB
	posts     *PostService
	comments  *CommentService
	community *model.Community
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	db := setupDB(t)
	hobby := seedHobby(t, db, "Bouldering")

	communities := NewCommunityService(db, noRev())
	ctx := context.Background()
	community, _, err := communities.Create(ctx, subject("admin"), "Climbers", "", hobby.ID)
	require.NoError(t, err)
	_, err = communities.Join(ctx, subject("member"), community.ID)
	require.NoError(t, err)

	return &postFixture{
		db:        db,
		posts:     NewPostService(db, noRev(), nil),
		comments:  NewCommentService(db, noRev()),
		community: community,
	}
}

func TestCreatePost_MemberOnly(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, _, err := f.posts.Create(ctx, subject("outsider"), f.community.ID, "hi", "body", nil)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	var count int64
	require.NoError(t, f.db.Model(&model.Post{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	post, _, err := f.posts.Create(ctx, subject("member"), f.community.ID, "First ascent", "crimpy", []string{"beta"})
	require.NoError(t, err)
	assert.True(t, post.Published)
	assert.Equal(t, []string{"beta"}, post.Tags)
}

func TestCreatePost_CommunityNotFound(t *testing.T) {
	f := newPostFixture(t)

	_, _, err := f.posts.Create(context.Background(), subject("member"), 9999, "hi", "body", nil)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestListPosts_NewestFirstWithCounts(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	p1, _, err := f.posts.Create(ctx, subject("member"), f.community.ID, "one", "", nil)
	require.NoError(t, err)
	p2, _, err := f.posts.Create(ctx, subject("admin"), f.community.ID, "two", "", nil)
	require.NoError(t, err)

	_, _, err = f.comments.Create(ctx, subject("admin"), p1.ID, "nice")
	require.NoError(t, err)
	_, _, err = f.comments.Create(ctx, subject("member"), p1.ID, "thanks")
	require.NoError(t, err)

	list, err := f.posts.List(ctx, f.community.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, p2.ID, list[0].ID)
	assert.Equal(t, p1.ID, list[1].ID)
	assert.EqualValues(t, 2, list[1].CommentCount)
	assert.Equal(t, "User member", list[1].Author.Name)
	assert.True(t, list[0].Published)
}

func TestGetPost_Detail(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, _, err := f.posts.Create(ctx, subject("member"), f.community.ID, "one", "body", nil)
	require.NoError(t, err)
	c1, _, err := f.comments.Create(ctx, subject("admin"), post.ID, "first")
	require.NoError(t, err)
	c2, _, err := f.comments.Create(ctx, subject("member"), post.ID, "second")
	require.NoError(t, err)
	_, _, err = f.posts.ToggleLike(ctx, subject("admin"), post.ID)
	require.NoError(t, err)

	detail, err := f.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 2)
	// 新评论在前
	assert.Equal(t, c2.ID, detail.Comments[0].ID)
	assert.Equal(t, c1.ID, detail.Comments[1].ID)
	assert.EqualValues(t, 2, detail.CommentCount)
	assert.EqualValues(t, 1, detail.LikeCount)
	assert.Len(t, detail.LikedUserIDs, 1)

	_, err = f.posts.Get(ctx, 777)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestEditPost_AuthorOnly(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, _, err := f.posts.Create(ctx, subject("member"), f.community.ID, "one", "body", []string{"a"})
	require.NoError(t, err)

	// 管理员也改不了别人的帖子
	_, _, err = f.posts.Edit(ctx, subject("admin"), post.ID, "hacked", "", nil)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	updated, _, err := f.posts.Edit(ctx, subject("member"), post.ID, "one v2", "better", nil)
	require.NoError(t, err)
	assert.Equal(t, "one v2", updated.Title)
	// tags 不传则保留原值
	assert.Equal(t, []string{"a"}, updated.Tags)

	updated, _, err = f.posts.Edit(ctx, subject("member"), post.ID, "one v3", "best", []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, updated.Tags)
}

func TestDeletePost_AuthorOrAdmin_Cascades(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, _, err := f.posts.Create(ctx, subject("member"), f.community.ID, "one", "body", nil)
	require.NoError(t, err)
	_, _, err = f.comments.Create(ctx, subject("admin"), post.ID, "nice")
	require.NoError(t, err)
	_, _, err = f.posts.ToggleLike(ctx, subject("admin"), post.ID)
	require.NoError(t, err)

	// 局外人删不了
	_, err = f.posts.Delete(ctx, subject("outsider"), post.ID)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	// 管理员可删非自己的帖子
	_, err = f.posts.Delete(ctx, subject("admin"), post.ID)
	require.NoError(t, err)

	var posts, comments, likes int64
	require.NoError(t, f.db.Model(&model.Post{}).Where("id = ?", post.ID).Count(&posts).Error)
	require.NoError(t, f.db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	require.NoError(t, f.db.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	assert.Zero(t, posts)
	assert.Zero(t, comments)
	assert.Zero(t, likes)
}

func TestToggleLike(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, _, err := f.posts.Create(ctx, subject("member"), f.community.ID, "one", "body", nil)
	require.NoError(t, err)

	liked, _, err := f.posts.ToggleLike(ctx, subject("member"), post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var count int64
	require.NoError(t, f.db.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	liked, _, err = f.posts.ToggleLike(ctx, subject("member"), post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, f.db.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var p model.Post
	require.NoError(t, f.db.First(&p, post.ID).Error)
	assert.EqualValues(t, 0, p.LikeCount)

	_, _, err = f.posts.ToggleLike(ctx, subject("member"), 4242)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

// 点赞与出箱事件同一事务：事件写不进去时点赞行也必须回滚
func TestToggleLike_RollsBackWithOutbox(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, _, err := f.posts.Create(ctx, subject("member"), f.community.ID, "one", "body", nil)
	require.NoError(t, err)

	require.NoError(t, f.db.Migrator().DropTable(&model.NotifyOutbox{}))

	_, _, err = f.posts.ToggleLike(ctx, subject("member"), post.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInternal))

	// 失败的动作不能留下半截状态
	var count int64
	require.NoError(t, f.db.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var p model.Post
	require.NoError(t, f.db.First(&p, post.ID).Error)
	assert.EqualValues(t, 0, p.LikeCount)
}
