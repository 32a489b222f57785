package service

import (
	"context"
	"strings"
	"testing"

	"github.com/DennisDemir24/hobby-link/internal/apperr"
	"github.com/DennisDemir24/hobby-link/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommunity_CreatorBecomesAdmin(t *testing.T) {
	db := setupDB(t)
	svc := NewCommunityService(db, noRev())
	hobby := seedHobby(t, db, "Bouldering")

	community, stale, err := svc.Create(context.Background(), subject("user_a"), "Climbers", "go up", hobby.ID)
	require.NoError(t, err)
	assert.NotZero(t, community.ID)
	assert.Equal(t, hobby.ID, community.HobbyID)
	assert.Contains(t, stale, "/community")

	var members []model.CommunityMember
	require.NoError(t, db.Where("community_id = ?", community.ID).Find(&members).Error)
	require.Len(t, members, 1)
	assert.Equal(t, model.RoleAdmin, members[0].Role)
	assert.Equal(t, community.CreatorID, members[0].UserID)
}

func TestCreateCommunity_Validation(t *testing.T) {
	db := setupDB(t)
	svc := NewCommunityService(db, noRev())
	ctx := context.Background()

	_, _, err := svc.Create(ctx, subject("user_a"), "ab", "", 0)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, _, err = svc.Create(ctx, subject("user_a"), strings.Repeat("x", 51), "", 0)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, _, err = svc.Create(ctx, subject("user_a"), "Climbers", strings.Repeat("d", 501), 0)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, _, err = svc.Create(ctx, nil, "Climbers", "", 0)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestCreateCommunity_UnknownHobby(t *testing.T) {
	db := setupDB(t)
	svc := NewCommunityService(db, noRev())

	_, _, err := svc.Create(context.Background(), subject("user_a"), "Climbers", "", 999)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	// 校验失败不能留下半截数据
	var count int64
	require.NoError(t, db.Model(&model.Community{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateCommunity_DefaultsToGeneralHobby(t *testing.T) {
	db := setupDB(t)
	svc := NewCommunityService(db, noRev())

	community, _, err := svc.Create(context.Background(), subject("user_a"), "Anything Goes", "", 0)
	require.NoError(t, err)

	var general model.Hobby
	require.NoError(t, db.Where("name = ?", model.GeneralHobbyName).First(&general).Error)
	assert.Equal(t, general.ID, community.HobbyID)

	// 兜底爱好只建一次
	_, _, err = svc.Create(context.Background(), subject("user_b"), "Misc Corner", "", 0)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&model.Hobby{}).Where("name = ?", model.GeneralHobbyName).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestJoinCommunity(t *testing.T) {
	db := setupDB(t)
	svc := NewCommunityService(db, noRev())
	hobby := seedHobby(t, db, "Bouldering")
	ctx := context.Background()

	community, _, err := svc.Create(ctx, subject("user_a"), "Climbers", "", hobby.ID)
	require.NoError(t, err)

	stale, err := svc.Join(ctx, subject("user_b"), community.ID)
	require.NoError(t, err)
	assert.Contains(t, stale, "/community/"+itoa(community.ID))

	var member model.CommunityMember
	require.NoError(t, db.Where("community_id = ?", community.ID).
		Joins("JOIN users ON users.id = community_members.user_id").
		Where("users.subject_id = ?", "user_b").
		First(&member).Error)
	assert.Equal(t, model.RoleMember, member.Role)
}

func TestJoinCommunity_TwiceIsConflict(t *testing.T) {
	db := setupDB(t)
	svc := NewCommunityService(db, noRev())
	hobby := seedHobby(t, db, "Bouldering")
	ctx := context.Background()

	community, _, err := svc.Create(ctx, subject("user_a"), "Climbers", "", hobby.ID)
	require.NoError(t, err)

	_, err = svc.Join(ctx, subject("user_b"), community.ID)
	require.NoError(t, err)
	_, err = svc.Join(ctx, subject("user_b"), community.ID)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	// 不会出现第二行成员
	var count int64
	require.NoError(t, db.Model(&model.CommunityMember{}).Where("community_id = ?", community.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count) // 创建者 + user_b
}

func TestJoinCommunity_NotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewCommunityService(db, noRev())

	_, err := svc.Join(context.Background(), subject("user_b"), 12345)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestListByHobby(t *testing.T) {
	db := setupDB(t)
	svc := NewCommunityService(db, noRev())
	bouldering := seedHobby(t, db, "Bouldering")
	chess := seedHobby(t, db, "Chess")
	ctx := context.Background()

	c1, _, err := svc.Create(ctx, subject("user_a"), "Climbers", "", bouldering.ID)
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, subject("user_b"), "Pawn Stars", "", chess.ID)
	require.NoError(t, err)
	_, err = svc.Join(ctx, subject("user_b"), c1.ID)
	require.NoError(t, err)

	list, err := svc.ListByHobby(ctx, bouldering.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c1.ID, list[0].ID)
	assert.Equal(t, 2, list[0].MemberCount)
	assert.Len(t, list[0].MemberIDs, 2)

	all, err := svc.ListByHobby(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
