package mysql

import (
	"github.com/DennisDemir24/hobby-link/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

// Join 幂等插入：若已存在 (community_id, user_id) 则不报错。
// 返回本次是否真正插入了新行，重复加入由调用方判定。
func (r *CommunityMemberRepository) Join(member *model.CommunityMember) (bool, error) {
	tx := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member)
	return tx.RowsAffected > 0, tx.Error
}

func (r *CommunityMemberRepository) IsMember(communityID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityMemberRepository) IsAdmin(communityID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ? AND role >= ?", communityID, userID, model.RoleAdmin).
		Count(&count).Error
	return count > 0, err
}

// ListUserIDs 社区全部成员的用户 id
func (r *CommunityMemberRepository) ListUserIDs(communityID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("community_id = ?", communityID).
		Order("id asc").
		Pluck("user_id", &ids).Error
	return ids, err
}
