package mysql

import (
	"context"

	"github.com/DennisDemir24/hobby-link/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostLikeRepository struct {
	DB *gorm.DB
}

// Toggle 点赞开关：已点赞则取消，未点赞则插入。
// 条件删除 + 唯一键冲突忽略，并发双写不会产生两行。
// 调用方负责事务边界
func (r *PostLikeRepository) Toggle(ctx context.Context, userID, postID uint64) (bool, error) {
	db := r.DB.WithContext(ctx)
	res := db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostLike{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		// 计数防负数，误差由对账兜底
		err := db.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).
			Error
		return false, err
	}
	ins := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&model.PostLike{UserID: userID, PostID: postID})
	if ins.Error != nil {
		return false, ins.Error
	}
	if ins.RowsAffected == 0 {
		// 并发下另一请求已插入，视为已点赞
		return true, nil
	}
	err := db.Model(&model.Post{}).
		Where("id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).
		Error
	return true, err
}

func (r *PostLikeRepository) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostLikeRepository) GetLikeCount(ctx context.Context, postID uint64) (int64, error) {
	var p model.Post
	err := r.DB.WithContext(ctx).Select("id", "like_count").First(&p, postID).Error
	if err != nil {
		return 0, err
	}
	return p.LikeCount, nil
}

// ListUserIDsByPost 点赞该帖的用户 id
func (r *PostLikeRepository) ListUserIDsByPost(ctx context.Context, postID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// CountByPost 直接数行，对账或测试用
func (r *PostLikeRepository) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
