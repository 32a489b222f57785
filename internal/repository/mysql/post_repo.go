package mysql

import (
	"github.com/DennisDemir24/hobby-link/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, id).Error
	return &post, err
}

// ListByCommunity 社区内已发布帖子，新帖在前
func (r *PostRepository) ListByCommunity(communityID uint64) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.
		Where("community_id = ? AND published = ?", communityID, true).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Save(post).Error
}

// DeleteCascade 帖子及其评论、点赞一并删除；调用方负责事务边界
func (r *PostRepository) DeleteCascade(postID uint64) error {
	if err := r.DB.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	if err := r.DB.Where("post_id = ?", postID).Delete(&model.PostLike{}).Error; err != nil {
		return err
	}
	return r.DB.Delete(&model.Post{}, postID).Error
}
