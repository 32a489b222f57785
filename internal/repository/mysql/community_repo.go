package mysql

import (
	"github.com/DennisDemir24/hobby-link/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func (r *CommunityRepository) Create(c *model.Community) error {
	return r.DB.Create(c).Error
}

func (r *CommunityRepository) FindByID(id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.First(&community, id).Error
	return &community, err
}

// List hobbyID=0 时返回全部社区
func (r *CommunityRepository) List(hobbyID uint64) ([]model.Community, error) {
	var list []model.Community
	q := r.DB.Order("id desc")
	if hobbyID > 0 {
		q = q.Where("hobby_id = ?", hobbyID)
	}
	err := q.Find(&list).Error
	return list, err
}
