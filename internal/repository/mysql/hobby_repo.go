package mysql

import (
	"github.com/DennisDemir24/hobby-link/internal/model"

	"gorm.io/gorm"
)

type HobbyRepository struct {
	DB *gorm.DB
}

func (r *HobbyRepository) FindByID(id uint64) (*model.Hobby, error) {
	var hobby model.Hobby
	err := r.DB.First(&hobby, id).Error
	return &hobby, err
}

// ListAlpha 按名称字母序返回全部爱好
func (r *HobbyRepository) ListAlpha() ([]model.Hobby, error) {
	var list []model.Hobby
	err := r.DB.Order("name asc").Find(&list).Error
	return list, err
}

// FindOrCreateGeneral 兜底爱好：不存在则创建
func (r *HobbyRepository) FindOrCreateGeneral() (*model.Hobby, error) {
	hobby := model.Hobby{
		Name:        model.GeneralHobbyName,
		Description: "General hobby for communities without a specific hobby",
		Tags:        []string{"general"},
	}
	err := r.DB.Where("name = ?", model.GeneralHobbyName).FirstOrCreate(&hobby).Error
	return &hobby, err
}
