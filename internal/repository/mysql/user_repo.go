package mysql

import (
	"github.com/DennisDemir24/hobby-link/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) FindBySubject(subjectID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("subject_id = ?", subjectID).First(&user).Error
	return &user, err
}

// CreateIfAbsent 幂等插入：并发首次写入同一 subject_id 不报错
func (r *UserRepository) CreateIfAbsent(user *model.User) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject_id"}},
		DoNothing: true,
	}).Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

// FindByIDs 批量查询，返回 id -> user
func (r *UserRepository) FindByIDs(ids []uint64) (map[uint64]model.User, error) {
	out := make(map[uint64]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var list []model.User
	if err := r.DB.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, u := range list {
		out[u.ID] = u
	}
	return out, nil
}
