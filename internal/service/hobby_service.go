package service

import (
	"context"

	"github.com/DennisDemir24/hobby-link/internal/apperr"
	"github.com/DennisDemir24/hobby-link/internal/model"
	"github.com/DennisDemir24/hobby-link/internal/repository/mysql"

	"gorm.io/gorm"
)

type HobbyService struct {
	repo *mysql.HobbyRepository
}

func NewHobbyService(db *gorm.DB) *HobbyService {
	return &HobbyService{
		repo: &mysql.HobbyRepository{DB: db},
	}
}

// List 全部爱好，按名称字母序
func (s *HobbyService) List(ctx context.Context) ([]model.Hobby, error) {
	list, err := s.repo.ListAlpha()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}
