package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/DennisDemir24/hobby-link/internal/apperr"
	"github.com/DennisDemir24/hobby-link/internal/identity"
	"github.com/DennisDemir24/hobby-link/internal/model"
	"github.com/DennisDemir24/hobby-link/internal/repository/mysql"

	"gorm.io/gorm"
)

type UserService struct {
	repo *mysql.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		repo: &mysql.UserRepository{DB: db},
	}
}

// EnsureUser 懒注册：首次动作时按 subject id 落一条本地用户。
// 幂等插入 + 回读，同一新用户并发首访不会冲突报错。
func (s *UserService) EnsureUser(ctx context.Context, sub *identity.Subject) (*model.User, error) {
	if sub == nil || sub.ID == "" {
		return nil, apperr.Unauthorized("unauthorized")
	}

	user, err := s.repo.FindBySubject(sub.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}

	// 身份提供方可能没回邮箱/昵称，给兜底值
	email := sub.Email
	if email == "" {
		email = fmt.Sprintf("user-%s@example.com", sub.ID)
	}
	name := sub.Name
	if name == "" {
		name = "User"
	}

	if err := s.repo.CreateIfAbsent(&model.User{
		SubjectID: sub.ID,
		Email:     email,
		Name:      name,
		ImageURL:  sub.ImageURL,
	}); err != nil {
		return nil, apperr.Internal(err)
	}

	// 插入被并发抢先时这里拿到已有行
	user, err = s.repo.FindBySubject(sub.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}
