package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/DennisDemir24/hobby-link/internal/apperr"
	"github.com/DennisDemir24/hobby-link/internal/identity"
	"github.com/DennisDemir24/hobby-link/internal/model"
	"github.com/DennisDemir24/hobby-link/internal/notify"
	"github.com/DennisDemir24/hobby-link/internal/repository/mysql"
	"github.com/DennisDemir24/hobby-link/internal/revalidate"

	"gorm.io/gorm"
)

type CommunityService struct {
	db    *gorm.DB
	users *UserService
	rev   *revalidate.Invalidator
}

// CommunityInfo 社区列表项，带成员信息
type CommunityInfo struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HobbyID     uint64   `json:"hobby_id"`
	CreatorID   uint64   `json:"creator_id"`
	MemberIDs   []uint64 `json:"member_ids"`
	MemberCount int      `json:"member_count"`
}

func NewCommunityService(db *gorm.DB, rev *revalidate.Invalidator) *CommunityService {
	return &CommunityService{
		db:    db,
		users: NewUserService(db),
		rev:   rev,
	}
}

// Create 建社区：校验入参，解析爱好，建社区并把创建者设为管理员。
// 社区、管理员成员、失效事件同一事务落库。
func (s *CommunityService) Create(ctx context.Context, sub *identity.Subject, name, description string, hobbyID uint64) (*model.Community, []string, error) {
	user, err := s.users.EnsureUser(ctx, sub)
	if err != nil {
		return nil, nil, err
	}

	if n := utf8.RuneCountInString(name); n < 3 || n > 50 {
		return nil, nil, apperr.Validation("community name must be 3-50 characters")
	}
	if utf8.RuneCountInString(description) > 500 {
		return nil, nil, apperr.Validation("description must be at most 500 characters")
	}

	community := &model.Community{
		Name:        name,
		Description: description,
		CreatorID:   user.ID,
	}
	var stale []string

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hobbyRepo := &mysql.HobbyRepository{DB: tx}

		// 未指定爱好时挂到兜底的 General 下；指定了就必须存在
		if hobbyID == 0 {
			general, err := hobbyRepo.FindOrCreateGeneral()
			if err != nil {
				return apperr.Internal(err)
			}
			community.HobbyID = general.ID
		} else {
			hobby, err := hobbyRepo.FindByID(hobbyID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("hobby not found")
				}
				return apperr.Internal(err)
			}
			community.HobbyID = hobby.ID
		}

		if err := (&mysql.CommunityRepository{DB: tx}).Create(community); err != nil {
			return apperr.Internal(err)
		}

		memberRepo := &mysql.CommunityMemberRepository{DB: tx}
		if _, err := memberRepo.Join(&model.CommunityMember{
			CommunityID: community.ID,
			UserID:      user.ID,
			Role:        model.RoleAdmin,
		}); err != nil {
			return apperr.Internal(err)
		}

		stale = []string{
			revalidate.CommunityListPath(),
			revalidate.HobbyPath(community.HobbyID),
		}
		outbox := &mysql.OutboxRepository{DB: tx}
		if err := outbox.Insert(model.EventRevalidate, community.ID, notify.NewRevalidatePayload(stale)); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, asAppErr(err)
	}

	s.rev.Invalidate(ctx, stale...)
	return community, stale, nil
}

// Join 加入社区：社区必须存在，重复加入报冲突
func (s *CommunityService) Join(ctx context.Context, sub *identity.Subject, communityID uint64) ([]string, error) {
	user, err := s.users.EnsureUser(ctx, sub)
	if err != nil {
		return nil, err
	}

	var stale []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		community, err := (&mysql.CommunityRepository{DB: tx}).FindByID(communityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("community not found")
			}
			return apperr.Internal(err)
		}

		memberRepo := &mysql.CommunityMemberRepository{DB: tx}
		inserted, err := memberRepo.Join(&model.CommunityMember{
			CommunityID: communityID,
			UserID:      user.ID,
			Role:        model.RoleMember,
		})
		if err != nil {
			return apperr.Internal(err)
		}
		// 唯一键兜底：并发重复加入也只会落一行
		if !inserted {
			return apperr.Conflict("already a member of this community")
		}

		stale = []string{
			revalidate.CommunityPath(communityID),
			revalidate.HobbyPath(community.HobbyID),
		}
		outbox := &mysql.OutboxRepository{DB: tx}
		if err := outbox.Insert(model.EventRevalidate, communityID, notify.NewRevalidatePayload(stale)); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppErr(err)
	}

	s.rev.Invalidate(ctx, stale...)
	return stale, nil
}

// ListByHobby hobbyID=0 时列出全部社区
func (s *CommunityService) ListByHobby(ctx context.Context, hobbyID uint64) ([]CommunityInfo, error) {
	repo := &mysql.CommunityRepository{DB: s.db}
	memberRepo := &mysql.CommunityMemberRepository{DB: s.db}

	list, err := repo.List(hobbyID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	out := make([]CommunityInfo, 0, len(list))
	for _, c := range list {
		memberIDs, err := memberRepo.ListUserIDs(c.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, CommunityInfo{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			HobbyID:     c.HobbyID,
			CreatorID:   c.CreatorID,
			MemberIDs:   memberIDs,
			MemberCount: len(memberIDs),
		})
	}
	return out, nil
}
