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

const commentPreviewRunes = 120

type CommentService struct {
	db    *gorm.DB
	users *UserService
	rev   *revalidate.Invalidator
}

func NewCommentService(db *gorm.DB, rev *revalidate.Invalidator) *CommentService {
	return &CommentService{
		db:    db,
		users: NewUserService(db),
		rev:   rev,
	}
}

// Create 评论：必须是帖子所在社区的成员。
// 评论行、通知事件、失效事件同一事务落库。
func (s *CommentService) Create(ctx context.Context, sub *identity.Subject, postID uint64, content string) (*model.Comment, []string, error) {
	user, err := s.users.EnsureUser(ctx, sub)
	if err != nil {
		return nil, nil, err
	}
	if content == "" {
		return nil, nil, apperr.Validation("content required")
	}

	post, err := (&mysql.PostRepository{DB: s.db}).FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("post not found")
		}
		return nil, nil, apperr.Internal(err)
	}

	ok, err := (&mysql.CommunityMemberRepository{DB: s.db}).IsMember(post.CommunityID, user.ID)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if !ok {
		return nil, nil, apperr.Forbidden("you must be a member of the community to comment")
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: user.ID,
		Content:  content,
	}
	var stale []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := (&mysql.CommentRepository{DB: tx}).Create(comment); err != nil {
			return apperr.Internal(err)
		}
		outbox := &mysql.OutboxRepository{DB: tx}
		if err := outbox.Insert(model.EventComment, comment.ID,
			notify.NewCommentPayload(postID, comment.ID, user.ID, preview(content))); err != nil {
			return apperr.Internal(err)
		}
		stale = []string{
			revalidate.CommunityPath(post.CommunityID),
			revalidate.PostPath(post.CommunityID, postID),
		}
		return outbox.Insert(model.EventRevalidate, postID, notify.NewRevalidatePayload(stale))
	})
	if err != nil {
		return nil, nil, asAppErr(err)
	}

	s.rev.Invalidate(ctx, stale...)
	return comment, stale, nil
}

// Edit 只有作者本人可编辑
func (s *CommentService) Edit(ctx context.Context, sub *identity.Subject, commentID uint64, content string) (*model.Comment, []string, error) {
	user, err := s.users.EnsureUser(ctx, sub)
	if err != nil {
		return nil, nil, err
	}
	if content == "" {
		return nil, nil, apperr.Validation("content required")
	}

	repo := &mysql.CommentRepository{DB: s.db}
	comment, err := repo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("comment not found")
		}
		return nil, nil, apperr.Internal(err)
	}
	if comment.AuthorID != user.ID {
		return nil, nil, apperr.Forbidden("you can only edit your own comments")
	}

	post, err := (&mysql.PostRepository{DB: s.db}).FindByID(comment.PostID)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	comment.Content = content
	var stale []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := (&mysql.CommentRepository{DB: tx}).Update(comment); err != nil {
			return apperr.Internal(err)
		}
		stale = []string{
			revalidate.CommunityPath(post.CommunityID),
			revalidate.PostPath(post.CommunityID, post.ID),
		}
		outbox := &mysql.OutboxRepository{DB: tx}
		return outbox.Insert(model.EventRevalidate, post.ID, notify.NewRevalidatePayload(stale))
	})
	if err != nil {
		return nil, nil, asAppErr(err)
	}

	s.rev.Invalidate(ctx, stale...)
	return comment, stale, nil
}

// Delete 作者或社区管理员可删
func (s *CommentService) Delete(ctx context.Context, sub *identity.Subject, commentID uint64) ([]string, error) {
	user, err := s.users.EnsureUser(ctx, sub)
	if err != nil {
		return nil, err
	}

	comment, err := (&mysql.CommentRepository{DB: s.db}).FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, apperr.Internal(err)
	}

	post, err := (&mysql.PostRepository{DB: s.db}).FindByID(comment.PostID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if comment.AuthorID != user.ID {
		isAdmin, err := (&mysql.CommunityMemberRepository{DB: s.db}).IsAdmin(post.CommunityID, user.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if !isAdmin {
			return nil, apperr.Forbidden("you don't have permission to delete this comment")
		}
	}

	var stale []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := (&mysql.CommentRepository{DB: tx}).Delete(commentID); err != nil {
			return apperr.Internal(err)
		}
		stale = []string{
			revalidate.CommunityPath(post.CommunityID),
			revalidate.PostPath(post.CommunityID, post.ID),
		}
		outbox := &mysql.OutboxRepository{DB: tx}
		return outbox.Insert(model.EventRevalidate, post.ID, notify.NewRevalidatePayload(stale))
	})
	if err != nil {
		return nil, asAppErr(err)
	}

	s.rev.Invalidate(ctx, stale...)
	return stale, nil
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= commentPreviewRunes {
		return content
	}
	runes := []rune(content)
	return string(runes[:commentPreviewRunes]) + "..."
}
