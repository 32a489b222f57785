package service

import (
	"context"
	"errors"
	"time"

	"github.com/DennisDemir24/hobby-link/internal/apperr"
	"github.com/DennisDemir24/hobby-link/internal/identity"
	"github.com/DennisDemir24/hobby-link/internal/model"
	"github.com/DennisDemir24/hobby-link/internal/notify"
	"github.com/DennisDemir24/hobby-link/internal/repository/mysql"
	redisrepo "github.com/DennisDemir24/hobby-link/internal/repository/redis"
	"github.com/DennisDemir24/hobby-link/internal/revalidate"

	"gorm.io/gorm"
)

type PostService struct {
	db        *gorm.DB
	users     *UserService
	rev       *revalidate.Invalidator
	likeCache *redisrepo.LikeCacheRepository
}

// AuthorInfo 帖子/评论作者摘要
type AuthorInfo struct {
	ID        uint64 `json:"id"`
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
}

type PostSummary struct {
	ID           uint64     `json:"id"`
	CommunityID  uint64     `json:"community_id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Tags         []string   `json:"tags"`
	Published    bool       `json:"published"`
	LikeCount    int64      `json:"like_count"`
	CommentCount int64      `json:"comment_count"`
	CreatedAt    time.Time  `json:"created_at"`
	Author       AuthorInfo `json:"author"`
}

type CommentInfo struct {
	ID        uint64     `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	Author    AuthorInfo `json:"author"`
}

type PostDetail struct {
	PostSummary
	LikedUserIDs []uint64      `json:"liked_user_ids"`
	Comments     []CommentInfo `json:"comments"`
}

func NewPostService(db *gorm.DB, rev *revalidate.Invalidator, likeCache *redisrepo.LikeCacheRepository) *PostService {
	return &PostService{
		db:        db,
		users:     NewUserService(db),
		rev:       rev,
		likeCache: likeCache,
	}
}

// Create 发帖：必须是目标社区成员
func (s *PostService) Create(ctx context.Context, sub *identity.Subject, communityID uint64, title, content string, tags []string) (*model.Post, []string, error) {
	user, err := s.users.EnsureUser(ctx, sub)
	if err != nil {
		return nil, nil, err
	}
	if title == "" {
		return nil, nil, apperr.Validation("title required")
	}

	if _, err := (&mysql.CommunityRepository{DB: s.db}).FindByID(communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("community not found")
		}
		return nil, nil, apperr.Internal(err)
	}

	ok, err := (&mysql.CommunityMemberRepository{DB: s.db}).IsMember(communityID, user.ID)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if !ok {
		return nil, nil, apperr.Forbidden("you must be a member of the community to create posts")
	}

	if tags == nil {
		tags = []string{}
	}
	post := &model.Post{
		CommunityID: communityID,
		AuthorID:    user.ID,
		Title:       title,
		Content:     content,
		Tags:        tags,
		Published:   true,
	}
	var stale []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := (&mysql.PostRepository{DB: tx}).Create(post); err != nil {
			return apperr.Internal(err)
		}
		stale = []string{revalidate.CommunityPath(communityID)}
		outbox := &mysql.OutboxRepository{DB: tx}
		return outbox.Insert(model.EventRevalidate, post.ID, notify.NewRevalidatePayload(stale))
	})
	if err != nil {
		return nil, nil, asAppErr(err)
	}

	s.rev.Invalidate(ctx, stale...)
	return post, stale, nil
}

// List 社区帖子列表，新帖在前，带作者摘要和计数
func (s *PostService) List(ctx context.Context, communityID uint64) ([]PostSummary, error) {
	posts, err := (&mysql.PostRepository{DB: s.db}).ListByCommunity(communityID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	postIDs := make([]uint64, 0, len(posts))
	authorIDs := make([]uint64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.AuthorID)
	}

	commentCounts, err := (&mysql.CommentRepository{DB: s.db}).CountByPostIDs(postIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	authors, err := (&mysql.UserRepository{DB: s.db}).FindByIDs(authorIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, s.summarize(p, authors[p.AuthorID], commentCounts[p.ID]))
	}
	return out, nil
}

// Get 帖子详情：嵌套评论（新在前）及各自作者，点赞用户列表
func (s *PostService) Get(ctx context.Context, postID uint64) (*PostDetail, error) {
	post, err := (&mysql.PostRepository{DB: s.db}).FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal(err)
	}

	comments, err := (&mysql.CommentRepository{DB: s.db}).ListByPost(postID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	likeRepo := &mysql.PostLikeRepository{DB: s.db}
	likedIDs, err := likeRepo.ListUserIDsByPost(ctx, postID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	userIDs := []uint64{post.AuthorID}
	for _, c := range comments {
		userIDs = append(userIDs, c.AuthorID)
	}
	users, err := (&mysql.UserRepository{DB: s.db}).FindByIDs(userIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	detail := &PostDetail{
		PostSummary:  s.summarize(*post, users[post.AuthorID], int64(len(comments))),
		LikedUserIDs: likedIDs,
		Comments:     make([]CommentInfo, 0, len(comments)),
	}
	// 点赞数优先走缓存，miss 回源并回填
	if cnt, ok, err := s.likeCache.GetLikeCountCached(ctx, postID); err == nil && ok {
		detail.LikeCount = cnt
	} else {
		_ = s.likeCache.SetLikeCount(ctx, postID, detail.LikeCount)
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, CommentInfo{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Author:    authorInfo(users[c.AuthorID]),
		})
	}
	return detail, nil
}

// Edit 只有作者本人可编辑；管理员也不行
func (s *PostService) Edit(ctx context.Context, sub *identity.Subject, postID uint64, title, content string, tags []string) (*model.Post, []string, error) {
	user, err := s.users.EnsureUser(ctx, sub)
	if err != nil {
		return nil, nil, err
	}
	if title == "" {
		return nil, nil, apperr.Validation("title required")
	}

	repo := &mysql.PostRepository{DB: s.db}
	post, err := repo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("post not found")
		}
		return nil, nil, apperr.Internal(err)
	}
	if post.AuthorID != user.ID {
		return nil, nil, apperr.Forbidden("you can only edit your own posts")
	}

	post.Title = title
	post.Content = content
	if tags != nil {
		post.Tags = tags
	}

	var stale []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := (&mysql.PostRepository{DB: tx}).Update(post); err != nil {
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
	return post, stale, nil
}

// Delete 作者或社区管理员可删；评论、点赞一并级联
func (s *PostService) Delete(ctx context.Context, sub *identity.Subject, postID uint64) ([]string, error) {
	user, err := s.users.EnsureUser(ctx, sub)
	if err != nil {
		return nil, err
	}

	post, err := (&mysql.PostRepository{DB: s.db}).FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal(err)
	}

	if post.AuthorID != user.ID {
		isAdmin, err := (&mysql.CommunityMemberRepository{DB: s.db}).IsAdmin(post.CommunityID, user.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if !isAdmin {
			return nil, apperr.Forbidden("you don't have permission to delete this post")
		}
	}

	var stale []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := (&mysql.PostRepository{DB: tx}).DeleteCascade(postID); err != nil {
			return apperr.Internal(err)
		}
		stale = []string{revalidate.CommunityPath(post.CommunityID)}
		outbox := &mysql.OutboxRepository{DB: tx}
		return outbox.Insert(model.EventRevalidate, postID, notify.NewRevalidatePayload(stale))
	})
	if err != nil {
		return nil, asAppErr(err)
	}

	_ = s.likeCache.DeleteCount(ctx, postID)
	s.rev.Invalidate(ctx, stale...)
	return stale, nil
}

// ToggleLike 点赞开关；返回本次之后是否处于已点赞
func (s *PostService) ToggleLike(ctx context.Context, sub *identity.Subject, postID uint64) (bool, []string, error) {
	user, err := s.users.EnsureUser(ctx, sub)
	if err != nil {
		return false, nil, err
	}

	post, err := (&mysql.PostRepository{DB: s.db}).FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, apperr.NotFound("post not found")
		}
		return false, nil, apperr.Internal(err)
	}

	stale := []string{
		revalidate.CommunityPath(post.CommunityID),
		revalidate.PostPath(post.CommunityID, postID),
	}
	// 点赞行、计数、失效事件同一事务落库
	var liked bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := (&mysql.PostLikeRepository{DB: tx}).Toggle(ctx, user.ID, postID)
		if err != nil {
			return apperr.Internal(err)
		}
		liked = l
		outbox := &mysql.OutboxRepository{DB: tx}
		if err := outbox.Insert(model.EventRevalidate, postID, notify.NewRevalidatePayload(stale)); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return false, nil, asAppErr(err)
	}

	// 写后删计数 Key，读侧重建
	_ = s.likeCache.DeleteCount(ctx, postID)
	s.rev.Invalidate(ctx, stale...)
	return liked, stale, nil
}

func (s *PostService) summarize(p model.Post, author model.User, commentCount int64) PostSummary {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostSummary{
		ID:           p.ID,
		CommunityID:  p.CommunityID,
		Title:        p.Title,
		Content:      p.Content,
		Tags:         tags,
		Published:    p.Published,
		LikeCount:    p.LikeCount,
		CommentCount: commentCount,
		CreatedAt:    p.CreatedAt,
		Author:       authorInfo(author),
	}
}

func authorInfo(u model.User) AuthorInfo {
	return AuthorInfo{
		ID:        u.ID,
		SubjectID: u.SubjectID,
		Name:      u.Name,
		ImageURL:  u.ImageURL,
	}
}
