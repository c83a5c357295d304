package service

import (
	"context"
	"errors"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not_found")
var ErrForbidden = errors.New("forbidden")

const creatorPostTarget = 10

type FeedService interface {
	CreatePost(ctx context.Context, authorUID, body string, imageURL *string) (*model.Post, error)
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]model.Post, int64, error)
	LikePost(ctx context.Context, postID uint64, uid string) (likes int64, err error)
	CommentPost(ctx context.Context, postID uint64, uid, body string) (*model.PostComment, error)
	ListComments(ctx context.Context, postID uint64, limit int) ([]model.PostComment, error)
}

type feedService struct {
	repo  repository.PostRepository
	xpSvc XPService
}

func NewFeedService(repo repository.PostRepository, xpSvc XPService) FeedService {
	return &feedService{repo: repo, xpSvc: xpSvc}
}

func (s *feedService) CreatePost(ctx context.Context, authorUID, body string, imageURL *string) (*model.Post, error) {
	if authorUID == "" {
		return nil, ErrNotAuthenticated
	}
	if body == "" {
		return nil, errors.New("body is required")
	}
	p := &model.Post{AuthorUID: authorUID, Body: body, ImageURL: imageURL}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if _, err := s.xpSvc.AddXP(ctx, authorUID, 100, "Nueva publicación creada"); err != nil {
		return p, err
	}
	_ = s.xpSvc.UnlockAchievement(ctx, authorUID, "first_post")
	if cnt, err := s.repo.CountByAuthor(ctx, authorUID); err == nil && cnt >= creatorPostTarget {
		_ = s.xpSvc.UnlockAchievement(ctx, authorUID, "content_creator")
	}
	return p, nil
}

func (s *feedService) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *feedService) ListPosts(ctx context.Context, limit, offset int) ([]model.Post, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

// LikePost is idempotent per (post, user); XP is only awarded for the first
// like so double taps cannot farm points.
func (s *feedService) LikePost(ctx context.Context, postID uint64, uid string) (int64, error) {
	if uid == "" {
		return 0, ErrNotAuthenticated
	}
	if _, err := s.GetPost(ctx, postID); err != nil {
		return 0, err
	}
	already, err := s.repo.AddLike(ctx, postID, uid)
	if err != nil {
		return 0, err
	}
	if !already {
		if _, err := s.xpSvc.AddXP(ctx, uid, 25, "Me gusta en post"); err != nil {
			return 0, err
		}
		_ = s.xpSvc.UnlockAchievement(ctx, uid, "first_like")
	}
	return s.repo.CountLikes(ctx, postID)
}

func (s *feedService) CommentPost(ctx context.Context, postID uint64, uid, body string) (*model.PostComment, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	if body == "" {
		return nil, errors.New("body is required")
	}
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	c := &model.PostComment{PostID: postID, UserUID: uid, Body: body}
	if err := s.repo.AddComment(ctx, c); err != nil {
		return nil, err
	}
	if _, err := s.xpSvc.AddXP(ctx, uid, 75, "Nuevo comentario"); err != nil {
		return c, err
	}
	_ = s.xpSvc.UnlockAchievement(ctx, uid, "first_comment")
	return c, nil
}

func (s *feedService) ListComments(ctx context.Context, postID uint64, limit int) ([]model.PostComment, error) {
	return s.repo.ListComments(ctx, postID, limit)
}
