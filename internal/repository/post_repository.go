package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	List(ctx context.Context, limit, offset int) ([]model.Post, int64, error)
	CountByAuthor(ctx context.Context, uid string) (int64, error)
	// AddLike returns already=true when the user liked the post before.
	AddLike(ctx context.Context, postID uint64, uid string) (already bool, err error)
	CountLikes(ctx context.Context, postID uint64) (int64, error)
	AddComment(ctx context.Context, c *model.PostComment) error
	ListComments(ctx context.Context, postID uint64, limit int) ([]model.PostComment, error)
	SetDB(db *gorm.DB)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]model.Post, int64, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Post
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, uid string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("author_uid = ?", uid).
		Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) AddLike(ctx context.Context, postID uint64, uid string) (bool, error) {
	like := model.PostLike{PostID: postID, UserUID: uid}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 0, nil
}

func (r *postRepository) CountLikes(ctx context.Context, postID uint64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) AddComment(ctx context.Context, c *model.PostComment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *postRepository) ListComments(ctx context.Context, postID uint64, limit int) ([]model.PostComment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []model.PostComment
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *postRepository) SetDB(db *gorm.DB) {
	r.db = db
}
