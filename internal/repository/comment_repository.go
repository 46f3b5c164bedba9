package repository

import (
	"context"
	"time"

	"weiterbildung_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if comment.Timestamp.IsZero() {
		comment.Timestamp = time.Now()
	}
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindAllDesc 留言按时间倒序（最新在前）
func (r *CommentRepository) FindAllDesc(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.WithContext(ctx).Order("timestamp DESC").Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id).Error
}
