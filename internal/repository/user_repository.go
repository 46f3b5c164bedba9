package repository

import (
	"context"
	"strings"
	"time"

	"weiterbildung_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.CompletedSubtasks == nil {
		user.CompletedSubtasks = model.SubtaskSet{}
	}
	if user.Ratings == nil {
		user.Ratings = model.RatingSet{}
	}
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, "user_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByCode 按登录码等值查询，码在存储中始终为大写
func (r *UserRepository) FindByCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Find(&users).Error
	return users, err
}

func (r *UserRepository) FindByGroup(ctx context.Context, group model.Group) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Where("`group` = ?", group).Find(&users).Error
	return users, err
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

// UpdateFields 单记录部分字段更新，最后写入者胜
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", id).
		Updates(fields).
		Error
}

// Delete 删除已不存在的记录不算错误（幂等，批量重试会依赖这一点）
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.User{}, "user_id = ?", id).Error
}
