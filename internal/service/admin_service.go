package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
)

// AdminStore 管理操作需要的用户读写
type AdminStore interface {
	FindByID(ctx context.Context, userID string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
}

// AdminService 用户管理与数据导出
type AdminService struct {
	UserRepo    AdminStore
	CommentRepo CommentStore
}

func NewAdminService(userRepo AdminStore, commentRepo CommentStore) *AdminService {
	return &AdminService{UserRepo: userRepo, CommentRepo: commentRepo}
}

// UserOverview 用户列表条目：账号信息加当前完成度
type UserOverview struct {
	UserID    string          `json:"userId"`
	Username  string          `json:"username"`
	Group     model.Group     `json:"group"`
	Email     string          `json:"email"`
	Role      model.UserRole  `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	Progress  ProgressSummary `json:"progress"`
}

// ListUsers 返回全部参与者及其完成度，管理员账号不列出
func (s *AdminService) ListUsers(ctx context.Context) ([]UserOverview, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	overviews := make([]UserOverview, 0, len(users))
	for i := range users {
		u := &users[i]
		if u.Role == model.Admin {
			continue
		}
		overviews = append(overviews, UserOverview{
			UserID:    u.UserID,
			Username:  u.Username,
			Group:     u.Group,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
			Progress:  UserProgress(u),
		})
	}
	return overviews, nil
}

// ResetProgress 清空用户的打卡记录和评分，账号本身保留
func (s *AdminService) ResetProgress(ctx context.Context, userID string) error {
	if _, err := s.mustFind(ctx, userID); err != nil {
		return err
	}

	if err := s.UserRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"completed_subtasks": model.SubtaskSet{},
		"ratings":            model.RatingSet{},
	}); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteUser 删除单个参与者。管理员账号不允许从这里删。
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.mustFind(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == model.Admin {
		return util.ErrPermissionDenied
	}

	if err := s.UserRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteFailure 批量删除中单条失败的记录
type DeleteFailure struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// BulkDeleteResult 批量删除汇总。部分失败不回滚，
// 调用方根据 Failures 决定是否重试。
type BulkDeleteResult struct {
	Requested int             `json:"requested"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Failures  []DeleteFailure `json:"failures,omitempty"`
}

// DeleteAllParticipants 删除全部参与者，管理员账号保留。
// 每个用户独立删除并发执行，逐条记录成败。
func (s *AdminService) DeleteAllParticipants(ctx context.Context) (*BulkDeleteResult, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	var targets []model.User
	for i := range users {
		if users[i].Role != model.Admin {
			targets = append(targets, users[i])
		}
	}

	result := &BulkDeleteResult{Requested: len(targets)}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := range targets {
		wg.Add(1)
		go func(u *model.User) {
			defer wg.Done()
			err := s.UserRepo.Delete(ctx, u.UserID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Failures = append(result.Failures, DeleteFailure{
					UserID:   u.UserID,
					Username: u.Username,
					Reason:   err.Error(),
				})
			} else {
				result.Succeeded++
			}
		}(&targets[i])
	}
	wg.Wait()

	return result, nil
}

// ExportSnapshot 一次导出的完整快照
type ExportSnapshot struct {
	Users      []model.User    `json:"users"`
	Comments   []model.Comment `json:"comments"`
	ExportDate string          `json:"exportDate"`
}

// Export 导出全部用户和评论。用户和评论分两次读取，
// 两次读取之间的写入可能让快照轻微不一致，导出是运营动作，可接受。
func (s *AdminService) Export(ctx context.Context) (*ExportSnapshot, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	comments, err := s.CommentRepo.FindAllDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	if users == nil {
		users = []model.User{}
	}
	if comments == nil {
		comments = []model.Comment{}
	}

	return &ExportSnapshot{
		Users:      users,
		Comments:   comments,
		ExportDate: time.Now().Format(time.RFC3339),
	}, nil
}

func (s *AdminService) mustFind(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return user, nil
}
