package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
)

// ChecklistStore 打卡和评分需要的用户读写
type ChecklistStore interface {
	FindByID(ctx context.Context, userID string) (*model.User, error)
	UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error
}

// ChecklistService 子任务勾选与任务评分
type ChecklistService struct {
	UserRepo ChecklistStore
}

func NewChecklistService(userRepo ChecklistStore) *ChecklistService {
	return &ChecklistService{UserRepo: userRepo}
}

// ChecklistView 打卡页视图：完成键集、评分集和完成度
type ChecklistView struct {
	CompletedSubtasks model.SubtaskSet `json:"completedSubtasks"`
	Ratings           model.RatingSet  `json:"ratings"`
	Progress          ProgressSummary  `json:"progress"`
}

func (s *ChecklistService) Checklist(ctx context.Context, userID string) (*ChecklistView, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ChecklistView{
		CompletedSubtasks: user.CompletedSubtasks,
		Ratings:           user.Ratings,
		Progress:          UserProgress(user),
	}, nil
}

// ToggleSubtask 勾选或取消勾选一个子任务。已勾选则删除键，
// 未勾选则写入当前时间戳。返回切换后的完成度。
func (s *ChecklistService) ToggleSubtask(ctx context.Context, userID string, taskID, subtaskIndex int) (*ChecklistView, error) {
	task, ok := model.TaskByID(taskID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", util.ErrUnknownTask, taskID)
	}
	if subtaskIndex < 0 || subtaskIndex >= len(task.Subtasks) {
		return nil, fmt.Errorf("%w: %d-%d", util.ErrUnknownSubtask, taskID, subtaskIndex)
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := model.SubtaskKey(taskID, subtaskIndex)
	if user.CompletedSubtasks == nil {
		user.CompletedSubtasks = model.SubtaskSet{}
	}
	if _, done := user.CompletedSubtasks[key]; done {
		delete(user.CompletedSubtasks, key)
	} else {
		user.CompletedSubtasks[key] = time.Now().Format(time.RFC3339)
	}

	if err := s.UserRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"completed_subtasks": user.CompletedSubtasks,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	return &ChecklistView{
		CompletedSubtasks: user.CompletedSubtasks,
		Ratings:           user.Ratings,
		Progress:          UserProgress(user),
	}, nil
}

// SubmitRating 提交某任务的三项评价，每项取值 0–3。
// 每个任务只能评一次，重复提交报 ErrAlreadyRated。
func (s *ChecklistService) SubmitRating(ctx context.Context, userID string, taskID int, enjoyed, useful, learned int) (*ChecklistView, error) {
	if _, ok := model.TaskByID(taskID); !ok {
		return nil, fmt.Errorf("%w: %d", util.ErrUnknownTask, taskID)
	}
	for _, v := range []int{enjoyed, useful, learned} {
		if v < model.RatingValueMin || v > model.RatingValueMax {
			return nil, fmt.Errorf("%w: %d", util.ErrInvalidRating, v)
		}
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, rated := user.Ratings[taskID]; rated {
		return nil, fmt.Errorf("%w: 任务 %d", util.ErrAlreadyRated, taskID)
	}

	if user.Ratings == nil {
		user.Ratings = model.RatingSet{}
	}
	user.Ratings[taskID] = model.TaskRating{
		Enjoyed:   enjoyed,
		Useful:    useful,
		Learned:   learned,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if err := s.UserRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"ratings": user.Ratings,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	return &ChecklistView{
		CompletedSubtasks: user.CompletedSubtasks,
		Ratings:           user.Ratings,
		Progress:          UserProgress(user),
	}, nil
}

func (s *ChecklistService) load(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return user, nil
}
