package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
)

// CommentMaxLength 评论正文的最大长度（按 rune 计）
const CommentMaxLength = 500

// CommentStore 留言板需要的评论读写
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	FindAllDesc(ctx context.Context) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}

// CommentService 留言板：发布、列出、删除
type CommentService struct {
	CommentRepo CommentStore
	UserRepo    UserStore
}

func NewCommentService(commentRepo CommentStore, userRepo UserStore) *CommentService {
	return &CommentService{CommentRepo: commentRepo, UserRepo: userRepo}
}

// Post 发布评论。作者名和小组在发布时快照进评论，
// 之后作者改名或被删不影响已有留言。管理员留言的小组记为 admin。
func (s *CommentService) Post(ctx context.Context, userID, text string) (*model.Comment, error) {
	length := utf8.RuneCountInString(text)
	if length == 0 || length > CommentMaxLength {
		return nil, fmt.Errorf("%w: 长度 %d", util.ErrInvalidComment, length)
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	group := string(user.Group)
	if user.Role == model.Admin {
		group = "admin"
	}

	comment := &model.Comment{
		UserID:    user.UserID,
		Username:  user.Username,
		Group:     group,
		Text:      text,
		Timestamp: time.Now(),
	}
	if err := s.CommentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return comment, nil
}

// List 按时间倒序返回全部评论
func (s *CommentService) List(ctx context.Context) ([]model.Comment, error) {
	comments, err := s.CommentRepo.FindAllDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return comments, nil
}

// Delete 删除评论。只有作者本人或管理员可删。
func (s *CommentService) Delete(ctx context.Context, id, requesterID string, requesterIsAdmin bool) error {
	comment, err := s.CommentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCommentNotFound
		}
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	if comment.UserID != requesterID && !requesterIsAdmin {
		return util.ErrPermissionDenied
	}

	if err := s.CommentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return nil
}
