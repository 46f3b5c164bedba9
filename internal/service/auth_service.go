package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"weiterbildung_backend/internal/config"
	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
	"weiterbildung_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore 认证服务用到的用户存取操作
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByCode(ctx context.Context, code string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type AuthService struct {
	UserRepo UserStore
	Revoker  TokenRevoker
	Cfg      *config.Config
}

func NewAuthService(userRepo UserStore, revoker TokenRevoker, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Revoker:  revoker,
		Cfg:      cfg,
	}
}

// RegistrationResult 注册结果：码只在这里返回一次，之后无法再查看
type RegistrationResult struct {
	Code   string `json:"code"`
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// VirtualEmail 由用户名和注册时间戳派生虚拟邮箱。
// 小写、非字母数字的连续段压成单个点、去掉首尾点，
// 毫秒时间戳后缀保证重名用户也能得到唯一标识。
func VirtualEmail(username string, ts time.Time) string {
	clean := nonAlnum.ReplaceAllString(strings.ToLower(username), ".")
	clean = strings.Trim(clean, ".")
	return fmt.Sprintf("%s.%d@%s", clean, ts.UnixMilli(), util.VirtualEmailDomain)
}

// RegisterParticipant 注册新参与者：生成登录码，派生虚拟邮箱，
// 码经 bcrypt 散列后作为凭据密钥存储。
func (s *AuthService) RegisterParticipant(ctx context.Context, username string, group model.Group) (*model.User, *RegistrationResult, error) {
	username = strings.TrimSpace(username)

	if !model.ValidGroup(group) {
		return nil, nil, fmt.Errorf("%w: unknown group %q", util.ErrRegistrationFailed, group)
	}

	// 用户名预检查只是提前给出友好错误，唯一索引才是最终保障
	if _, err := s.UserRepo.FindByUsername(ctx, username); err == nil {
		return nil, nil, fmt.Errorf("%w: username %q", util.ErrDuplicateIdentity, username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	code := util.GenerateCode()
	if len(code) < util.CodeLength {
		// 按构造不可能发生，出现说明生成器坏了
		return nil, nil, util.ErrWeakSecret
	}

	now := time.Now()
	email := VirtualEmail(username, now)

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", util.ErrRegistrationFailed, err)
	}

	user := &model.User{
		UserID:            uuid.New().String(),
		Username:          username,
		Group:             group,
		Code:              code,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              model.Participant,
		IsVirtual:         true,
		CompletedSubtasks: model.SubtaskSet{},
		Ratings:           model.RatingSet{},
		CreatedAt:         now,
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, fmt.Errorf("%w: %s", util.ErrDuplicateIdentity, email)
		}
		return nil, nil, fmt.Errorf("%w: %v", util.ErrRegistrationFailed, err)
	}

	return user, &RegistrationResult{Code: code, Email: email, UserID: user.UserID}, nil
}

// LoginWithCode 参与者用登录码登录。对外是一个操作，内部仍是
// 先按码查记录、再校验凭据的两步协议；两步之间没有跨步原子性，
// 这是已知限制而非缺陷。码输入不区分大小写。
func (s *AuthService) LoginWithCode(ctx context.Context, code string) (*model.User, string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	user, err := s.UserRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrCodeNotFound
		}
		return nil, "", fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(code)); err != nil {
		// 记录和凭据漂移（比如手工改库）时会走到这里
		return nil, "", util.ErrInvalidCredential
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", util.ErrProviderUnavailable, err)
	}

	return user, token, nil
}

// LoginAdmin 管理员用邮箱和密码登录。凭据正确但没有管理员角色的
// 账号一律拒绝，不签发任何会话。
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*model.User, string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", util.ErrMalformedIdentifier
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrInvalidCredential
		}
		return nil, "", fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredential
	}

	if user.Role != model.Admin {
		return nil, "", util.ErrNotAuthorized
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", util.ErrProviderUnavailable, err)
	}

	return user, token, nil
}

// Logout 把令牌 jti 放进吊销名单直到过期。尽力而为：
// 吊销存储不可用时只记日志，登出本身总是成功（幂等）。
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) {
	if claims == nil || s.Revoker == nil {
		return
	}

	// jwt/v5 接受没有 exp 的令牌，此时无法确定吊销时长
	if claims.ExpiresAt == nil {
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return
	}

	if err := s.Revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.Log.Warn("token revocation failed, logout treated as best-effort",
			zap.String("jti", claims.ID), zap.Error(err))
	}
}

// CurrentUser 按会话声明加载当前用户记录
func (s *AuthService) CurrentUser(ctx context.Context, claims *util.Claims) (*model.User, error) {
	if claims == nil {
		return nil, util.ErrInvalidCredential
	}
	user, err := s.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}
	return user, nil
}
