package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"weiterbildung_backend/internal/model"
)

// memUserStore 内存用户存储，模拟仓库层的唯一索引和 gorm 错误语义
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
	// failAll 置位后所有操作返回存储错误
	failAll bool
}

var errStoreDown = errors.New("connection refused")

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*model.User{}}
}

func (m *memUserStore) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email || u.Code == user.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	clone := *user
	m.users[user.UserID] = &clone
	return nil
}

func (m *memUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findBy(func(u *model.User) bool { return u.UserID == id })
}

func (m *memUserStore) FindByCode(ctx context.Context, code string) (*model.User, error) {
	return m.findBy(func(u *model.User) bool { return u.Code == code })
}

func (m *memUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findBy(func(u *model.User) bool { return u.Email == email })
}

func (m *memUserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.findBy(func(u *model.User) bool { return u.Username == username })
}

func (m *memUserStore) FindAll(ctx context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errStoreDown
	}
	var out []model.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUserStore) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["completed_subtasks"]; ok {
		u.CompletedSubtasks = v.(model.SubtaskSet)
	}
	if v, ok := fields["ratings"]; ok {
		u.Ratings = v.(model.RatingSet)
	}
	return nil
}

func (m *memUserStore) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	delete(m.users, userID)
	return nil
}

func (m *memUserStore) findBy(match func(*model.User) bool) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errStoreDown
	}
	for _, u := range m.users {
		if match(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserStore) put(u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *u
	m.users[u.UserID] = &clone
}

// memRevoker 记录吊销调用的内存名单
type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemRevoker() *memRevoker {
	return &memRevoker{revoked: map[string]time.Duration{}}
}

func (m *memRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = ttl
	return nil
}

func (m *memRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

// memCommentStore 内存评论存储
type memCommentStore struct {
	mu       sync.Mutex
	comments []model.Comment
	seq      int
	failAll  bool
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{}
}

func (m *memCommentStore) Create(ctx context.Context, comment *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	if comment.ID == "" {
		m.seq++
		comment.ID = string(rune('a' + m.seq))
	}
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memCommentStore) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errStoreDown
	}
	for i := range m.comments {
		if m.comments[i].ID == id {
			c := m.comments[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCommentStore) FindAllDesc(ctx context.Context) ([]model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errStoreDown
	}
	// 与仓库层一致：按 timestamp 倒序，不依赖写入顺序
	out := make([]model.Comment, len(m.comments))
	copy(out, m.comments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (m *memCommentStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	for i := range m.comments {
		if m.comments[i].ID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
