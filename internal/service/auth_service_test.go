package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"weiterbildung_backend/internal/config"
	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
}

func newTestAuthService(store *memUserStore) *AuthService {
	return NewAuthService(store, nil, testConfig())
}

func TestRegisterParticipant(t *testing.T) {
	store := newMemUserStore()
	svc := newTestAuthService(store)

	user, result, err := svc.RegisterParticipant(context.Background(), "Anna Meier", model.GroupDrachen)
	if err != nil {
		t.Fatalf("RegisterParticipant: %v", err)
	}

	if !regexp.MustCompile(`^[A-Z0-9]{6}$`).MatchString(result.Code) {
		t.Errorf("code %q is not 6 uppercase alphanumerics", result.Code)
	}
	if !strings.HasPrefix(result.Email, "anna.meier.") || !strings.HasSuffix(result.Email, "@"+util.VirtualEmailDomain) {
		t.Errorf("unexpected virtual email %q", result.Email)
	}
	if user.Role != model.Participant {
		t.Errorf("role = %q, want participant", user.Role)
	}

	// 存储里只有散列，且散列能验证返回的登录码
	stored, err := store.FindByID(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.PasswordHash == result.Code {
		t.Error("code stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(result.Code)) != nil {
		t.Error("stored hash does not verify the returned code")
	}
}

func TestRegisterParticipantDuplicateUsername(t *testing.T) {
	store := newMemUserStore()
	svc := newTestAuthService(store)

	if _, _, err := svc.RegisterParticipant(context.Background(), "anna", model.GroupAmeise); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	_, _, err := svc.RegisterParticipant(context.Background(), "anna", model.GroupKuehe)
	if !errors.Is(err, util.ErrDuplicateIdentity) {
		t.Errorf("err = %v, want ErrDuplicateIdentity", err)
	}
}

func TestRegisterParticipantUnknownGroup(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	_, _, err := svc.RegisterParticipant(context.Background(), "anna", model.Group("loewen"))
	if !errors.Is(err, util.ErrRegistrationFailed) {
		t.Errorf("err = %v, want ErrRegistrationFailed", err)
	}
}

func TestVirtualEmail(t *testing.T) {
	ts := time.UnixMilli(1700000000000)

	cases := []struct {
		username string
		local    string
	}{
		{"Anna Meier", "anna.meier"},
		{"Tom_Müller", "tom.m.ller"},
		{"  bob  ", "bob"},
		{"x--y__z", "x.y.z"},
	}
	for _, c := range cases {
		got := VirtualEmail(c.username, ts)
		want := c.local + ".1700000000000@" + util.VirtualEmailDomain
		if got != want {
			t.Errorf("VirtualEmail(%q) = %q, want %q", c.username, got, want)
		}
	}
}

func TestVirtualEmailUniquePerTimestamp(t *testing.T) {
	a := VirtualEmail("anna", time.UnixMilli(1))
	b := VirtualEmail("anna", time.UnixMilli(2))
	if a == b {
		t.Error("same username at different instants must yield different emails")
	}
}

func TestLoginWithCodeCaseInsensitive(t *testing.T) {
	store := newMemUserStore()
	svc := newTestAuthService(store)

	_, result, err := svc.RegisterParticipant(context.Background(), "anna", model.GroupNilpferde)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, err := svc.LoginWithCode(context.Background(), strings.ToLower(result.Code))
	if err != nil {
		t.Fatalf("LoginWithCode lowercase: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.UserID {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, user.UserID)
	}
	if claims.Admin {
		t.Error("participant token carries admin claim")
	}
	if user.Group != model.GroupNilpferde {
		t.Errorf("group = %q, want nilpferde", user.Group)
	}
	if len(user.CompletedSubtasks) != 0 {
		t.Errorf("fresh user has %d completed subtasks", len(user.CompletedSubtasks))
	}
}

func TestLoginWithUnknownCode(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	_, _, err := svc.LoginWithCode(context.Background(), "ZZZZZZ")
	if !errors.Is(err, util.ErrCodeNotFound) {
		t.Errorf("err = %v, want ErrCodeNotFound", err)
	}
}

func TestLoginWithMismatchedHash(t *testing.T) {
	store := newMemUserStore()
	hash, _ := bcrypt.GenerateFromPassword([]byte("OTHERC"), bcrypt.DefaultCost)
	store.put(&model.User{
		UserID:       "u1",
		Username:     "anna",
		Code:         "AAAAAA",
		PasswordHash: string(hash),
		Role:         model.Participant,
	})
	svc := newTestAuthService(store)

	_, _, err := svc.LoginWithCode(context.Background(), "AAAAAA")
	if !errors.Is(err, util.ErrInvalidCredential) {
		t.Errorf("err = %v, want ErrInvalidCredential", err)
	}
}

func seedAdmin(store *memUserStore) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin2025!"), bcrypt.DefaultCost)
	store.put(&model.User{
		UserID:       "admin-1",
		Username:     "Admin",
		Email:        "admin@weiterbildung.local",
		PasswordHash: string(hash),
		Role:         model.Admin,
	})
}

func TestLoginAdmin(t *testing.T) {
	store := newMemUserStore()
	seedAdmin(store)
	svc := newTestAuthService(store)

	user, token, err := svc.LoginAdmin(context.Background(), "admin@weiterbildung.local", "admin2025!")
	if err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}
	if user.Role != model.Admin {
		t.Errorf("role = %q, want admin", user.Role)
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if !claims.Admin {
		t.Error("admin token missing admin claim")
	}
}

func TestLoginAdminRejectsParticipant(t *testing.T) {
	store := newMemUserStore()
	hash, _ := bcrypt.GenerateFromPassword([]byte("AAAAAA"), bcrypt.DefaultCost)
	store.put(&model.User{
		UserID:       "u1",
		Username:     "anna",
		Email:        "anna.1@weiterbildung.local",
		PasswordHash: string(hash),
		Role:         model.Participant,
	})
	svc := newTestAuthService(store)

	_, token, err := svc.LoginAdmin(context.Background(), "anna.1@weiterbildung.local", "AAAAAA")
	if !errors.Is(err, util.ErrNotAuthorized) {
		t.Errorf("err = %v, want ErrNotAuthorized", err)
	}
	if token != "" {
		t.Error("token issued for non-admin account")
	}
}

func TestLoginAdminBadInputs(t *testing.T) {
	store := newMemUserStore()
	seedAdmin(store)
	svc := newTestAuthService(store)

	if _, _, err := svc.LoginAdmin(context.Background(), "not-an-email", "x"); !errors.Is(err, util.ErrMalformedIdentifier) {
		t.Errorf("malformed email: err = %v, want ErrMalformedIdentifier", err)
	}
	if _, _, err := svc.LoginAdmin(context.Background(), "admin@weiterbildung.local", "wrong"); !errors.Is(err, util.ErrInvalidCredential) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredential", err)
	}
	if _, _, err := svc.LoginAdmin(context.Background(), "ghost@weiterbildung.local", "x"); !errors.Is(err, util.ErrInvalidCredential) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredential", err)
	}
}

func TestLogoutRevokesRemainingLifetime(t *testing.T) {
	revoker := newMemRevoker()
	svc := NewAuthService(newMemUserStore(), revoker, testConfig())

	claims := &util.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	svc.Logout(context.Background(), claims)

	ttl, ok := revoker.revoked["jti-1"]
	if !ok {
		t.Fatal("jti not revoked")
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("ttl = %v, want within remaining lifetime", ttl)
	}
}

func TestLogoutToleratesMissingExpiry(t *testing.T) {
	revoker := newMemRevoker()
	svc := NewAuthService(newMemUserStore(), revoker, testConfig())

	// 没有 exp 声明的令牌不会进吊销名单，也不能让登出崩溃
	svc.Logout(context.Background(), &util.Claims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{ID: "jti-2"},
	})
	if len(revoker.revoked) != 0 {
		t.Errorf("revoked %d entries, want 0", len(revoker.revoked))
	}

	// 已过期的令牌同样跳过
	svc.Logout(context.Background(), &util.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-3",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if len(revoker.revoked) != 0 {
		t.Errorf("expired token revoked anyway: %d entries", len(revoker.revoked))
	}

	// 吊销存储未配置时登出是空操作
	bare := newTestAuthService(newMemUserStore())
	bare.Logout(context.Background(), nil)
}

func TestRegisterStoreDown(t *testing.T) {
	store := newMemUserStore()
	store.failAll = true
	svc := newTestAuthService(store)

	_, _, err := svc.RegisterParticipant(context.Background(), "anna", model.GroupAmeise)
	if err == nil {
		t.Fatal("expected error when store is down")
	}
	if errors.Is(err, util.ErrDuplicateIdentity) {
		t.Error("store failure must not map to duplicate identity")
	}
}
