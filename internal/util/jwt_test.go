package util

import (
	"testing"
	"time"

	"weiterbildung_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{UserID: "u1", Email: "x@weiterbildung.local", Role: model.Participant}

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != "u1" || claims.Admin {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("jti missing, revocation needs it")
	}
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{UserID: "u1", Role: model.Admin}
	token, _ := GenerateJWT(user, "secret", time.Hour)

	if _, err := ParseJWT(token, "other"); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{UserID: "u1", Role: model.Participant}
	token, _ := GenerateJWT(user, "secret", -time.Minute)

	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestAdminClaimFollowsRole(t *testing.T) {
	token, _ := GenerateJWT(&model.User{UserID: "a", Role: model.Admin}, "secret", time.Hour)
	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if !claims.Admin {
		t.Error("admin role must set admin claim")
	}
	if !IsAdmin(claims) {
		t.Error("IsAdmin(admin claims) = false")
	}
	if IsAdmin(nil) {
		t.Error("IsAdmin(nil) must be false")
	}
}
