package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
)

func newCommentFixture() (*CommentService, *memCommentStore, *memUserStore) {
	users := newMemUserStore()
	users.put(&model.User{UserID: "u1", Username: "anna", Group: model.GroupAmeise, Role: model.Participant})
	users.put(&model.User{UserID: "admin", Username: "Admin", Role: model.Admin})
	comments := newMemCommentStore()
	return NewCommentService(comments, users), comments, users
}

func TestPostComment(t *testing.T) {
	svc, _, _ := newCommentFixture()

	c, err := svc.Post(context.Background(), "u1", "Hallo zusammen!")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if c.Username != "anna" || c.Group != "ameise" {
		t.Errorf("snapshot = %q/%q, want anna/ameise", c.Username, c.Group)
	}
	if c.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestPostCommentAdminGroup(t *testing.T) {
	svc, _, _ := newCommentFixture()

	c, err := svc.Post(context.Background(), "admin", "Bitte Aufgabe 3 beachten")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if c.Group != "admin" {
		t.Errorf("admin comment group = %q, want admin", c.Group)
	}
}

func TestPostCommentValidation(t *testing.T) {
	svc, _, _ := newCommentFixture()
	ctx := context.Background()

	if _, err := svc.Post(ctx, "u1", ""); !errors.Is(err, util.ErrInvalidComment) {
		t.Errorf("empty text: err = %v", err)
	}
	if _, err := svc.Post(ctx, "u1", strings.Repeat("ü", CommentMaxLength+1)); !errors.Is(err, util.ErrInvalidComment) {
		t.Errorf("overlong text: err = %v", err)
	}
	// 边界：恰好最大长度（按 rune 计，多字节字符不提前截断）
	if _, err := svc.Post(ctx, "u1", strings.Repeat("ü", CommentMaxLength)); err != nil {
		t.Errorf("max-length text rejected: %v", err)
	}
	if _, err := svc.Post(ctx, "ghost", "hi"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("unknown author: err = %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc, comments, _ := newCommentFixture()
	ctx := context.Background()

	// 乱序写入，顺序必须由时间戳决定
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, c := range []model.Comment{
		{ID: "mittel", Text: "zweiter", Timestamp: base.Add(time.Hour)},
		{ID: "neu", Text: "letzter", Timestamp: base.Add(3 * time.Hour)},
		{ID: "alt", Text: "erster", Timestamp: base},
	} {
		comment := c
		if err := comments.Create(ctx, &comment); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"neu", "mittel", "alt"}
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, list[i].ID, id)
		}
	}
}

func TestCommentSnapshotSurvivesAuthorDeletion(t *testing.T) {
	svc, _, users := newCommentFixture()
	ctx := context.Background()

	c, err := svc.Post(ctx, "u1", "bleibt stehen")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if err := users.Delete(ctx, "u1"); err != nil {
		t.Fatalf("delete author: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != c.ID || list[0].Username != "anna" {
		t.Errorf("comment lost or mutated after author deletion: %+v", list)
	}
}

func TestDeleteCommentPermissions(t *testing.T) {
	svc, _, _ := newCommentFixture()
	ctx := context.Background()

	c, _ := svc.Post(ctx, "u1", "meins")

	// 他人（非管理员）不可删
	if err := svc.Delete(ctx, c.ID, "someone-else", false); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("foreign delete: err = %v, want ErrPermissionDenied", err)
	}
	// 管理员可删任何评论
	if err := svc.Delete(ctx, c.ID, "admin", true); err != nil {
		t.Errorf("admin delete: %v", err)
	}
	// 已删除的评论
	if err := svc.Delete(ctx, c.ID, "admin", true); !errors.Is(err, util.ErrCommentNotFound) {
		t.Errorf("double delete: err = %v, want ErrCommentNotFound", err)
	}
}

func TestDeleteOwnComment(t *testing.T) {
	svc, _, _ := newCommentFixture()
	ctx := context.Background()

	c, _ := svc.Post(ctx, "u1", "weg damit")
	if err := svc.Delete(ctx, c.ID, "u1", false); err != nil {
		t.Errorf("author delete: %v", err)
	}
}
