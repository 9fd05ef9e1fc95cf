package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

func TestUserServiceCRUD(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(logger.NewNop(), env.users)
	ctx := context.Background()

	user := env.createUser(t, domain.RoleLearner)
	admin := env.createUser(t, domain.RoleAdmin)

	got, err := svc.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != user.Email {
		t.Fatalf("wrong user: %q", got.Email)
	}

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	name := "Renamed"
	email := "Renamed@Example.com"
	updated, err := svc.Update(ctx, user.ID, UserUpdate{FullName: &name, Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FullName != "Renamed" || updated.Email != "renamed@example.com" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Role != domain.RoleLearner {
		t.Fatalf("role changed on profile update: %q", updated.Role)
	}

	taken := admin.Email
	if _, err := svc.Update(ctx, user.ID, UserUpdate{Email: &taken}); apierr.StatusOf(err) != http.StatusConflict {
		t.Fatalf("duplicate email: got status %d want 409", apierr.StatusOf(err))
	}
	bad := "not-an-email"
	if _, err := svc.Update(ctx, user.ID, UserUpdate{Email: &bad}); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("bad email: got status %d want 400", apierr.StatusOf(err))
	}

	if err := svc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, user.ID); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("get after delete: got status %d want 404", apierr.StatusOf(err))
	}
	if _, err := svc.GetByID(ctx, uuid.New()); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("get unknown: got status %d want 404", apierr.StatusOf(err))
	}
}
