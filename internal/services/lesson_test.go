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

func newLessonService(env *testEnv) LessonService {
	return NewLessonService(logger.NewNop(), env.courses, env.lessons, env.access)
}

func TestLessonCreate(t *testing.T) {
	env := newTestEnv(t)
	svc := newLessonService(env)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	course := env.createCourse(t, admin.ID, false)

	lesson, err := svc.Create(ctx, course.ID, "Intro", "first lesson", 1, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lesson.Order != 1 || lesson.CourseID != course.ID {
		t.Fatalf("lesson mismatch: %+v", lesson)
	}

	if _, err := svc.Create(ctx, course.ID, "", "", 2, ""); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("blank title: got status %d want 400", apierr.StatusOf(err))
	}
	if _, err := svc.Create(ctx, course.ID, "Bad", "", 0, ""); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("zero order: got status %d want 400", apierr.StatusOf(err))
	}
	if _, err := svc.Create(ctx, uuid.New(), "Orphan", "", 1, ""); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("missing course: got status %d want 404", apierr.StatusOf(err))
	}
}

func TestLessonOrderUniquePerCourse(t *testing.T) {
	env := newTestEnv(t)
	svc := newLessonService(env)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	courseA := env.createCourse(t, admin.ID, false)
	courseB := env.createCourse(t, admin.ID, false)

	if _, err := svc.Create(ctx, courseA.ID, "A1", "", 1, ""); err != nil {
		t.Fatalf("create A1: %v", err)
	}

	// Same order in the same course conflicts.
	if _, err := svc.Create(ctx, courseA.ID, "A1 again", "", 1, ""); apierr.StatusOf(err) != http.StatusConflict {
		t.Fatalf("same course same order: got status %d want 409", apierr.StatusOf(err))
	}

	// Same order in a different course is fine.
	if _, err := svc.Create(ctx, courseB.ID, "B1", "", 1, ""); err != nil {
		t.Fatalf("same order different course: %v", err)
	}
}

func TestLessonUpdateOrder(t *testing.T) {
	env := newTestEnv(t)
	svc := newLessonService(env)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	course := env.createCourse(t, admin.ID, false)
	first := env.createLesson(t, course.ID, 1)
	env.createLesson(t, course.ID, 2)

	// Renumbering to its own order is a no-op, not a conflict.
	order := 1
	if _, err := svc.Update(ctx, first.ID, LessonUpdate{Order: &order}); err != nil {
		t.Fatalf("renumber to self: %v", err)
	}

	order = 2
	if _, err := svc.Update(ctx, first.ID, LessonUpdate{Order: &order}); apierr.StatusOf(err) != http.StatusConflict {
		t.Fatalf("renumber onto sibling: got status %d want 409", apierr.StatusOf(err))
	}

	order = 3
	updated, err := svc.Update(ctx, first.ID, LessonUpdate{Order: &order})
	if err != nil {
		t.Fatalf("renumber to free slot: %v", err)
	}
	if updated.Order != 3 {
		t.Fatalf("order not updated: %d", updated.Order)
	}
}

func TestLessonListAndGetAreGated(t *testing.T) {
	env := newTestEnv(t)
	svc := newLessonService(env)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	learner := env.createUser(t, domain.RoleLearner)
	course := env.createCourse(t, admin.ID, true)
	lesson := env.createLesson(t, course.ID, 1)
	env.createFile(t, lesson.ID)

	if _, err := svc.ListByCourse(ctx, identityFor(learner), course.ID); apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("unenrolled list: got status %d want 403", apierr.StatusOf(err))
	}
	if _, err := svc.Get(ctx, identityFor(learner), lesson.ID); apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("unenrolled get: got status %d want 403", apierr.StatusOf(err))
	}

	env.enroll(t, learner.ID, course.ID)
	lessons, err := svc.ListByCourse(ctx, identityFor(learner), course.ID)
	if err != nil {
		t.Fatalf("enrolled list: %v", err)
	}
	if len(lessons) != 1 {
		t.Fatalf("expected 1 lesson, got %d", len(lessons))
	}
	got, err := svc.Get(ctx, identityFor(learner), lesson.ID)
	if err != nil {
		t.Fatalf("enrolled get: %v", err)
	}
	if len(got.Files) != 1 {
		t.Fatalf("expected lesson files preloaded, got %d", len(got.Files))
	}
}

func TestLessonDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := newLessonService(env)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	course := env.createCourse(t, admin.ID, false)
	lesson := env.createLesson(t, course.ID, 1)

	if err := svc.Delete(ctx, lesson.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, lesson.ID); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("second delete: got status %d want 404", apierr.StatusOf(err))
	}

	// The freed order slot is reusable.
	if _, err := svc.Create(ctx, course.ID, "Replacement", "", 1, ""); err != nil {
		t.Fatalf("reuse freed order: %v", err)
	}
}
