package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

func newProgressService(env *testEnv) ProgressService {
	return NewProgressService(logger.NewNop(), env.progress, env.access)
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := newProgressService(env)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	learner := env.createUser(t, domain.RoleLearner)
	course := env.createCourse(t, admin.ID, true)
	lesson := env.createLesson(t, course.ID, 1)
	env.enroll(t, learner.ID, course.ID)

	first, err := svc.MarkComplete(ctx, identityFor(learner), lesson.ID)
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if !first.Completed || first.CompletedAt == nil {
		t.Fatalf("not marked complete: %+v", first)
	}

	time.Sleep(10 * time.Millisecond)
	second, err := svc.MarkComplete(ctx, identityFor(learner), lesson.ID)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a second row: %s vs %s", second.ID, first.ID)
	}
	if !second.Completed {
		t.Fatal("second call lost completion")
	}
	if !second.LastViewed.After(first.LastViewed) {
		t.Fatalf("last viewed not refreshed: %v vs %v", second.LastViewed, first.LastViewed)
	}
}

func TestMarkViewedDoesNotComplete(t *testing.T) {
	env := newTestEnv(t)
	svc := newProgressService(env)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	learner := env.createUser(t, domain.RoleLearner)
	course := env.createCourse(t, admin.ID, true)
	lesson := env.createLesson(t, course.ID, 1)
	env.enroll(t, learner.ID, course.ID)

	viewed, err := svc.MarkViewed(ctx, identityFor(learner), lesson.ID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if viewed.Completed || viewed.CompletedAt != nil {
		t.Fatalf("viewing must not complete: %+v", viewed)
	}

	// Viewing after completion keeps completion intact.
	if _, err := svc.MarkComplete(ctx, identityFor(learner), lesson.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	after, err := svc.MarkViewed(ctx, identityFor(learner), lesson.ID)
	if err != nil {
		t.Fatalf("view after complete: %v", err)
	}
	if !after.Completed || after.CompletedAt == nil {
		t.Fatalf("view cleared completion: %+v", after)
	}
}

func TestProgressIsGated(t *testing.T) {
	env := newTestEnv(t)
	svc := newProgressService(env)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	learner := env.createUser(t, domain.RoleLearner)
	course := env.createCourse(t, admin.ID, true)
	lesson := env.createLesson(t, course.ID, 1)

	if _, err := svc.MarkComplete(ctx, identityFor(learner), lesson.ID); apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("unenrolled complete: got status %d want 403", apierr.StatusOf(err))
	}
	if _, err := svc.MarkViewed(ctx, identityFor(learner), lesson.ID); apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("unenrolled view: got status %d want 403", apierr.StatusOf(err))
	}
}

func TestListMine(t *testing.T) {
	env := newTestEnv(t)
	svc := newProgressService(env)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	learner := env.createUser(t, domain.RoleLearner)
	other := env.createUser(t, domain.RoleLearner)
	course := env.createCourse(t, admin.ID, true)
	lessonA := env.createLesson(t, course.ID, 1)
	lessonB := env.createLesson(t, course.ID, 2)
	env.enroll(t, learner.ID, course.ID)
	env.enroll(t, other.ID, course.ID)

	if _, err := svc.MarkViewed(ctx, identityFor(learner), lessonA.ID); err != nil {
		t.Fatalf("view A: %v", err)
	}
	if _, err := svc.MarkComplete(ctx, identityFor(learner), lessonB.ID); err != nil {
		t.Fatalf("complete B: %v", err)
	}
	if _, err := svc.MarkViewed(ctx, identityFor(other), lessonA.ID); err != nil {
		t.Fatalf("other view: %v", err)
	}

	rows, err := svc.ListMine(ctx, learner.ID)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.UserID != learner.ID {
			t.Fatalf("row leaked from another user: %+v", row)
		}
		if row.Lesson == nil || row.Lesson.Course == nil {
			t.Fatalf("lesson/course not preloaded: %+v", row)
		}
	}
	// Most recently viewed first.
	if rows[0].LessonID != lessonB.ID {
		t.Fatalf("expected lesson B first, got %s", rows[0].LessonID)
	}
}
