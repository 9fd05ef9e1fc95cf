package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

type fakeBucket struct {
	objects   map[string][]byte
	uploadErr error
	deleted   []string
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}}
}

func (f *fakeBucket) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBucket) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBucket) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, ok := f.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://files.test/" + key + "?sig=abc", nil
}

func newFileService(env *testEnv, bucket *fakeBucket, ai *fakeAI) FileService {
	return NewFileService(logger.NewNop(), env.files, env.lessons, env.access, bucket, ai, noopCache)
}

func TestFileUpload(t *testing.T) {
	env := newTestEnv(t)
	bucket := newFakeBucket()
	ai := &fakeAI{}
	svc := newFileService(env, bucket, ai)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	course := env.createCourse(t, admin.ID, false)
	lesson := env.createLesson(t, course.ID, 1)

	file, err := svc.Upload(ctx, lesson.ID, "slides.pdf", 5, strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if file.FileType != domain.FileTypePDF {
		t.Fatalf("wrong file type: %q", file.FileType)
	}
	if !strings.HasPrefix(file.StorageKey, "course-"+course.ID.String()+"/lesson-"+lesson.ID.String()+"/") {
		t.Fatalf("unexpected storage key: %q", file.StorageKey)
	}
	if !strings.HasSuffix(file.StorageKey, "-slides.pdf") {
		t.Fatalf("storage key does not keep the filename: %q", file.StorageKey)
	}
	if _, ok := bucket.objects[file.StorageKey]; !ok {
		t.Fatal("object not stored")
	}

	// Successful notify moves the record to PROCESSING.
	if ai.processCalls != 1 {
		t.Fatalf("expected 1 notify, got %d", ai.processCalls)
	}
	if ai.lastProcess.FileID != file.ID || ai.lastProcess.CourseID != course.ID {
		t.Fatalf("notify payload mismatch: %+v", ai.lastProcess)
	}
	if file.ProcessingStatus != domain.ProcessingProcessing {
		t.Fatalf("status after notify: got %q want %q", file.ProcessingStatus, domain.ProcessingProcessing)
	}
}

func TestFileUploadRejectsUnsupportedType(t *testing.T) {
	env := newTestEnv(t)
	svc := newFileService(env, newFakeBucket(), &fakeAI{})
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	course := env.createCourse(t, admin.ID, false)
	lesson := env.createLesson(t, course.ID, 1)

	_, err := svc.Upload(ctx, lesson.ID, "malware.exe", 1, strings.NewReader("x"))
	if got := apierr.StatusOf(err); got != http.StatusBadRequest {
		t.Fatalf("unsupported type: got status %d want 400 (%v)", got, err)
	}

	_, err = svc.Upload(ctx, lesson.ID, "huge.pdf", maxUploadBytes+1, strings.NewReader("x"))
	if got := apierr.StatusOf(err); got != http.StatusBadRequest {
		t.Fatalf("oversized upload: got status %d want 400 (%v)", got, err)
	}

	_, err = svc.Upload(ctx, uuid.New(), "notes.pdf", 1, strings.NewReader("x"))
	if got := apierr.StatusOf(err); got != http.StatusNotFound {
		t.Fatalf("missing lesson: got status %d want 404 (%v)", got, err)
	}
}

func TestFileUploadNotifyFailureStaysPending(t *testing.T) {
	env := newTestEnv(t)
	ai := &fakeAI{processErr: errors.New("ai down")}
	svc := newFileService(env, newFakeBucket(), ai)
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	course := env.createCourse(t, admin.ID, false)
	lesson := env.createLesson(t, course.ID, 1)

	// A failed notify is not an upload failure.
	file, err := svc.Upload(ctx, lesson.ID, "notes.txt", 1, strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if file.ProcessingStatus != domain.ProcessingPending {
		t.Fatalf("status after failed notify: got %q want %q", file.ProcessingStatus, domain.ProcessingPending)
	}
}

func TestFileGetSignsURL(t *testing.T) {
	env := newTestEnv(t)
	bucket := newFakeBucket()
	svc := newFileService(env, bucket, &fakeAI{})
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	learner := env.createUser(t, domain.RoleLearner)
	course := env.createCourse(t, admin.ID, true)
	lesson := env.createLesson(t, course.ID, 1)
	file := env.createFile(t, lesson.ID)
	bucket.objects[file.StorageKey] = []byte("data")

	if _, err := svc.Get(ctx, identityFor(learner), file.ID); apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("unenrolled get: got status %d want 403", apierr.StatusOf(err))
	}

	env.enroll(t, learner.ID, course.ID)
	got, err := svc.Get(ctx, identityFor(learner), file.ID)
	if err != nil {
		t.Fatalf("enrolled get: %v", err)
	}
	if !strings.Contains(got.DownloadURL, file.StorageKey) {
		t.Fatalf("download url not signed for key: %q", got.DownloadURL)
	}

	status, err := svc.Status(ctx, identityFor(learner), file.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.ProcessingStatus != domain.ProcessingPending {
		t.Fatalf("unexpected status: %q", status.ProcessingStatus)
	}
}

func TestFileUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	svc := newFileService(env, newFakeBucket(), &fakeAI{})
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	course := env.createCourse(t, admin.ID, false)
	lesson := env.createLesson(t, course.ID, 1)
	file := env.createFile(t, lesson.ID)

	done, err := svc.UpdateStatus(ctx, file.ID, domain.ProcessingDone, "")
	if err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if done.ProcessingStatus != domain.ProcessingDone {
		t.Fatalf("status not updated: %q", done.ProcessingStatus)
	}

	failed, err := svc.UpdateStatus(ctx, file.ID, domain.ProcessingFailed, "parse error")
	if err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if failed.ErrorMessage != "parse error" {
		t.Fatalf("error message not stored: %q", failed.ErrorMessage)
	}

	if _, err := svc.UpdateStatus(ctx, file.ID, "EXPLODED", ""); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("bad status: got status %d want 400", apierr.StatusOf(err))
	}
	if _, err := svc.UpdateStatus(ctx, uuid.New(), domain.ProcessingDone, ""); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("missing file: got status %d want 404", apierr.StatusOf(err))
	}
}

func TestFileDeleteRemovesObject(t *testing.T) {
	env := newTestEnv(t)
	bucket := newFakeBucket()
	svc := newFileService(env, bucket, &fakeAI{})
	ctx := context.Background()

	admin := env.createUser(t, domain.RoleAdmin)
	course := env.createCourse(t, admin.ID, false)
	lesson := env.createLesson(t, course.ID, 1)
	file := env.createFile(t, lesson.ID)
	bucket.objects[file.StorageKey] = []byte("data")

	if err := svc.Delete(ctx, file.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := bucket.objects[file.StorageKey]; ok {
		t.Fatal("object not removed from bucket")
	}
	if err := svc.Delete(ctx, file.ID); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("second delete: got status %d want 404", apierr.StatusOf(err))
	}
}
