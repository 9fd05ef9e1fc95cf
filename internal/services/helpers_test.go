package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/db"
	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/aiclient"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/platform/rediscache"
	"github.com/phu024/elearning-rag-platform/internal/repos"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A pooled second connection would see an empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

type testEnv struct {
	db          *gorm.DB
	users       repos.UserRepo
	courses     repos.CourseRepo
	lessons     repos.LessonRepo
	files       repos.FileRepo
	enrollments repos.EnrollmentRepo
	progress    repos.ProgressRepo
	chatRecords repos.ChatRecordRepo
	access      AccessService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := newTestDB(t)
	log := logger.NewNop()
	env := &testEnv{
		db:          gdb,
		users:       repos.NewUserRepo(gdb, log),
		courses:     repos.NewCourseRepo(gdb, log),
		lessons:     repos.NewLessonRepo(gdb, log),
		files:       repos.NewFileRepo(gdb, log),
		enrollments: repos.NewEnrollmentRepo(gdb, log),
		progress:    repos.NewProgressRepo(gdb, log),
		chatRecords: repos.NewChatRecordRepo(gdb, log),
	}
	env.access = NewAccessService(log, env.courses, env.lessons, env.files, env.enrollments)
	return env
}

func (e *testEnv) createUser(t *testing.T, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		FullName:     "Test User",
		Role:         role,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createCourse(t *testing.T, instructorID uuid.UUID, published bool) *domain.Course {
	t.Helper()
	course := &domain.Course{
		Title:        "Test Course",
		InstructorID: instructorID,
		IsPublished:  published,
	}
	if err := e.db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func (e *testEnv) createLesson(t *testing.T, courseID uuid.UUID, order int) *domain.Lesson {
	t.Helper()
	lesson := &domain.Lesson{
		CourseID:    courseID,
		Title:       "Test Lesson",
		Order:       order,
		ContentText: "content",
	}
	if err := e.db.Create(lesson).Error; err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	return lesson
}

func (e *testEnv) createFile(t *testing.T, lessonID uuid.UUID) *domain.File {
	t.Helper()
	file := &domain.File{
		LessonID:         lessonID,
		Filename:         "notes.pdf",
		FileType:         domain.FileTypePDF,
		StorageKey:       "key/notes.pdf",
		SizeBytes:        42,
		ProcessingStatus: domain.ProcessingPending,
	}
	if err := e.db.Create(file).Error; err != nil {
		t.Fatalf("create file: %v", err)
	}
	return file
}

func (e *testEnv) enroll(t *testing.T, userID, courseID uuid.UUID) {
	t.Helper()
	if err := e.db.Create(&domain.Enrollment{UserID: userID, CourseID: courseID}).Error; err != nil {
		t.Fatalf("create enrollment: %v", err)
	}
}

func identityFor(user *domain.User) *ctxutil.Identity {
	return &ctxutil.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
}

type fakeAI struct {
	queryResp    *aiclient.QueryResponse
	queryErr     error
	processErr   error
	queryCalls   int
	processCalls int
	lastQuery    aiclient.QueryRequest
	lastProcess  aiclient.ProcessRequest
}

func (f *fakeAI) Query(_ context.Context, req aiclient.QueryRequest) (*aiclient.QueryResponse, error) {
	f.queryCalls++
	f.lastQuery = req
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryResp, nil
}

func (f *fakeAI) NotifyProcess(_ context.Context, req aiclient.ProcessRequest) error {
	f.processCalls++
	f.lastProcess = req
	return f.processErr
}

var noopCache = rediscache.Noop()
