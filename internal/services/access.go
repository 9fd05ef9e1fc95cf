package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/repos"
)

// Decision is the outcome of an access check against a course.
type Decision int

const (
	// DecisionAllow grants the request.
	DecisionAllow Decision = iota
	// DecisionHide denies with 404: the caller must not learn the
	// resource exists. Applies to unpublished courses for non-admins.
	DecisionHide
	// DecisionForbid denies with 403: the resource is visible but its
	// content is enrollment-gated.
	DecisionForbid
)

// decideContent is the single rule every content request funnels
// through. Admins pass unconditionally. Non-admins never see
// unpublished courses at all, and see content of published courses
// only while enrolled.
func decideContent(isAdmin, published, enrolled bool) Decision {
	if isAdmin {
		return DecisionAllow
	}
	if !published {
		return DecisionHide
	}
	if !enrolled {
		return DecisionForbid
	}
	return DecisionAllow
}

// decideView gates course metadata. Enrollment is not required to see
// what a published course is about; unpublished courses stay hidden.
func decideView(isAdmin, published bool) Decision {
	if isAdmin || published {
		return DecisionAllow
	}
	return DecisionHide
}

// AccessService resolves whether an authenticated caller may reach a
// course, a lesson, or a file. Lesson and file checks always climb to
// the owning course; there are no per-lesson grants.
type AccessService interface {
	AuthorizeCourseView(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) (*domain.Course, error)
	AuthorizeCourseContent(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) (*domain.Course, error)
	AuthorizeLessonContent(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) (*domain.Lesson, *domain.Course, error)
	AuthorizeFileContent(ctx context.Context, id *ctxutil.Identity, fileID uuid.UUID) (*domain.File, *domain.Lesson, *domain.Course, error)
}

type accessService struct {
	log         *logger.Logger
	courses     repos.CourseRepo
	lessons     repos.LessonRepo
	files       repos.FileRepo
	enrollments repos.EnrollmentRepo
}

func NewAccessService(
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	lessons repos.LessonRepo,
	files repos.FileRepo,
	enrollments repos.EnrollmentRepo,
) AccessService {
	return &accessService{
		log:         baseLog.With("service", "AccessService"),
		courses:     courses,
		lessons:     lessons,
		files:       files,
		enrollments: enrollments,
	}
}

func (s *accessService) AuthorizeCourseView(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) (*domain.Course, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if decideView(id.IsAdmin(), course.IsPublished) != DecisionAllow {
		return nil, apierr.NotFound("course not found")
	}
	return course, nil
}

func (s *accessService) AuthorizeCourseContent(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) (*domain.Course, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.gateContent(ctx, id, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *accessService) AuthorizeLessonContent(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) (*domain.Lesson, *domain.Course, error) {
	lesson, err := s.lessons.GetByID(ctx, nil, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierr.NotFound("lesson not found")
		}
		return nil, nil, err
	}
	course, err := s.loadCourse(ctx, lesson.CourseID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.gateContent(ctx, id, course); err != nil {
		return nil, nil, err
	}
	return lesson, course, nil
}

func (s *accessService) AuthorizeFileContent(ctx context.Context, id *ctxutil.Identity, fileID uuid.UUID) (*domain.File, *domain.Lesson, *domain.Course, error) {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apierr.NotFound("file not found")
		}
		return nil, nil, nil, err
	}
	lesson, course, err := s.AuthorizeLessonContent(ctx, id, file.LessonID)
	if err != nil {
		return nil, nil, nil, err
	}
	return file, lesson, course, nil
}

func (s *accessService) loadCourse(ctx context.Context, courseID uuid.UUID) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("course not found")
		}
		return nil, err
	}
	return course, nil
}

func (s *accessService) gateContent(ctx context.Context, id *ctxutil.Identity, course *domain.Course) (Decision, error) {
	enrolled := false
	if !id.IsAdmin() && course.IsPublished {
		var err error
		enrolled, err = s.enrollments.Exists(ctx, nil, id.UserID, course.ID)
		if err != nil {
			return DecisionForbid, err
		}
	}
	switch decideContent(id.IsAdmin(), course.IsPublished, enrolled) {
	case DecisionHide:
		return DecisionHide, apierr.NotFound("course not found")
	case DecisionForbid:
		return DecisionForbid, apierr.Forbidden("enrollment required")
	}
	return DecisionAllow, nil
}
