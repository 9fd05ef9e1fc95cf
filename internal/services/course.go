package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/repos"
)

// CourseSummary is a course plus its aggregate counters, the shape the
// catalog listing returns.
type CourseSummary struct {
	*domain.Course
	Counts repos.CourseCounts `json:"counts"`
}

// CourseUpdate carries the mutable course fields. Nil pointers leave
// the field untouched, so publishing and editing are the same call.
type CourseUpdate struct {
	Title        *string
	Description  *string
	ThumbnailURL *string
	IsPublished  *bool
}

type CourseService interface {
	Create(ctx context.Context, id *ctxutil.Identity, title, description, thumbnailURL string) (*domain.Course, error)
	// List returns every course for admins and only published courses
	// for everyone else.
	List(ctx context.Context, id *ctxutil.Identity) ([]*CourseSummary, error)
	// Get returns course metadata with its lesson outline. Visibility
	// only; lesson content stays behind the enrollment gate.
	Get(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) (*domain.Course, error)
	Update(ctx context.Context, courseID uuid.UUID, update CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, courseID uuid.UUID) error
	// Enroll records the caller into a published course. Enrolling twice
	// is a conflict, including under concurrency.
	Enroll(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) (*domain.Enrollment, error)
	ListEnrolledCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type courseService struct {
	log         *logger.Logger
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
	access      AccessService
}

func NewCourseService(
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	enrollments repos.EnrollmentRepo,
	access AccessService,
) CourseService {
	return &courseService{
		log:         baseLog.With("service", "CourseService"),
		courses:     courses,
		enrollments: enrollments,
		access:      access,
	}
}

func (s *courseService) Create(ctx context.Context, id *ctxutil.Identity, title, description, thumbnailURL string) (*domain.Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apierr.Validation("title is required")
	}
	course := &domain.Course{
		Title:        title,
		Description:  description,
		ThumbnailURL: thumbnailURL,
		InstructorID: id.UserID,
		IsPublished:  false,
	}
	if err := s.courses.Create(ctx, nil, course); err != nil {
		return nil, err
	}
	s.log.Info("Course created", "course_id", course.ID, "instructor_id", id.UserID)
	return course, nil
}

func (s *courseService) List(ctx context.Context, id *ctxutil.Identity) ([]*CourseSummary, error) {
	courses, err := s.courses.List(ctx, nil, !id.IsAdmin())
	if err != nil {
		return nil, err
	}
	summaries := make([]*CourseSummary, 0, len(courses))
	for _, course := range courses {
		counts, err := s.courses.Counts(ctx, nil, course.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &CourseSummary{Course: course, Counts: counts})
	}
	return summaries, nil
}

func (s *courseService) Get(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) (*domain.Course, error) {
	if _, err := s.access.AuthorizeCourseView(ctx, id, courseID); err != nil {
		return nil, err
	}
	course, err := s.courses.GetByIDWithLessons(ctx, nil, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("course not found")
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, courseID uuid.UUID, update CourseUpdate) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("course not found")
		}
		return nil, err
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apierr.Validation("title cannot be empty")
		}
		course.Title = title
	}
	if update.Description != nil {
		course.Description = *update.Description
	}
	if update.ThumbnailURL != nil {
		course.ThumbnailURL = *update.ThumbnailURL
	}
	if update.IsPublished != nil {
		course.IsPublished = *update.IsPublished
	}
	if err := s.courses.Update(ctx, nil, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, courseID uuid.UUID) error {
	if _, err := s.courses.GetByID(ctx, nil, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("course not found")
		}
		return err
	}
	if err := s.courses.Delete(ctx, nil, courseID); err != nil {
		return err
	}
	s.log.Info("Course deleted", "course_id", courseID)
	return nil
}

func (s *courseService) Enroll(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) (*domain.Enrollment, error) {
	course, err := s.access.AuthorizeCourseView(ctx, id, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		// Only admins can reach an unpublished course, and even they
		// cannot enroll in one.
		return nil, apierr.Validation("course is not published")
	}
	enrollment := &domain.Enrollment{UserID: id.UserID, CourseID: courseID}
	if err := s.enrollments.Create(ctx, nil, enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("already enrolled in this course")
		}
		return nil, err
	}
	s.log.Info("User enrolled", "user_id", id.UserID, "course_id", courseID)
	return enrollment, nil
}

func (s *courseService) ListEnrolledCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.enrollments.ListCourseIDsByUser(ctx, nil, userID)
}
