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

// LessonUpdate carries the mutable lesson fields. Nil pointers leave
// the field untouched.
type LessonUpdate struct {
	Title       *string
	Description *string
	Order       *int
	ContentText *string
}

type LessonService interface {
	Create(ctx context.Context, courseID uuid.UUID, title, description string, order int, contentText string) (*domain.Lesson, error)
	// ListByCourse returns the lessons of a course the caller may read
	// content from. Enrollment-gated for non-admins.
	ListByCourse(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) ([]*domain.Lesson, error)
	// Get returns a single lesson with its files, enrollment-gated via
	// the owning course.
	Get(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) (*domain.Lesson, error)
	Update(ctx context.Context, lessonID uuid.UUID, update LessonUpdate) (*domain.Lesson, error)
	Delete(ctx context.Context, lessonID uuid.UUID) error
}

type lessonService struct {
	log     *logger.Logger
	courses repos.CourseRepo
	lessons repos.LessonRepo
	access  AccessService
}

func NewLessonService(
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	lessons repos.LessonRepo,
	access AccessService,
) LessonService {
	return &lessonService{
		log:     baseLog.With("service", "LessonService"),
		courses: courses,
		lessons: lessons,
		access:  access,
	}
}

func (s *lessonService) Create(ctx context.Context, courseID uuid.UUID, title, description string, order int, contentText string) (*domain.Lesson, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apierr.Validation("title is required")
	}
	if order < 1 {
		return nil, apierr.Validation("order must be a positive integer")
	}
	if _, err := s.courses.GetByID(ctx, nil, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("course not found")
		}
		return nil, err
	}
	taken, err := s.lessons.OrderTaken(ctx, nil, courseID, order, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apierr.Conflict("lesson order %d is already used in this course", order)
	}

	lesson := &domain.Lesson{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		Order:       order,
		ContentText: contentText,
	}
	if err := s.lessons.Create(ctx, nil, lesson); err != nil {
		// The pre-check can lose a race; the unique index is the final
		// arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("lesson order %d is already used in this course", order)
		}
		return nil, err
	}
	s.log.Info("Lesson created", "lesson_id", lesson.ID, "course_id", courseID, "order", order)
	return lesson, nil
}

func (s *lessonService) ListByCourse(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) ([]*domain.Lesson, error) {
	if _, err := s.access.AuthorizeCourseContent(ctx, id, courseID); err != nil {
		return nil, err
	}
	return s.lessons.ListByCourse(ctx, nil, courseID)
}

func (s *lessonService) Get(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) (*domain.Lesson, error) {
	if _, _, err := s.access.AuthorizeLessonContent(ctx, id, lessonID); err != nil {
		return nil, err
	}
	return s.lessons.GetByIDWithFiles(ctx, nil, lessonID)
}

func (s *lessonService) Update(ctx context.Context, lessonID uuid.UUID, update LessonUpdate) (*domain.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, nil, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("lesson not found")
		}
		return nil, err
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apierr.Validation("title cannot be empty")
		}
		lesson.Title = title
	}
	if update.Description != nil {
		lesson.Description = *update.Description
	}
	if update.ContentText != nil {
		lesson.ContentText = *update.ContentText
	}
	if update.Order != nil {
		if *update.Order < 1 {
			return nil, apierr.Validation("order must be a positive integer")
		}
		taken, err := s.lessons.OrderTaken(ctx, nil, lesson.CourseID, *update.Order, lesson.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apierr.Conflict("lesson order %d is already used in this course", *update.Order)
		}
		lesson.Order = *update.Order
	}
	if err := s.lessons.Update(ctx, nil, lesson); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("lesson order %d is already used in this course", lesson.Order)
		}
		return nil, err
	}
	return lesson, nil
}

func (s *lessonService) Delete(ctx context.Context, lessonID uuid.UUID) error {
	if _, err := s.lessons.GetByID(ctx, nil, lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("lesson not found")
		}
		return err
	}
	if err := s.lessons.Delete(ctx, nil, lessonID); err != nil {
		return err
	}
	s.log.Info("Lesson deleted", "lesson_id", lessonID)
	return nil
}
