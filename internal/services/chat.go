package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/aiclient"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/repos"
)

// ChatQuery is a question scoped to a lesson or a whole course.
type ChatQuery struct {
	Query    string
	Scope    domain.ChatScope
	LessonID *uuid.UUID
	CourseID *uuid.UUID
}

type ChatService interface {
	// Query proxies the question to the AI service. Access is gated on
	// the owning course before anything leaves this process. If the AI
	// service fails or times out, nothing is persisted.
	Query(ctx context.Context, id *ctxutil.Identity, q ChatQuery) (*domain.ChatRecord, error)
	HistoryForLesson(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) ([]*domain.ChatRecord, error)
	HistoryForCourse(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) ([]*domain.ChatRecord, error)
}

type chatService struct {
	log         *logger.Logger
	records     repos.ChatRecordRepo
	enrollments repos.EnrollmentRepo
	access      AccessService
	ai          aiclient.Client
}

func NewChatService(
	baseLog *logger.Logger,
	records repos.ChatRecordRepo,
	enrollments repos.EnrollmentRepo,
	access AccessService,
	ai aiclient.Client,
) ChatService {
	return &chatService{
		log:         baseLog.With("service", "ChatService"),
		records:     records,
		enrollments: enrollments,
		access:      access,
		ai:          ai,
	}
}

func (s *chatService) Query(ctx context.Context, id *ctxutil.Identity, q ChatQuery) (*domain.ChatRecord, error) {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return nil, apierr.Validation("query is required")
	}
	if !q.Scope.Valid() {
		return nil, apierr.Validation("scope must be %q or %q", domain.ScopeLesson, domain.ScopeCourse)
	}

	var lessonID, courseID *uuid.UUID
	switch q.Scope {
	case domain.ScopeLesson:
		if q.LessonID == nil {
			return nil, apierr.Validation("lessonId is required for lesson scope")
		}
		lesson, course, err := s.access.AuthorizeLessonContent(ctx, id, *q.LessonID)
		if err != nil {
			return nil, err
		}
		lessonID = &lesson.ID
		courseID = &course.ID
	case domain.ScopeCourse:
		if q.CourseID == nil {
			return nil, apierr.Validation("courseId is required for course scope")
		}
		course, err := s.access.AuthorizeCourseContent(ctx, id, *q.CourseID)
		if err != nil {
			return nil, err
		}
		courseID = &course.ID
	}

	enrolledIDs, err := s.enrollments.ListCourseIDsByUser(ctx, nil, id.UserID)
	if err != nil {
		return nil, err
	}

	answer, err := s.ai.Query(ctx, aiclient.QueryRequest{
		Query:             q.Query,
		Scope:             string(q.Scope),
		LessonID:          lessonID,
		CourseID:          courseID,
		UserID:            id.UserID,
		EnrolledCourseIDs: enrolledIDs,
	})
	if err != nil {
		s.log.Warn("AI query failed", "user_id", id.UserID, "error", err)
		return nil, apierr.Dependency("chat service is unavailable")
	}

	record := &domain.ChatRecord{
		UserID:   id.UserID,
		Scope:    q.Scope,
		LessonID: lessonID,
		CourseID: courseID,
		Query:    q.Query,
		Response: answer.Response,
		Sources:  datatypes.JSON(answer.Sources),
	}
	if err := s.records.Create(ctx, nil, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *chatService) HistoryForLesson(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) ([]*domain.ChatRecord, error) {
	if _, _, err := s.access.AuthorizeLessonContent(ctx, id, lessonID); err != nil {
		return nil, err
	}
	return s.records.ListByUserAndLesson(ctx, nil, id.UserID, lessonID)
}

func (s *chatService) HistoryForCourse(ctx context.Context, id *ctxutil.Identity, courseID uuid.UUID) ([]*domain.ChatRecord, error) {
	if _, err := s.access.AuthorizeCourseContent(ctx, id, courseID); err != nil {
		return nil, err
	}
	return s.records.ListByUserAndCourse(ctx, nil, id.UserID, courseID)
}
