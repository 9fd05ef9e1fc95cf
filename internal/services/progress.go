package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/repos"
)

type ProgressService interface {
	// MarkComplete records completion for the caller on a lesson they
	// can read. Idempotent: repeated calls return completed=true with a
	// refreshed timestamp.
	MarkComplete(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) (*domain.Progress, error)
	// MarkViewed refreshes last-viewed without changing completion.
	MarkViewed(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) (*domain.Progress, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error)
}

type progressService struct {
	log      *logger.Logger
	progress repos.ProgressRepo
	access   AccessService
}

func NewProgressService(baseLog *logger.Logger, progress repos.ProgressRepo, access AccessService) ProgressService {
	return &progressService{
		log:      baseLog.With("service", "ProgressService"),
		progress: progress,
		access:   access,
	}
}

func (s *progressService) MarkComplete(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) (*domain.Progress, error) {
	if _, _, err := s.access.AuthorizeLessonContent(ctx, id, lessonID); err != nil {
		return nil, err
	}
	return s.progress.UpsertComplete(ctx, nil, id.UserID, lessonID, time.Now())
}

func (s *progressService) MarkViewed(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) (*domain.Progress, error) {
	if _, _, err := s.access.AuthorizeLessonContent(ctx, id, lessonID); err != nil {
		return nil, err
	}
	return s.progress.UpsertView(ctx, nil, id.UserID, lessonID, time.Now())
}

func (s *progressService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error) {
	return s.progress.ListByUser(ctx, nil, userID)
}
