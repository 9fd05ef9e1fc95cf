package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

type ProgressRepo interface {
	// UpsertComplete atomically marks the (user, lesson) pair complete.
	// Idempotent: a second call keeps completed=true and only moves the
	// timestamps forward.
	UpsertComplete(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID, now time.Time) (*domain.Progress, error)
	// UpsertView atomically refreshes last_viewed without touching
	// completion state.
	UpsertView(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID, now time.Time) (*domain.Progress, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Progress, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

// Both upserts are single conditional writes on the unique
// (user_id, lesson_id) index so concurrent requests from the same user
// cannot race a read-then-write cycle.

func (r *progressRepo) UpsertComplete(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID, now time.Time) (*domain.Progress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	row := domain.Progress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
		LastViewed:  now,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"completed":    true,
				"completed_at": now,
				"last_viewed":  now,
				"updated_at":   now,
			}),
		}).
		Create(&row).Error; err != nil {
		return nil, err
	}
	return r.get(ctx, transaction, userID, lessonID)
}

func (r *progressRepo) UpsertView(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID, now time.Time) (*domain.Progress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	row := domain.Progress{
		UserID:     userID,
		LessonID:   lessonID,
		LastViewed: now,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"last_viewed": now,
				"updated_at":  now,
			}),
		}).
		Create(&row).Error; err != nil {
		return nil, err
	}
	return r.get(ctx, transaction, userID, lessonID)
}

func (r *progressRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.Progress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*domain.Progress
	if err := transaction.WithContext(ctx).
		Preload("Lesson").
		Preload("Lesson.Course").
		Where("user_id = ?", userID).
		Order("last_viewed DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepo) get(ctx context.Context, transaction *gorm.DB, userID, lessonID uuid.UUID) (*domain.Progress, error) {
	var row domain.Progress
	if err := transaction.WithContext(ctx).
		First(&row, "user_id = ? AND lesson_id = ?", userID, lessonID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
