package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

type ChatRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *domain.ChatRecord) error
	ListByUserAndLesson(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID) ([]*domain.ChatRecord, error)
	ListByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) ([]*domain.ChatRecord, error)
}

type chatRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatRecordRepo(db *gorm.DB, baseLog *logger.Logger) ChatRecordRepo {
	return &chatRecordRepo{db: db, log: baseLog.With("repo", "ChatRecordRepo")}
}

func (r *chatRecordRepo) Create(ctx context.Context, tx *gorm.DB, record *domain.ChatRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(record).Error
}

func (r *chatRecordRepo) ListByUserAndLesson(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID) ([]*domain.ChatRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var records []*domain.ChatRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND scope = ? AND lesson_id = ?", userID, domain.ScopeLesson, lessonID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *chatRecordRepo) ListByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) ([]*domain.ChatRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var records []*domain.ChatRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND scope = ? AND course_id = ?", userID, domain.ScopeCourse, courseID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
