package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

type FileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, file *domain.File) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.File, error)
	GetByIDWithLesson(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.File, error)
	ListByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*domain.File, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status domain.ProcessingStatus, errorMessage string) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type fileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFileRepo(db *gorm.DB, baseLog *logger.Logger) FileRepo {
	return &fileRepo{db: db, log: baseLog.With("repo", "FileRepo")}
}

func (r *fileRepo) Create(ctx context.Context, tx *gorm.DB, file *domain.File) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(file).Error
}

func (r *fileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.File, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var file domain.File
	if err := transaction.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepo) GetByIDWithLesson(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.File, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var file domain.File
	if err := transaction.WithContext(ctx).
		Preload("Lesson").
		First(&file, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepo) ListByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*domain.File, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var files []*domain.File
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status domain.ProcessingStatus, errorMessage string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	updates := map[string]interface{}{
		"processing_status": status,
		"error_message":     errorMessage,
	}
	return transaction.WithContext(ctx).
		Model(&domain.File{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *fileRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&domain.File{}, "id = ?", id).Error
}
