package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *domain.Lesson) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Lesson, error)
	GetByIDWithFiles(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Lesson, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*domain.Lesson, error)
	// OrderTaken reports whether another lesson in the course already
	// uses the given order. excludeID skips the lesson being updated so
	// renumbering to its current value is not a spurious conflict.
	OrderTaken(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order int, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, lesson *domain.Lesson) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	CountByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int64, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *domain.Lesson) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var lesson domain.Lesson
	if err := transaction.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) GetByIDWithFiles(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var lesson domain.Lesson
	if err := transaction.WithContext(ctx).
		Preload("Files").
		First(&lesson, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*domain.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var lessons []*domain.Lesson
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("lesson_order ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepo) OrderTaken(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order int, excludeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("course_id = ? AND lesson_order = ?", courseID, order)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *lessonRepo) Update(ctx context.Context, tx *gorm.DB, lesson *domain.Lesson) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(lesson).Error
}

func (r *lessonRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&domain.Lesson{}, "id = ?", id).Error
}

func (r *lessonRepo) CountByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
