package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

// CourseCounts carries the aggregate counters returned alongside course
// listings.
type CourseCounts struct {
	Lessons     int64 `json:"lessons"`
	Enrollments int64 `json:"enrollments"`
}

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, course *domain.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Course, error)
	GetByIDWithLessons(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Course, error)
	List(ctx context.Context, tx *gorm.DB, publishedOnly bool) ([]*domain.Course, error)
	Counts(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (CourseCounts, error)
	Update(ctx context.Context, tx *gorm.DB, course *domain.Course) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, course *domain.Course) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var course domain.Course
	if err := transaction.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByIDWithLessons(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var course domain.Course
	if err := transaction.WithContext(ctx).
		// Outline columns only. Lesson content is enrollment-gated and
		// served through the lesson endpoints, never the course detail.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.
				Select("id", "course_id", "title", "description", "lesson_order", "created_at", "updated_at").
				Order("lesson_order ASC")
		}).
		First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context, tx *gorm.DB, publishedOnly bool) ([]*domain.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	var courses []*domain.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) Counts(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (CourseCounts, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var counts CourseCounts
	if err := transaction.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&counts.Lessons).Error; err != nil {
		return CourseCounts{}, err
	}
	if err := transaction.WithContext(ctx).
		Model(&domain.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&counts.Enrollments).Error; err != nil {
		return CourseCounts{}, err
	}
	return counts, nil
}

func (r *courseRepo) Update(ctx context.Context, tx *gorm.DB, course *domain.Course) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Delete(&domain.Course{}, "id = ?", id).Error
}
