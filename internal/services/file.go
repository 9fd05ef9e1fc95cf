package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/platform/aiclient"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/platform/rediscache"
	"github.com/phu024/elearning-rag-platform/internal/platform/s3store"
	"github.com/phu024/elearning-rag-platform/internal/repos"
)

const (
	signedURLTTL   = 24 * time.Hour
	maxUploadBytes = 100 << 20
)

// FileWithURL pairs a file record with a short-lived download URL.
type FileWithURL struct {
	*domain.File
	DownloadURL string `json:"download_url"`
}

type FileService interface {
	// Upload stores the object, records it as PENDING, then notifies the
	// AI service. A successful notify moves the record to PROCESSING; a
	// failed notify leaves it PENDING and is only logged.
	Upload(ctx context.Context, lessonID uuid.UUID, filename string, size int64, body io.Reader) (*domain.File, error)
	// Get returns the file with a presigned download URL, enrollment-
	// gated via the owning lesson's course.
	Get(ctx context.Context, id *ctxutil.Identity, fileID uuid.UUID) (*FileWithURL, error)
	// Status reports the ingestion state of a file, gated the same way
	// as Get but without minting a download URL.
	Status(ctx context.Context, id *ctxutil.Identity, fileID uuid.UUID) (*domain.File, error)
	ListByLesson(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) ([]*domain.File, error)
	// UpdateStatus is the AI service's callback when ingestion finishes
	// or fails.
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.ProcessingStatus, errorMessage string) (*domain.File, error)
	Delete(ctx context.Context, fileID uuid.UUID) error
}

type fileService struct {
	log     *logger.Logger
	files   repos.FileRepo
	lessons repos.LessonRepo
	access  AccessService
	bucket  s3store.BucketService
	ai      aiclient.Client
	cache   rediscache.Cache
}

func NewFileService(
	baseLog *logger.Logger,
	files repos.FileRepo,
	lessons repos.LessonRepo,
	access AccessService,
	bucket s3store.BucketService,
	ai aiclient.Client,
	cache rediscache.Cache,
) FileService {
	return &fileService{
		log:     baseLog.With("service", "FileService"),
		files:   files,
		lessons: lessons,
		access:  access,
		bucket:  bucket,
		ai:      ai,
		cache:   cache,
	}
}

func (s *fileService) Upload(ctx context.Context, lessonID uuid.UUID, filename string, size int64, body io.Reader) (*domain.File, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." {
		return nil, apierr.Validation("filename is required")
	}
	fileType := domain.FileTypeFromFilename(filename)
	if fileType == domain.FileTypeOther {
		return nil, apierr.Validation("unsupported file type %q", filepath.Ext(filename))
	}
	if size > maxUploadBytes {
		return nil, apierr.Validation("file exceeds the %dMB upload limit", maxUploadBytes>>20)
	}
	lesson, err := s.lessons.GetByID(ctx, nil, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("lesson not found")
		}
		return nil, err
	}

	key := fmt.Sprintf("course-%s/lesson-%s/%d-%s", lesson.CourseID, lesson.ID, time.Now().UnixMilli(), filename)
	if err := s.bucket.Upload(ctx, key, body, domain.MimeTypeFromFilename(filename)); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	file := &domain.File{
		LessonID:         lessonID,
		Filename:         filename,
		FileType:         fileType,
		StorageKey:       key,
		SizeBytes:        size,
		ProcessingStatus: domain.ProcessingPending,
	}
	if err := s.files.Create(ctx, nil, file); err != nil {
		// Best effort: do not leave an orphaned object behind the
		// failed record.
		if delErr := s.bucket.Delete(ctx, key); delErr != nil {
			s.log.Warn("Orphaned object left after failed create", "key", key, "error", delErr)
		}
		return nil, err
	}

	if err := s.ai.NotifyProcess(ctx, aiclient.ProcessRequest{
		FileID:     file.ID,
		LessonID:   lesson.ID,
		CourseID:   lesson.CourseID,
		StorageKey: key,
		FileType:   string(fileType),
	}); err != nil {
		// The upload already succeeded; ingestion can be retried later.
		s.log.Warn("AI processing notification failed", "file_id", file.ID, "error", err)
		return file, nil
	}
	if err := s.files.UpdateStatus(ctx, nil, file.ID, domain.ProcessingProcessing, ""); err != nil {
		s.log.Warn("Failed to mark file as processing", "file_id", file.ID, "error", err)
		return file, nil
	}
	file.ProcessingStatus = domain.ProcessingProcessing
	return file, nil
}

func (s *fileService) Get(ctx context.Context, id *ctxutil.Identity, fileID uuid.UUID) (*FileWithURL, error) {
	file, _, _, err := s.access.AuthorizeFileContent(ctx, id, fileID)
	if err != nil {
		return nil, err
	}
	url, err := s.signedURL(ctx, file)
	if err != nil {
		return nil, err
	}
	return &FileWithURL{File: file, DownloadURL: url}, nil
}

func (s *fileService) Status(ctx context.Context, id *ctxutil.Identity, fileID uuid.UUID) (*domain.File, error) {
	file, _, _, err := s.access.AuthorizeFileContent(ctx, id, fileID)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (s *fileService) ListByLesson(ctx context.Context, id *ctxutil.Identity, lessonID uuid.UUID) ([]*domain.File, error) {
	if _, _, err := s.access.AuthorizeLessonContent(ctx, id, lessonID); err != nil {
		return nil, err
	}
	return s.files.ListByLesson(ctx, nil, lessonID)
}

func (s *fileService) UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.ProcessingStatus, errorMessage string) (*domain.File, error) {
	switch status {
	case domain.ProcessingPending, domain.ProcessingProcessing, domain.ProcessingDone, domain.ProcessingFailed:
	default:
		return nil, apierr.Validation("unknown processing status %q", status)
	}
	if _, err := s.files.GetByID(ctx, nil, fileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("file not found")
		}
		return nil, err
	}
	if err := s.files.UpdateStatus(ctx, nil, fileID, status, errorMessage); err != nil {
		return nil, err
	}
	s.log.Info("File status updated", "file_id", fileID, "status", status)
	return s.files.GetByID(ctx, nil, fileID)
}

func (s *fileService) Delete(ctx context.Context, fileID uuid.UUID) error {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("file not found")
		}
		return err
	}
	if err := s.files.Delete(ctx, nil, fileID); err != nil {
		return err
	}
	s.cache.Del(ctx, signedURLCacheKey(file.ID))
	if err := s.bucket.Delete(ctx, file.StorageKey); err != nil {
		// The record is gone; a leftover object is harmless and can be
		// swept out of band.
		s.log.Warn("Failed to delete stored object", "key", file.StorageKey, "error", err)
	}
	s.log.Info("File deleted", "file_id", fileID)
	return nil
}

func (s *fileService) signedURL(ctx context.Context, file *domain.File) (string, error) {
	cacheKey := signedURLCacheKey(file.ID)
	if url, ok := s.cache.Get(ctx, cacheKey); ok {
		return url, nil
	}
	url, err := s.bucket.SignedURL(ctx, file.StorageKey, signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("sign url: %w", err)
	}
	// Cached shorter than the URL's validity so a cache hit never hands
	// out an expired link.
	s.cache.Set(ctx, cacheKey, url, signedURLTTL/2)
	return url, nil
}

func signedURLCacheKey(fileID uuid.UUID) string {
	return "file:url:" + fileID.String()
}
