package domain

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileType is a closed enum derived from the upload's extension.
type FileType string

const (
	FileTypePDF   FileType = "PDF"
	FileTypeDOCX  FileType = "DOCX"
	FileTypePPTX  FileType = "PPTX"
	FileTypeXLSX  FileType = "XLSX"
	FileTypeTXT   FileType = "TXT"
	FileTypeVideo FileType = "VIDEO"
	FileTypeAudio FileType = "AUDIO"
	FileTypeImage FileType = "IMAGE"
	FileTypeOther FileType = "OTHER"
)

// ProcessingStatus tracks the external AI service's ingestion of an
// uploaded file.
type ProcessingStatus string

const (
	ProcessingPending    ProcessingStatus = "PENDING"
	ProcessingProcessing ProcessingStatus = "PROCESSING"
	ProcessingDone       ProcessingStatus = "DONE"
	ProcessingFailed     ProcessingStatus = "FAILED"
)

var extToFileType = map[string]FileType{
	".pdf":  FileTypePDF,
	".docx": FileTypeDOCX,
	".doc":  FileTypeDOCX,
	".pptx": FileTypePPTX,
	".ppt":  FileTypePPTX,
	".xlsx": FileTypeXLSX,
	".xls":  FileTypeXLSX,
	".txt":  FileTypeTXT,
	".mp4":  FileTypeVideo,
	".avi":  FileTypeVideo,
	".mov":  FileTypeVideo,
	".mp3":  FileTypeAudio,
	".wav":  FileTypeAudio,
	".jpg":  FileTypeImage,
	".jpeg": FileTypeImage,
	".png":  FileTypeImage,
	".gif":  FileTypeImage,
}

var extToMime = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".ppt":  "application/vnd.ms-powerpoint",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
	".txt":  "text/plain",
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

func FileTypeFromFilename(filename string) FileType {
	ext := strings.ToLower(filepath.Ext(filename))
	if ft, ok := extToFileType[ext]; ok {
		return ft
	}
	return FileTypeOther
}

func MimeTypeFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mt, ok := extToMime[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}

type File struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Lesson           *Lesson          `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	Filename         string           `gorm:"not null;column:filename" json:"filename"`
	FileType         FileType         `gorm:"not null;column:file_type" json:"file_type"`
	StorageKey       string           `gorm:"not null;column:storage_key" json:"storage_key"`
	SizeBytes        int64            `gorm:"not null;column:size_bytes" json:"size_bytes"`
	ProcessingStatus ProcessingStatus `gorm:"not null;default:'PENDING';column:processing_status" json:"processing_status"`
	ErrorMessage     string           `gorm:"column:error_message" json:"error_message,omitempty"`
	CreatedAt        time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null" json:"updated_at"`
}

func (File) TableName() string { return "file" }

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
