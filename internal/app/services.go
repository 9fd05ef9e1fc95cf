package app

import (
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/services"
)

type Services struct {
	Access   services.AccessService
	Auth     services.AuthService
	User     services.UserService
	Course   services.CourseService
	Lesson   services.LessonService
	File     services.FileService
	Progress services.ProgressService
	Chat     services.ChatService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")
	access := services.NewAccessService(log, r.Course, r.Lesson, r.File, r.Enrollment)
	return Services{
		Access:   access,
		Auth:     services.NewAuthService(db, log, r.User, cfg.JWTSecretKey),
		User:     services.NewUserService(log, r.User),
		Course:   services.NewCourseService(log, r.Course, r.Enrollment, access),
		Lesson:   services.NewLessonService(log, r.Course, r.Lesson, access),
		File:     services.NewFileService(log, r.File, r.Lesson, access, c.Bucket, c.AI, c.Cache),
		Progress: services.NewProgressService(log, r.Progress, access),
		Chat:     services.NewChatService(log, r.ChatRecord, r.Enrollment, access, c.AI),
	}
}
