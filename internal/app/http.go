package app

import (
	"gorm.io/gorm"

	apphttp "github.com/phu024/elearning-rag-platform/internal/http"
	httpH "github.com/phu024/elearning-rag-platform/internal/http/handlers"
	httpMW "github.com/phu024/elearning-rag-platform/internal/http/middleware"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

type Handlers struct {
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Course   *httpH.CourseHandler
	Lesson   *httpH.LessonHandler
	File     *httpH.FileHandler
	Progress *httpH.ProgressHandler
	Chat     *httpH.ChatHandler
	Health   *httpH.HealthHandler
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireHandlers(db *gorm.DB, log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     httpH.NewAuthHandler(s.Auth, s.User),
		User:     httpH.NewUserHandler(s.User),
		Course:   httpH.NewCourseHandler(s.Course),
		Lesson:   httpH.NewLessonHandler(s.Lesson),
		File:     httpH.NewFileHandler(s.File),
		Progress: httpH.NewProgressHandler(s.Progress),
		Chat:     httpH.NewChatHandler(s.Chat),
		Health:   httpH.NewHealthHandler(db),
	}
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, s.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *apphttp.Server {
	log.Info("Wiring router...")
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:            log,
		AuthMiddleware: mw.Auth,
		AllowedOrigins: cfg.AllowedOrigins,
		ServiceName:    cfg.ServiceName,

		AuthHandler:     h.Auth,
		UserHandler:     h.User,
		CourseHandler:   h.Course,
		LessonHandler:   h.Lesson,
		FileHandler:     h.File,
		ProgressHandler: h.Progress,
		ChatHandler:     h.Chat,
		HealthHandler:   h.Health,
	})
}
