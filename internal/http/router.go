package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/phu024/elearning-rag-platform/internal/http/handlers"
	httpMW "github.com/phu024/elearning-rag-platform/internal/http/middleware"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	AllowedOrigins []string
	ServiceName    string

	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	CourseHandler   *httpH.CourseHandler
	LessonHandler   *httpH.LessonHandler
	FileHandler     *httpH.FileHandler
	ProgressHandler *httpH.ProgressHandler
	ChatHandler     *httpH.ChatHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}
	}

	requireAuth := cfg.AuthMiddleware.RequireAuth()
	requireAdmin := cfg.AuthMiddleware.RequireAdmin()

	protected := api.Group("/")
	protected.Use(requireAuth)
	{
		if cfg.AuthHandler != nil {
			protected.GET("/auth/me", cfg.AuthHandler.Me)
		}

		if cfg.UserHandler != nil {
			protected.GET("/users", requireAdmin, cfg.UserHandler.List)
			protected.GET("/users/:id", cfg.UserHandler.Get)
			protected.PUT("/users/:id", cfg.UserHandler.Update)
			protected.DELETE("/users/:id", requireAdmin, cfg.UserHandler.Delete)
		}

		if cfg.CourseHandler != nil {
			protected.GET("/courses", cfg.CourseHandler.List)
			protected.GET("/courses/enrolled", cfg.CourseHandler.ListEnrolled)
			protected.GET("/courses/:id", cfg.CourseHandler.Get)
			protected.POST("/courses/:id/enroll", cfg.CourseHandler.Enroll)
			protected.POST("/courses", requireAdmin, cfg.CourseHandler.Create)
			protected.PUT("/courses/:id", requireAdmin, cfg.CourseHandler.Update)
			protected.DELETE("/courses/:id", requireAdmin, cfg.CourseHandler.Delete)
		}

		if cfg.LessonHandler != nil {
			protected.GET("/lessons/course/:courseId", cfg.LessonHandler.ListByCourse)
			protected.GET("/lessons/:id", cfg.LessonHandler.Get)
			protected.POST("/lessons", requireAdmin, cfg.LessonHandler.Create)
			protected.PUT("/lessons/:id", requireAdmin, cfg.LessonHandler.Update)
			protected.DELETE("/lessons/:id", requireAdmin, cfg.LessonHandler.Delete)
		}

		if cfg.FileHandler != nil {
			protected.GET("/files/lesson/:lessonId", cfg.FileHandler.ListByLesson)
			protected.GET("/files/:id", cfg.FileHandler.Get)
			protected.GET("/files/:id/status", cfg.FileHandler.Status)
			protected.POST("/files/:lessonId/upload", requireAdmin, cfg.FileHandler.Upload)
			protected.PATCH("/files/:id/status", requireAdmin, cfg.FileHandler.UpdateStatus)
			protected.DELETE("/files/:id", requireAdmin, cfg.FileHandler.Delete)
		}

		if cfg.ProgressHandler != nil {
			protected.GET("/progress/me", cfg.ProgressHandler.ListMine)
			protected.POST("/progress/lessons/:lessonId/complete", cfg.ProgressHandler.MarkComplete)
			protected.POST("/progress/lessons/:lessonId/view", cfg.ProgressHandler.MarkViewed)
		}

		if cfg.ChatHandler != nil {
			protected.POST("/chat/query", cfg.ChatHandler.Query)
			protected.GET("/chat/history/course/:courseId", cfg.ChatHandler.CourseHistory)
			protected.GET("/chat/history/:lessonId", cfg.ChatHandler.LessonHistory)
		}
	}

	return r
}
