package app

import (
	"gorm.io/gorm"

	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/repos"
)

type Repos struct {
	User       repos.UserRepo
	Course     repos.CourseRepo
	Lesson     repos.LessonRepo
	File       repos.FileRepo
	Enrollment repos.EnrollmentRepo
	Progress   repos.ProgressRepo
	ChatRecord repos.ChatRecordRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		Course:     repos.NewCourseRepo(db, log),
		Lesson:     repos.NewLessonRepo(db, log),
		File:       repos.NewFileRepo(db, log),
		Enrollment: repos.NewEnrollmentRepo(db, log),
		Progress:   repos.NewProgressRepo(db, log),
		ChatRecord: repos.NewChatRecordRepo(db, log),
	}
}
