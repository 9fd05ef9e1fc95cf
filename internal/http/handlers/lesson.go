package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/http/response"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/services"
)

type LessonHandler struct {
	lessonService services.LessonService
}

func NewLessonHandler(lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// POST /api/lessons
func (lh *LessonHandler) Create(c *gin.Context) {
	var req struct {
		CourseID    string `json:"course_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Order       int    `json:"order"`
		ContentText string `json:"content_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidation(c, err)
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid course id"))
		return
	}
	lesson, err := lh.lessonService.Create(c.Request.Context(), courseID, req.Title, req.Description, req.Order, req.ContentText)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, lesson)
}

// GET /api/lessons/course/:courseId
func (lh *LessonHandler) ListByCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid course id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	lessons, err := lh.lessonService.ListByCourse(c.Request.Context(), identity, courseID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, lessons)
}

// GET /api/lessons/:id
func (lh *LessonHandler) Get(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid lesson id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	lesson, err := lh.lessonService.Get(c.Request.Context(), identity, lessonID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, lesson)
}

// PUT /api/lessons/:id
func (lh *LessonHandler) Update(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid lesson id"))
		return
	}
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Order       *int    `json:"order"`
		ContentText *string `json:"content_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidation(c, err)
		return
	}
	lesson, err := lh.lessonService.Update(c.Request.Context(), lessonID, services.LessonUpdate{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
		ContentText: req.ContentText,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, lesson)
}

// DELETE /api/lessons/:id
func (lh *LessonHandler) Delete(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid lesson id"))
		return
	}
	if err := lh.lessonService.Delete(c.Request.Context(), lessonID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
