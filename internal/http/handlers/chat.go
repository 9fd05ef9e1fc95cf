package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/domain"
	"github.com/phu024/elearning-rag-platform/internal/http/response"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// POST /api/chat/query
func (ch *ChatHandler) Query(c *gin.Context) {
	var req struct {
		Query    string `json:"query"`
		Scope    string `json:"scope"`
		LessonID string `json:"lesson_id"`
		CourseID string `json:"course_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidation(c, err)
		return
	}
	q := services.ChatQuery{
		Query: req.Query,
		Scope: domain.ChatScope(req.Scope),
	}
	if req.LessonID != "" {
		lessonID, err := uuid.Parse(req.LessonID)
		if err != nil {
			response.RespondError(c, apierr.Validation("invalid lesson id"))
			return
		}
		q.LessonID = &lessonID
	}
	if req.CourseID != "" {
		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			response.RespondError(c, apierr.Validation("invalid course id"))
			return
		}
		q.CourseID = &courseID
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	record, err := ch.chatService.Query(c.Request.Context(), identity, q)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, record)
}

// GET /api/chat/history/:lessonId
func (ch *ChatHandler) LessonHistory(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid lesson id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	records, err := ch.chatService.HistoryForLesson(c.Request.Context(), identity, lessonID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, records)
}

// GET /api/chat/history/course/:courseId
func (ch *ChatHandler) CourseHistory(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid course id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	records, err := ch.chatService.HistoryForCourse(c.Request.Context(), identity, courseID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, records)
}
