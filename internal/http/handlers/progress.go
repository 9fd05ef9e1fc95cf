package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/http/response"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GET /api/progress/me
func (ph *ProgressHandler) ListMine(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	rows, err := ph.progressService.ListMine(c.Request.Context(), identity.UserID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// POST /api/progress/lessons/:lessonId/complete
func (ph *ProgressHandler) MarkComplete(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid lesson id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	row, err := ph.progressService.MarkComplete(c.Request.Context(), identity, lessonID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, row)
}

// POST /api/progress/lessons/:lessonId/view
func (ph *ProgressHandler) MarkViewed(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid lesson id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	row, err := ph.progressService.MarkViewed(c.Request.Context(), identity, lessonID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, row)
}
