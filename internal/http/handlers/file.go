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

type FileHandler struct {
	fileService services.FileService
}

func NewFileHandler(fileService services.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// POST /api/files/:lessonId/upload
func (fh *FileHandler) Upload(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid lesson id"))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, apierr.Validation("multipart field %q is required", "file"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, apierr.Validation("cannot read uploaded file"))
		return
	}
	defer src.Close()

	file, err := fh.fileService.Upload(c.Request.Context(), lessonID, fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, file)
}

// GET /api/files/:id
func (fh *FileHandler) Get(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid file id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	file, err := fh.fileService.Get(c.Request.Context(), identity, fileID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, file)
}

// GET /api/files/:id/status
func (fh *FileHandler) Status(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid file id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	file, err := fh.fileService.Status(c.Request.Context(), identity, fileID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"file_id":           file.ID,
		"processing_status": file.ProcessingStatus,
		"error_message":     file.ErrorMessage,
	})
}

// GET /api/files/lesson/:lessonId
func (fh *FileHandler) ListByLesson(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid lesson id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	files, err := fh.fileService.ListByLesson(c.Request.Context(), identity, lessonID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, files)
}

// PATCH /api/files/:id/status
func (fh *FileHandler) UpdateStatus(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid file id"))
		return
	}
	var req struct {
		Status       domain.ProcessingStatus `json:"status"`
		ErrorMessage string                  `json:"error_message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidation(c, err)
		return
	}
	file, err := fh.fileService.UpdateStatus(c.Request.Context(), fileID, req.Status, req.ErrorMessage)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, file)
}

// DELETE /api/files/:id
func (fh *FileHandler) Delete(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid file id"))
		return
	}
	if err := fh.fileService.Delete(c.Request.Context(), fileID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
