package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/http/response"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/services"
)

type CourseHandler struct {
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// POST /api/courses
func (ch *CourseHandler) Create(c *gin.Context) {
	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidation(c, err)
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	course, err := ch.courseService.Create(c.Request.Context(), identity, req.Title, req.Description, req.ThumbnailURL)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, course)
}

// GET /api/courses
func (ch *CourseHandler) List(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	courses, err := ch.courseService.List(c.Request.Context(), identity)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, courses)
}

// GET /api/courses/:id
func (ch *CourseHandler) Get(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid course id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	course, err := ch.courseService.Get(c.Request.Context(), identity, courseID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, course)
}

// PUT /api/courses/:id
func (ch *CourseHandler) Update(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid course id"))
		return
	}
	var req struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		ThumbnailURL *string `json:"thumbnail_url"`
		IsPublished  *bool   `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidation(c, err)
		return
	}
	course, err := ch.courseService.Update(c.Request.Context(), courseID, services.CourseUpdate{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, course)
}

// DELETE /api/courses/:id
func (ch *CourseHandler) Delete(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid course id"))
		return
	}
	if err := ch.courseService.Delete(c.Request.Context(), courseID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// POST /api/courses/:id/enroll
func (ch *CourseHandler) Enroll(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid course id"))
		return
	}
	identity := ctxutil.GetIdentity(c.Request.Context())
	enrollment, err := ch.courseService.Enroll(c.Request.Context(), identity, courseID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, enrollment)
}

// GET /api/courses/enrolled
func (ch *CourseHandler) ListEnrolled(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	courseIDs, err := ch.courseService.ListEnrolledCourseIDs(c.Request.Context(), identity.UserID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course_ids": courseIDs})
}
