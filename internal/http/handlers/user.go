package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/http/response"
	"github.com/phu024/elearning-rag-platform/internal/platform/apierr"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/users
func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.userService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, users)
}

// Accounts are visible only to their owner and to admins.
func selfOrAdmin(c *gin.Context, id uuid.UUID) bool {
	identity := ctxutil.GetIdentity(c.Request.Context())
	return identity != nil && (identity.IsAdmin() || identity.UserID == id)
}

// GET /api/users/:id
func (uh *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid user id"))
		return
	}
	if !selfOrAdmin(c, id) {
		response.RespondError(c, apierr.Forbidden("you do not have access to this account"))
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// PUT /api/users/:id
func (uh *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid user id"))
		return
	}
	if !selfOrAdmin(c, id) {
		response.RespondError(c, apierr.Forbidden("you do not have access to this account"))
		return
	}
	var req struct {
		FullName *string `json:"full_name"`
		Email    *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidation(c, err)
		return
	}
	user, err := uh.userService.Update(c.Request.Context(), id, services.UserUpdate{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}

// DELETE /api/users/:id
func (uh *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid user id"))
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
