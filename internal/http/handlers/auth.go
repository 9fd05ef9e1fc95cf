package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/phu024/elearning-rag-platform/internal/http/response"
	"github.com/phu024/elearning-rag-platform/internal/platform/ctxutil"
	"github.com/phu024/elearning-rag-platform/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandler(authService services.AuthService, userService services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// POST /api/auth/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidation(c, err)
		return
	}
	result, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, result)
}

// POST /api/auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidation(c, err)
		return
	}
	result, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /api/auth/me
func (ah *AuthHandler) Me(c *gin.Context) {
	identity := ctxutil.GetIdentity(c.Request.Context())
	user, err := ah.userService.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, user)
}
