package handlers

import (
	"net/http"

	"transport_manager/internal/auth"
	"transport_manager/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req, false) {
		return
	}

	user, err := h.svc.Users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, expires, err := h.tokens.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expires,
		"user":       user,
	})
}

func (h *APIHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.Users.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *APIHandler) CreateUser(c *gin.Context) {
	var input services.CreateUserInput
	if !bindJSON(c, &input, false) {
		return
	}
	var callerID uint
	if claims := auth.ClaimsFrom(c); claims != nil {
		callerID = claims.UserID
	}
	user, err := h.svc.Users.CreateUser(c.Request.Context(), callerID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
