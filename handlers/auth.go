package handlers

import (
	"net/http"

	"swatrental/services/user"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and user lookups.
type AuthHandler struct {
	Service user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	u, err := h.Service.GetUserByID(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	users, err := h.Service.GetAllUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, users, len(users))
}
