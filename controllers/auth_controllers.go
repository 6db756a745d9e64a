package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bugemco/multimedia-request-hub/services"
	"github.com/bugemco/multimedia-request-hub/utils"
)

type AuthController struct {
	Sessions *services.SessionService
}

func NewAuthController(sessions *services.SessionService) *AuthController {
	return &AuthController{Sessions: sessions}
}

// Login checks the shared admin credential and issues a session token.
func (ac *AuthController) Login(c *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token, err := ac.Sessions.Login(req.Username, req.Password)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Logged in successfully.", gin.H{"token": token})
}

// Logout invalidates the caller's session.
func (ac *AuthController) Logout(c *gin.Context) {
	sessionID, exists := c.Get("sessionID")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no active session"))
		return
	}

	ac.Sessions.Logout(sessionID.(string))
	utils.RespondJSON(c, http.StatusOK, "Logged out.", nil)
}
