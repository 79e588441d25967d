package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"resort-backend/config"
	"resort-backend/models"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func generateTokenHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid payload")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.missingCredentials", "username and password required")
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidCredentials", "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidCredentials", "invalid credentials")
		return
	}

	token, err := generateTokenHex(32)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "failed to generate token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":        admin.ID,
			"full_name": admin.FullName,
			"username":  admin.Username,
		},
	})
}
