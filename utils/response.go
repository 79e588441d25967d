package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// JSONSuccess writes the standard success envelope.
func JSONSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{"success": true, "message": message, "data": data})
}

// JSONError writes the standard error envelope. errCode is a stable
// machine-readable token (e.g. "error.roomUnavailable").
func JSONError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
		"error": gin.H{
			"code":      errCode,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
