package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HandleError writes the JSON error envelope and aborts the handler chain.
func HandleError(c *gin.Context, status int, message string, err error) {
	if value, exists := c.Get("logger"); exists {
		if log, ok := value.(*zerolog.Logger); ok {
			event := log.Error().Int("status", status)
			if err != nil {
				event = event.Err(err)
			}
			event.Msg(message)
		}
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
