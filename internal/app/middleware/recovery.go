package middleware

import (
	"net/http"
	"runtime/debug"

	"crisiscorner/internal/app/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Recovery перехватывает панику в обработчике и отвечает 500
func Recovery(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithFields(log.Fields{
					"panic":      rec,
					"request_id": GetRequestID(c),
					"stack":      string(debug.Stack()),
				}).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
			}
		}()
		c.Next()
	}
}
