package server

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/auth"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Routes is implemented by every feature handler.
type Routes interface {
	Register(rg *gin.RouterGroup)
}

// NewRouter builds the HTTP engine. Feature routes live under /api/v1 and
// require a caller identity.
func NewRouter(log logger.ZapLogger, routes ...Routes) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api/v1", auth.RequireUser())
	for _, r := range routes {
		r.Register(api)
	}
	return router
}

func RequestLogger(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_id", auth.GetUserID(c)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
			return
		}
		log.Debug("request handled", fields...)
	}
}
