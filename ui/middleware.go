package ui

import (
	"time"

	"legumedash/domain/core"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
	s.router.StaticFS("/static", s.staticFS())
}

// requestLogger tags each request with an ID and logs it once it completes
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = core.NewID().String()
		}
		c.Header(requestIDHeader, id)
		c.Set("request_id", id)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		switch {
		case status >= 500:
			s.logger.Error("[HTTP] %s %s %s -> %d (%s)", id, c.Request.Method, c.Request.URL.RequestURI(), status, latency)
		case status >= 400:
			s.logger.Warn("[HTTP] %s %s %s -> %d (%s)", id, c.Request.Method, c.Request.URL.RequestURI(), status, latency)
		default:
			s.logger.Info("[HTTP] %s %s %s -> %d (%s)", id, c.Request.Method, c.Request.URL.RequestURI(), status, latency)
		}
	}
}
