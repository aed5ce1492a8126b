package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kelsos/makerspace-demo/internal/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestEvent describes one served request
type RequestEvent struct {
	RequestID string
	Method    string
	Path      string
	Status    int
	Latency   time.Duration
	Time      time.Time
}

// Observer is notified about server activity
type Observer interface {
	RequestServed(event RequestEvent)
	SessionSeeded()
}

// requestID tags every request with an id, reusing the caller's if present
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := RequestEvent{
			RequestID: c.GetString(requestIDKey),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			Latency:   time.Since(start),
			Time:      start,
		}

		logger.Access(event.RequestID, event.Method, event.Path, event.Status, event.Latency)
		for _, err := range c.Errors {
			logger.Error("%s %s: %v", event.Method, event.Path, err.Err)
		}

		if s.observer != nil {
			s.observer.RequestServed(event)
		}
	}
}

func (s *Server) recover(c *gin.Context, recovered interface{}) {
	logger.Error("Panic while serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	c.AbortWithStatus(http.StatusInternalServerError)
}
