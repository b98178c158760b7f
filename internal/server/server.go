// Package server exposes the chat-completion service over HTTP so the CLI
// (or anything else) can ask questions without holding API credentials.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"mediascribe/internal/core/chat"
	"mediascribe/internal/core/config"
	"mediascribe/internal/core/logger"
)

// ChatRequest is the request body for POST /api/v1/chat
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Server is the HTTP chat service.
type Server struct {
	port     int
	answerer chat.Answerer
	log      *logger.Logger
	engine   *gin.Engine
}

// NewServer creates a chat server backed by the configured Answerer.
func NewServer(cfg *config.Config, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.New()
	}

	answerer, err := chat.New(config.ChatConfig{
		Backend: cfg.Chat.Backend,
		Model:   cfg.Chat.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat backend: %w", err)
	}

	return &Server{
		port:     cfg.Server.Port,
		answerer: answerer,
		log:      log,
	}, nil
}

// Start runs the HTTP server until it fails.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.loggingMiddleware())

	s.engine.GET("/", s.handleRoot)
	s.engine.POST("/api/v1/chat", s.handleChat)

	addr := fmt.Sprintf(":%d", s.port)
	s.log.WithField("addr", addr).WithField("backend", s.answerer.Name()).Info("chat server listening")
	return s.engine.Run(addr)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Hello": "World"})
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing message"})
		return
	}

	text, err := s.answerer.Answer(c.Request.Context(), req.Message)
	if err != nil {
		// Mirror the service contract: failures come back as an error
		// string with a 200, so clients can always decode one shape.
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": text})
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithField("method", c.Request.Method).
			WithField("path", c.Request.URL.Path).
			WithField("status", c.Writer.Status()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request")
	}
}
