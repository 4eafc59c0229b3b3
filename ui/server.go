// Package ui is the thin HTTP boundary around the analysis core. It parses
// uploads, invokes the core, and serializes results; the statistics logic
// lives entirely below it.
package ui

import (
	"github.com/gin-gonic/gin"

	"lsparrow/adapters/csvtable"
	"lsparrow/internal/analyzer"
	"lsparrow/internal/config"
)

// Server represents the web server for the survey analysis API
type Server struct {
	router   *gin.Engine
	reader   *csvtable.Reader
	analyzer *analyzer.Analyzer
	cfg      *config.Config
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.Upload.MaxFileSize

	s := &Server{
		router:   router,
		reader:   csvtable.NewReader(),
		analyzer: analyzer.New(cfg.Analysis),
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/analysis", s.handleAnalysis)
		api.POST("/columns", s.handleColumns)
	}
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	return s.router.Run(":" + s.cfg.Server.Port)
}
