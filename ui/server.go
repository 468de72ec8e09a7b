package ui

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"

	"catview/adapters/imagefetch"
	"catview/internal"
	"catview/internal/config"
	"catview/internal/store"
	"catview/ports"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Server represents the catview web server
type Server struct {
	router    *gin.Engine
	config    *config.Config
	datasets  ports.DatasetRepository
	sessions  ports.SessionRepository
	tables    *store.TableStore
	fetcher   *imagefetch.Fetcher
	templates *template.Template
	logger    *internal.Logger
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config, datasets ports.DatasetRepository, sessions ports.SessionRepository, tables *store.TableStore) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		config:    cfg,
		datasets:  datasets,
		sessions:  sessions,
		tables:    tables,
		fetcher:   imagefetch.NewFetcher(cfg.Image.FetchTimeout),
		templates: templates,
		logger:    internal.DefaultLogger.Named("ui"),
	}
	s.router.SetHTMLTemplate(templates)
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)

	s.router.POST("/api/datasets", s.handleDatasetUpload)
	s.router.GET("/api/datasets", s.handleDatasetList)
	s.router.GET("/api/datasets/:id/sheets", s.handleDatasetSheets)
	s.router.DELETE("/api/datasets/:id", s.handleDatasetDelete)

	s.router.POST("/api/sessions", s.handleSessionCreate)
	s.router.DELETE("/api/sessions/:id", s.handleSessionDelete)
	s.router.PUT("/api/sessions/:id/mapping", s.handleMappingUpdate)
	s.router.GET("/api/sessions/:id/cascade", s.handleCascade)
	s.router.PUT("/api/sessions/:id/selections", s.handleSelectionUpdate)
	s.router.GET("/api/sessions/:id/results", s.handleResults)
	s.router.GET("/api/sessions/:id/results/:index", s.handleResultDetail)
	s.router.GET("/api/sessions/:id/results/:index/image", s.handleResultImage)
	s.router.GET("/api/sessions/:id/export", s.handleExport)
}

// Router exposes the gin engine (used by tests)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server
func (s *Server) Start(addr string) error {
	s.logger.Info("starting catview server on %s", addr)
	return s.router.Run(addr)
}
