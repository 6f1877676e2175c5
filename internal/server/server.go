// Package server exposes the analysis pipeline and the annotation workflow
// over HTTP for the web frontend.
package server

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/veridict/veridict/internal/eval"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pipeline"
)

// Server wires the HTTP API to the pipeline and the annotation store
type Server struct {
	cfg         *model.Config
	pipeline    *pipeline.Pipeline
	annotations *eval.Store
}

// New creates a server around an already-wired pipeline
func New(cfg *model.Config, p *pipeline.Pipeline) *Server {
	return &Server{
		cfg:         cfg,
		pipeline:    p,
		annotations: eval.NewStore(filepath.Join(cfg.DataDir, "annotations")),
	}
}

// Router builds the gin engine with CORS and all API routes
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:  s.cfg.Server.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	api := router.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/models", s.models)
		api.POST("/analyze", s.analyze)
		api.POST("/annotations", s.saveAnnotations)
		api.GET("/annotations/:model/:question", s.loadAnnotations)
		api.GET("/metrics/:model", s.metrics)
		api.GET("/metrics", s.allMetrics)
	}

	if s.cfg.Server.StaticDir != "" {
		router.Static("/app", s.cfg.Server.StaticDir)
	}

	return router
}

// Run serves until the listener fails
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	return s.Router().Run(addr)
}

// targetNames lists the providers a client may pick as target, sorted
func (s *Server) targetNames() []string {
	names := make([]string, 0, len(s.cfg.Providers))
	for name := range s.cfg.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
