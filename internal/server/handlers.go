package server

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veridict/veridict/internal/eval"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/voting"
)

type analyzeRequest struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question" binding:"required"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"simulation": s.cfg.Simulation,
		"target":     s.cfg.Target.Provider,
	})
}

func (s *Server) models(c *gin.Context) {
	annotated, err := s.annotations.Targets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list annotated models"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"target":    s.cfg.Target.Provider,
		"available": s.targetNames(),
		"annotated": annotated,
	})
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	report, err := s.pipeline.Analyze(c.Request.Context(), req.QuestionID, req.Question)
	if err != nil {
		var configErr *voting.ConfigError
		if errors.As(err, &configErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": configErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) saveAnnotations(c *gin.Context) {
	var session model.AnnotationSession
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid annotation payload"})
		return
	}
	if session.Target == "" || session.QuestionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target and question_id are required"})
		return
	}

	if err := s.annotations.Save(session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": len(session.Records)})
}

func (s *Server) loadAnnotations(c *gin.Context) {
	session, err := s.annotations.Load(c.Param("model"), c.Param("question"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no annotations for this question"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) metrics(c *gin.Context) {
	report, err := s.annotations.Evaluate(c.Param("model"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) allMetrics(c *gin.Context) {
	targets, err := s.annotations.Targets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reports := make([]eval.ModelReport, 0, len(targets))
	for _, target := range targets {
		report, err := s.annotations.Evaluate(target)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		reports = append(reports, report)
	}
	c.JSON(http.StatusOK, gin.H{"models": reports})
}
