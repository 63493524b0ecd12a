// Package api serves the algorithms over HTTP
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeu5/tabular-mdp/runner"
)

type Server struct {
	Addr   string
	server *http.Server
	engine *gin.Engine
}

func NewServer(addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/algorithms", handleAlgorithms)
	r.POST("/solve/:algorithm", handleSolve)

	return &Server{
		Addr:   addr,
		engine: r,
		server: &http.Server{
			Addr:    addr,
			Handler: r,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func handleAlgorithms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"algorithms": runner.Algorithms()})
}

// handleSolve runs one algorithm. The body overrides the default parameters
// field by field; an empty body runs with the defaults.
func handleSolve(c *gin.Context) {
	params := runner.DefaultParams()
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
			return
		}
	}
	result, err := runner.Run(c.Param("algorithm"), params, nil)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, runner.ErrUnknownAlgorithm) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Run serves until ctx is cancelled, then shuts the server down
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving on %s", s.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Printf("server on %s stopped", s.Addr)
	return nil
}
