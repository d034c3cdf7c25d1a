// Package api exposes the aggregation pipeline and the document store over
// HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhigl/jobscout/internal/aggregate"
	"github.com/abhigl/jobscout/internal/ai"
	"github.com/abhigl/jobscout/internal/cache"
	"github.com/abhigl/jobscout/internal/model"
)

// Gatherer is the aggregation entry point the API depends on.
type Gatherer interface {
	Gather(ctx context.Context, opts aggregate.Options) []model.JobPosting
}

// Server wires the HTTP surface to the pipeline and stores.
type Server struct {
	gatherer     Gatherer
	enforcer     ai.Enforcer
	researcher   ai.Researcher // nil when ai is disabled
	postings     model.PostingStore
	insights     model.InsightStore
	cache        cache.ResultCache
	defaultQuery string
	logger       *slog.Logger
}

// NewServer creates the API server. researcher may be nil; enforcer, stores
// and cache must be non-nil (use the nop implementations).
func NewServer(
	gatherer Gatherer,
	enforcer ai.Enforcer,
	researcher ai.Researcher,
	postings model.PostingStore,
	insights model.InsightStore,
	resultCache cache.ResultCache,
	defaultQuery string,
	logger *slog.Logger,
) *Server {
	return &Server{
		gatherer:     gatherer,
		enforcer:     enforcer,
		researcher:   researcher,
		postings:     postings,
		insights:     insights,
		cache:        resultCache,
		defaultQuery: defaultQuery,
		logger:       logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/jobs", s.handleJobs)
	r.GET("/job-insights", s.handleJobInsights)

	r.POST("/save-job", s.handleSaveJob)
	r.GET("/saved-jobs", s.handleSavedJobs)
	r.DELETE("/jobs/:id", s.handleDeleteJob)

	r.POST("/save-insight", s.handleSaveInsight)
	r.GET("/saved-insights", s.handleSavedInsights)
	r.DELETE("/insights/:id", s.handleDeleteInsight)

	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("http server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
