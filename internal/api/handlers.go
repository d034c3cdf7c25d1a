package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhigl/jobscout/internal/aggregate"
	"github.com/abhigl/jobscout/internal/ai"
	"github.com/abhigl/jobscout/internal/cache"
	"github.com/abhigl/jobscout/internal/filter"
	"github.com/abhigl/jobscout/internal/model"
)

// handleJobs runs the aggregation pipeline for one request.
//
// Query params:
//
//	q=Full%20Stack                        keyword(s)
//	city=Bengaluru                        optional city narrowing for Amazon
//	location=Pune                         generic location filter
//	strict=true|false                     LLM enforcement pass (default true)
//	include_amazon=true|false
//	include_netflix=true|false
//	workday=host:site:hint,host:site:hint optional tenant overrides
func (s *Server) handleJobs(c *gin.Context) {
	q := c.DefaultQuery("q", s.defaultQuery)
	city := c.Query("city")
	location := c.Query("location")
	strict := boolParam(c, "strict", true)

	opts := aggregate.Options{
		Query:          q,
		City:           city,
		WorkdayTargets: aggregate.ParseWorkdayTargets(c.Query("workday")),
		IncludeAmazon:  boolParam(c, "include_amazon", true),
		IncludeNetflix: boolParam(c, "include_netflix", true),
	}

	key := cache.Key(q, city, location, c.Query("workday"),
		strconv.FormatBool(opts.IncludeAmazon),
		strconv.FormatBool(opts.IncludeNetflix),
		strconv.FormatBool(strict),
	)
	if postings, ok := s.cache.Get(c.Request.Context(), key); ok {
		c.JSON(http.StatusOK, postings)
		return
	}

	postings := s.gatherer.Gather(c.Request.Context(), opts)
	postings = filter.Apply(postings, q, location)

	if strict {
		enforced, err := s.enforcer.Enforce(c.Request.Context(), postings)
		if err != nil {
			// Enforcement is best-effort: fall back to the raw normalized output.
			s.logger.Error("enforcement failed, returning raw output", "error", err)
		} else {
			postings = enforced
		}
	}

	if postings == nil {
		postings = []model.JobPosting{}
	}
	s.cache.Set(c.Request.Context(), key, postings)
	c.JSON(http.StatusOK, postings)
}

// handleJobInsights runs the researcher for a role query.
func (s *Server) handleJobInsights(c *gin.Context) {
	if s.researcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai is not enabled"})
		return
	}

	position := c.Query("position")
	if position == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "position is required"})
		return
	}

	query := ai.InsightQuery{
		Position:        position,
		Companies:       c.QueryArray("company"),
		YearsExperience: c.Query("years_experience"),
		Remote:          boolParam(c, "remote", false),
	}

	insights, err := s.researcher.Research(c.Request.Context(), query)
	if err != nil {
		s.logger.Error("insight research failed", "position", position, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insight research failed"})
		return
	}

	c.JSON(http.StatusOK, insights)
}

func (s *Server) handleSaveJob(c *gin.Context) {
	var posting model.JobPosting
	if err := c.ShouldBindJSON(&posting); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job posting"})
		return
	}

	id, err := s.postings.SavePosting(c.Request.Context(), posting)
	if err != nil {
		s.logger.Error("saving posting failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "saving job failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Job saved successfully!", "id": id})
}

func (s *Server) handleSavedJobs(c *gin.Context) {
	postings, err := s.postings.ListPostings(c.Request.Context())
	if err != nil {
		s.logger.Error("listing postings failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing jobs failed"})
		return
	}
	if postings == nil {
		postings = []model.JobPosting{}
	}
	c.JSON(http.StatusOK, postings)
}

func (s *Server) handleDeleteJob(c *gin.Context) {
	err := s.postings.DeletePosting(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		s.logger.Error("deleting posting failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deleting job failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_count": 1})
}

func (s *Server) handleSaveInsight(c *gin.Context) {
	var insight model.JobInsights
	if err := c.ShouldBindJSON(&insight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid insight"})
		return
	}

	id, err := s.insights.SaveInsight(c.Request.Context(), insight)
	if err != nil {
		s.logger.Error("saving insight failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "saving insight failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Insight saved successfully!", "id": id})
}

func (s *Server) handleSavedInsights(c *gin.Context) {
	insights, err := s.insights.ListInsights(c.Request.Context())
	if err != nil {
		s.logger.Error("listing insights failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing insights failed"})
		return
	}
	if insights == nil {
		insights = []model.JobInsights{}
	}
	c.JSON(http.StatusOK, insights)
}

func (s *Server) handleDeleteInsight(c *gin.Context) {
	err := s.insights.DeleteInsight(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insight not found"})
		return
	}
	if err != nil {
		s.logger.Error("deleting insight failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deleting insight failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_count": 1})
}

// boolParam reads a boolean query param with the upstream's permissive
// semantics: only an explicit "false"/"true" flips the default.
func boolParam(c *gin.Context, name string, def bool) bool {
	v := strings.ToLower(c.Query(name))
	switch v {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}
