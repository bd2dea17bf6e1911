// Package handler provides the HTTP handlers for the job feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobnaut/internal/feature/job/domain/entity"
	"jobnaut/internal/feature/job/transport/http/dto"
	"jobnaut/internal/feature/job/usecase"
)

// JobUsecase defines the job operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type JobUsecase interface {
	CreateJob(ctx context.Context, in entity.NewJob) (*entity.Job, error)
	GetJobByID(ctx context.Context, id uint) (*entity.Job, error)
	GetAllJobs(ctx context.Context, page, limit int) (*entity.PagedJobs, error)
	SearchJobs(ctx context.Context, query string, page, limit int) (*entity.PagedJobs, error)
	GetJobsBySkills(ctx context.Context, skills []string, page, limit int) (*entity.PagedJobs, error)
	UpdateJob(ctx context.Context, id uint, upd entity.JobUpdate) (*entity.Job, error)
	DeleteJob(ctx context.Context, id uint) (*entity.Job, error)
}

// JobHandler handles job HTTP requests.
type JobHandler struct {
	uc  JobUsecase
	now func() time.Time
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(uc JobUsecase) *JobHandler {
	return &JobHandler{uc: uc, now: time.Now}
}

// ListJobs handles GET /jobs?page=1&limit=10.
func (h *JobHandler) ListJobs(c *gin.Context) {
	page, limit := pageParams(c)
	res, err := h.uc.GetAllJobs(c.Request.Context(), page, limit)
	if err != nil {
		h.fail(c, err, "Failed to fetch jobs")
		return
	}
	c.JSON(http.StatusOK, res)
}

// SearchJobs handles GET /jobs/search?q=golang&page=1&limit=10.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	page, limit := pageParams(c)
	q := strings.TrimSpace(c.Query("q"))
	res, err := h.uc.SearchJobs(c.Request.Context(), q, page, limit)
	if err != nil {
		h.fail(c, err, "Failed to search jobs")
		return
	}
	c.JSON(http.StatusOK, res)
}

// JobsBySkills handles GET /jobs/by-skills?skills=Go,SQL.
func (h *JobHandler) JobsBySkills(c *gin.Context) {
	page, limit := pageParams(c)
	res, err := h.uc.GetJobsBySkills(c.Request.Context(), splitSkills(c.Query("skills")), page, limit)
	if err != nil {
		h.fail(c, err, "Failed to fetch jobs")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetJob handles GET /jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	job, err := h.uc.GetJobByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch job")
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, dto.JobRes{Job: job})
}

// CreateJob handles POST /jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	job, err := h.uc.CreateJob(c.Request.Context(), req.ToNewJob(h.now().UTC()))
	if err != nil {
		h.fail(c, err, "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, dto.JobRes{Job: job})
}

// UpdateJob handles PUT /jobs/:id.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	var req dto.UpdateJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	job, err := h.uc.UpdateJob(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		h.fail(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, dto.JobRes{Job: job})
}

// DeleteJob handles DELETE /jobs/:id.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	job, err := h.uc.DeleteJob(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to delete job")
		return
	}
	c.JSON(http.StatusOK, dto.JobRes{Job: job})
}

func (h *JobHandler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, usecase.ErrDuplicateJob):
		c.JSON(http.StatusConflict, gin.H{"error": "Job already exists"})
	default:
		slog.Error(msg, "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// jobID parses the :id path parameter and writes a 400 when it is invalid.
func jobID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page and limit. Bad values fall back to the service defaults.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

func splitSkills(raw string) []string {
	skills := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
