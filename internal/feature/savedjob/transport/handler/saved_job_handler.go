// Package handler provides the HTTP handlers for the saved job feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobnaut/internal/feature/savedjob/domain/entity"
	"jobnaut/internal/feature/savedjob/transport/http/dto"
	"jobnaut/internal/feature/savedjob/usecase"
	jwtmw "jobnaut/internal/platform/jwt"
)

// SavedJobUsecase defines the saved job operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SavedJobUsecase interface {
	SaveJob(ctx context.Context, in entity.NewSavedJob) (*entity.SavedJob, error)
	GetSavedJobsByUser(ctx context.Context, userID uint) ([]entity.SavedJob, error)
	GetSavedJob(ctx context.Context, userID, jobID uint) (*entity.SavedJob, error)
	UpdateSavedJob(ctx context.Context, userID, jobID uint, upd entity.SavedJobUpdate) (*entity.SavedJob, error)
	DeleteSavedJob(ctx context.Context, userID, jobID uint) (*entity.SavedJob, error)
}

// SavedJobHandler serves the authenticated user's saved jobs.
type SavedJobHandler struct {
	uc SavedJobUsecase
}

// NewSavedJobHandler creates a new SavedJobHandler.
func NewSavedJobHandler(uc SavedJobUsecase) *SavedJobHandler {
	return &SavedJobHandler{uc: uc}
}

// List handles GET /saved-jobs.
func (h *SavedJobHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.uc.GetSavedJobsByUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Failed to fetch saved jobs")
		return
	}
	c.JSON(http.StatusOK, dto.SavedJobsRes{SavedJobs: list})
}

// Save handles POST /saved-jobs.
func (h *SavedJobHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SaveJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	sj, err := h.uc.SaveJob(c.Request.Context(), entity.NewSavedJob{
		UserID:            userID,
		JobID:             req.JobID,
		Notes:             req.Notes,
		ApplicationStatus: req.ApplicationStatus,
	})
	if err != nil {
		h.fail(c, err, "Failed to save job")
		return
	}
	c.JSON(http.StatusCreated, dto.SavedJobRes{SavedJob: sj})
}

// Get handles GET /saved-jobs/:jobId.
func (h *SavedJobHandler) Get(c *gin.Context) {
	userID, jobID, ok := target(c)
	if !ok {
		return
	}
	sj, err := h.uc.GetSavedJob(c.Request.Context(), userID, jobID)
	if err != nil {
		h.fail(c, err, "Failed to fetch saved job")
		return
	}
	if sj == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved job not found"})
		return
	}
	c.JSON(http.StatusOK, dto.SavedJobRes{SavedJob: sj})
}

// Update handles PUT /saved-jobs/:jobId.
func (h *SavedJobHandler) Update(c *gin.Context) {
	userID, jobID, ok := target(c)
	if !ok {
		return
	}
	var req dto.UpdateSavedJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	sj, err := h.uc.UpdateSavedJob(c.Request.Context(), userID, jobID, entity.SavedJobUpdate{
		Notes:             req.Notes,
		ApplicationStatus: req.ApplicationStatus,
	})
	if err != nil {
		h.fail(c, err, "Failed to update saved job")
		return
	}
	c.JSON(http.StatusOK, dto.SavedJobRes{SavedJob: sj})
}

// Delete handles DELETE /saved-jobs/:jobId.
func (h *SavedJobHandler) Delete(c *gin.Context) {
	userID, jobID, ok := target(c)
	if !ok {
		return
	}
	sj, err := h.uc.DeleteSavedJob(c.Request.Context(), userID, jobID)
	if err != nil {
		h.fail(c, err, "Failed to delete saved job")
		return
	}
	c.JSON(http.StatusOK, dto.SavedJobRes{SavedJob: sj})
}

func (h *SavedJobHandler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrSavedJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved job not found"})
	case errors.Is(err, usecase.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, usecase.ErrJobAlreadySaved):
		c.JSON(http.StatusConflict, gin.H{"error": "Job already saved"})
	default:
		slog.Error(msg, "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return userID, ok
}

// target resolves the current user and the :jobId path parameter.
func target(c *gin.Context) (uint, uint, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return 0, 0, false
	}
	jobID, err := strconv.ParseUint(c.Param("jobId"), 10, 64)
	if err != nil || jobID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return 0, 0, false
	}
	return userID, uint(jobID), true
}
