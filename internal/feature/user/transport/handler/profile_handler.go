// Package handler provides the HTTP handlers for the user feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobnaut/internal/feature/user/domain/entity"
	"jobnaut/internal/feature/user/transport/http/dto"
	"jobnaut/internal/feature/user/usecase"
	jwtmw "jobnaut/internal/platform/jwt"
)

// ProfileUsecase defines the profile operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uint) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, userID uint, upd entity.ProfileUpdate) (*entity.Profile, error)
	AddSkills(ctx context.Context, userID uint, skills []string) (*entity.Profile, error)
	RemoveSkills(ctx context.Context, userID uint, skills []string) (*entity.Profile, error)
}

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct {
	uc ProfileUsecase
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(uc ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// GetProfile handles GET /user/profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	p, err := h.uc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, dto.ProfileRes{Profile: p})
}

// UpdateProfile handles PUT /user/profile. Only fields present in the body change.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	upd, err := usecase.DecodeProfileUpdate(body)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSkills) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Skills must be an array"})
			return
		}
		slog.Warn("profile update validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := h.uc.UpdateProfile(c.Request.Context(), userID, upd)
	if err != nil {
		h.fail(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ProfileRes{Profile: p})
}

// AddSkills handles POST /user/skills.
func (h *ProfileHandler) AddSkills(c *gin.Context) {
	h.changeSkills(c, h.uc.AddSkills, "Failed to add skills")
}

// RemoveSkills handles DELETE /user/skills.
func (h *ProfileHandler) RemoveSkills(c *gin.Context) {
	h.changeSkills(c, h.uc.RemoveSkills, "Failed to remove skills")
}

func (h *ProfileHandler) changeSkills(
	c *gin.Context,
	op func(ctx context.Context, userID uint, skills []string) (*entity.Profile, error),
	failMsg string,
) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req dto.SkillsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Skills must be an array"})
		return
	}
	p, err := op(c.Request.Context(), userID, req.Skills)
	if err != nil {
		h.fail(c, err, failMsg)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileRes{Profile: p})
}

func (h *ProfileHandler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, usecase.ErrInvalidSkills):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Skills must be an array"})
	default:
		slog.Error(msg, "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
