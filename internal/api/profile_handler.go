package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trendulum/trendulum-api-go/internal/auth"
	"github.com/trendulum/trendulum-api-go/internal/domain"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	deps *Dependencies
}

type profileRequest struct {
	ProfileName      string   `json:"profile_name"`
	NicheDescription string   `json:"niche_description"`
	Keywords         []string `json:"keywords"`
	BrandVoice       string   `json:"brand_voice"`
	NegativeKeywords []string `json:"negative_keywords"`
	SocialPlatform   string   `json:"social_platform"`
	SocialHandle     string   `json:"social_handle"`
	AudienceData     string   `json:"audience_data"`
}

func (r *profileRequest) validate() string {
	if strings.TrimSpace(r.ProfileName) == "" {
		return "profile_name is required"
	}
	if strings.TrimSpace(r.NicheDescription) == "" {
		return "niche_description is required"
	}
	if len(r.Keywords) == 0 {
		return "at least one keyword is required"
	}
	return ""
}

func (h *ProfileHandler) Create(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid json"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": msg})
		return
	}

	profile := &domain.CreatorProfile{
		UserID:           claims.UserID,
		ProfileName:      req.ProfileName,
		NicheDescription: req.NicheDescription,
		Keywords:         req.Keywords,
		BrandVoice:       req.BrandVoice,
		NegativeKeywords: req.NegativeKeywords,
		SocialPlatform:   req.SocialPlatform,
		SocialHandle:     req.SocialHandle,
		AudienceData:     req.AudienceData,
	}

	if err := h.deps.Profiles.Create(c.Request.Context(), profile); err != nil {
		h.deps.Logger.Error("Failed to create creator profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "create profile failed"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) List(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	profiles, err := h.deps.Profiles.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.deps.Logger.Error("Failed to list creator profiles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "list profiles failed"})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	profileID, ok := pathID(c)
	if !ok {
		return
	}

	profile, err := h.deps.Profiles.FindByID(c.Request.Context(), claims.UserID, profileID)
	if err != nil {
		h.deps.Logger.Error("Failed to load creator profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "load profile failed"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Creator profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	profileID, ok := pathID(c)
	if !ok {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid json"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": msg})
		return
	}

	profile := &domain.CreatorProfile{
		ID:               profileID,
		UserID:           claims.UserID,
		ProfileName:      req.ProfileName,
		NicheDescription: req.NicheDescription,
		Keywords:         req.Keywords,
		BrandVoice:       req.BrandVoice,
		NegativeKeywords: req.NegativeKeywords,
		SocialPlatform:   req.SocialPlatform,
		SocialHandle:     req.SocialHandle,
		AudienceData:     req.AudienceData,
	}

	found, err := h.deps.Profiles.Update(c.Request.Context(), profile)
	if err != nil {
		h.deps.Logger.Error("Failed to update creator profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "update profile failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Creator profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	profileID, ok := pathID(c)
	if !ok {
		return
	}

	found, err := h.deps.Profiles.Delete(c.Request.Context(), claims.UserID, profileID)
	if err != nil {
		h.deps.Logger.Error("Failed to delete creator profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "delete profile failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Creator profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile deleted"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return id, true
}
