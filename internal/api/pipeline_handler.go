package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trendulum/trendulum-api-go/internal/auth"
	"github.com/trendulum/trendulum-api-go/internal/service/pipeline"
	"go.uber.org/zap"
)

type PipelineHandler struct {
	deps *Dependencies
}

type analyzeRequest struct {
	CreatorProfileID  int64  `json:"creator_profile_id"`
	AdditionalContext string `json:"additional_context"`
}

func (h *PipelineHandler) AnalyzeAudience(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CreatorProfileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "creator_profile_id is required"})
		return
	}

	tasteProfile, err := h.deps.Pipeline.AnalyzeAudience(c.Request.Context(), claims.UserID, req.CreatorProfileID)
	if err != nil {
		h.deps.Logger.Warn("Audience analysis failed",
			zap.Int64("profile_id", req.CreatorProfileID),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"taste_profile":   tasteProfile,
		"recommendations": pipeline.Recommendations,
	})
}

type generateContentRequest struct {
	CreatorProfileID      int64  `json:"creator_profile_id"`
	ContentType           string `json:"content_type"`
	AdditionalConstraints string `json:"additional_constraints"`
}

func (h *PipelineHandler) GenerateContent(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	var req generateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CreatorProfileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "creator_profile_id is required"})
		return
	}
	if req.ContentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "content_type is required"})
		return
	}

	ideas, err := h.deps.Pipeline.GenerateContentIdeas(c.Request.Context(), claims.UserID, req.CreatorProfileID, req.ContentType, req.AdditionalConstraints)
	if err != nil {
		h.deps.Logger.Warn("Content generation failed",
			zap.Int64("profile_id", req.CreatorProfileID),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ideas":           ideas,
		"total_generated": len(ideas),
	})
}

type generateMonetizationRequest struct {
	CreatorProfileID  int64  `json:"creator_profile_id"`
	CollaborationType string `json:"collaboration_type"`
}

func (h *PipelineHandler) GenerateMonetization(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	var req generateMonetizationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CreatorProfileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "creator_profile_id is required"})
		return
	}

	ideas, err := h.deps.Pipeline.GenerateMonetizationIdeas(c.Request.Context(), claims.UserID, req.CreatorProfileID, req.CollaborationType)
	if err != nil {
		h.deps.Logger.Warn("Monetization generation failed",
			zap.Int64("profile_id", req.CreatorProfileID),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ideas":           ideas,
		"total_generated": len(ideas),
	})
}
