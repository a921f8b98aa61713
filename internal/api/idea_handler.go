package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trendulum/trendulum-api-go/internal/auth"
	"go.uber.org/zap"
)

type IdeaHandler struct {
	deps *Dependencies
}

func (h *IdeaHandler) ListContent(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	savedOnly := c.Query("saved") == "true"

	ideas, err := h.deps.Ideas.ListContentIdeas(c.Request.Context(), claims.UserID, savedOnly)
	if err != nil {
		h.deps.Logger.Error("Failed to list content ideas", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "list ideas failed"})
		return
	}

	c.JSON(http.StatusOK, ideas)
}

func (h *IdeaHandler) SaveContent(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	ideaID, ok := pathID(c)
	if !ok {
		return
	}

	isSaved, found, err := h.deps.Ideas.ToggleContentIdeaSaved(c.Request.Context(), claims.UserID, ideaID)
	if err != nil {
		h.deps.Logger.Error("Failed to toggle content idea", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "save idea failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Content idea not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": savedMessage(isSaved)})
}

func (h *IdeaHandler) DeleteContent(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	ideaID, ok := pathID(c)
	if !ok {
		return
	}

	found, err := h.deps.Ideas.DeleteContentIdea(c.Request.Context(), claims.UserID, ideaID)
	if err != nil {
		h.deps.Logger.Error("Failed to delete content idea", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "delete idea failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Content idea not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Content idea deleted successfully"})
}

func (h *IdeaHandler) ListMonetization(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	savedOnly := c.Query("saved") == "true"

	ideas, err := h.deps.Ideas.ListMonetizationIdeas(c.Request.Context(), claims.UserID, savedOnly)
	if err != nil {
		h.deps.Logger.Error("Failed to list monetization ideas", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "list ideas failed"})
		return
	}

	c.JSON(http.StatusOK, ideas)
}

func (h *IdeaHandler) SaveMonetization(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	ideaID, ok := pathID(c)
	if !ok {
		return
	}

	isSaved, found, err := h.deps.Ideas.ToggleMonetizationIdeaSaved(c.Request.Context(), claims.UserID, ideaID)
	if err != nil {
		h.deps.Logger.Error("Failed to toggle monetization idea", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "save idea failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Monetization idea not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": savedMessage(isSaved)})
}

func (h *IdeaHandler) DeleteMonetization(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	ideaID, ok := pathID(c)
	if !ok {
		return
	}

	found, err := h.deps.Ideas.DeleteMonetizationIdea(c.Request.Context(), claims.UserID, ideaID)
	if err != nil {
		h.deps.Logger.Error("Failed to delete monetization idea", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "delete idea failed"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Monetization idea not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Monetization idea deleted successfully"})
}

func savedMessage(isSaved bool) string {
	if isSaved {
		return "Idea saved successfully"
	}
	return "Idea unsaved successfully"
}
