package handler

import (
	"errors"
	"net/http"

	"sprout/internal/repository"
	"sprout/internal/service"

	"github.com/gin-gonic/gin"
)

type AxionHandler struct {
	axion *service.AxionService
}

func NewAxionHandler(axion *service.AxionService) *AxionHandler {
	return &AxionHandler{axion: axion}
}

// GetState recomputes and returns the companion: stage, mood,
// personality and trait list. Mood is derived fresh on every call.
func (h *AxionHandler) GetState(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	state, err := h.axion.ComputeState(parentID, childID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "axion state error"})
		return
	}
	c.JSON(http.StatusOK, state)
}

type logMoodRequest struct {
	Mood string `json:"mood" binding:"required"`
}

func (h *AxionHandler) LogMood(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	var req logMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mood, err := h.axion.LogMood(parentID, childID, req.Mood)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
	case errors.Is(err, service.ErrMoodAlreadyLogged):
		c.JSON(http.StatusConflict, gin.H{"error": "mood already logged today"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mood log failed"})
	default:
		c.JSON(http.StatusCreated, mood)
	}
}
