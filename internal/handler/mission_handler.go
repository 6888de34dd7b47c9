package handler

import (
	"errors"
	"net/http"

	"sprout/internal/repository"
	"sprout/internal/service"

	"github.com/gin-gonic/gin"
)

type MissionHandler struct {
	missions *service.MissionService
}

func NewMissionHandler(missions *service.MissionService) *MissionHandler {
	return &MissionHandler{missions: missions}
}

// Today generates (or returns, if already generated) the child's
// mission for the current day.
func (h *MissionHandler) Today(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	mission, err := h.missions.GenerateDaily(parentID, childID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission generation failed"})
		return
	}
	c.JSON(http.StatusOK, mission)
}

func (h *MissionHandler) CompleteToday(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	result, err := h.missions.CompleteToday(parentID, childID)
	if errors.Is(err, service.ErrNoMissionToday) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no mission generated today"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission completion failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
