package handler

import (
	"errors"
	"net/http"

	"sprout/internal/models"
	"sprout/internal/repository"
	"sprout/internal/service"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalRepo *repository.GoalRepository
	goals    *service.GoalService
}

func NewGoalHandler(goalRepo *repository.GoalRepository, goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goalRepo: goalRepo, goals: goals}
}

type createGoalRequest struct {
	Name        string `json:"name" binding:"required"`
	TargetCents int64  `json:"target_cents" binding:"required"`
	Locked      *bool  `json:"locked"`
}

func (h *GoalHandler) Create(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	locked := true
	if req.Locked != nil {
		locked = *req.Locked
	}
	goal := &models.SavingGoal{
		ParentID:    parentID,
		ChildID:     childID,
		Name:        req.Name,
		TargetCents: req.TargetCents,
		IsLocked:    locked,
	}
	if err := h.goalRepo.Create(goal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create goal"})
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	goals, err := h.goalRepo.ListByChild(parentID, childID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list goals"})
		return
	}
	c.JSON(http.StatusOK, goals)
}

// Sync recomputes the saved total and unlocks any goals it now covers.
func (h *GoalHandler) Sync(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	unlocked, err := h.goals.SyncLockedGoals(parentID, childID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlocked_goal_ids": unlocked})
}
