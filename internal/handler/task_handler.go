package handler

import (
	"errors"
	"net/http"

	"sprout/internal/domain"
	"sprout/internal/models"
	"sprout/internal/repository"
	"sprout/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks   *repository.TaskRepository
	rewards *service.RewardService
}

func NewTaskHandler(tasks *repository.TaskRepository, rewards *service.RewardService) *TaskHandler {
	return &TaskHandler{tasks: tasks, rewards: rewards}
}

type createTaskRequest struct {
	Name       string `json:"name" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
	Weight     int    `json:"weight"`
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Weight <= 0 {
		req.Weight = 1
	}
	task := &models.Task{
		ParentID:   parentID,
		Name:       req.Name,
		Difficulty: req.Difficulty,
		Weight:     req.Weight,
	}
	if err := h.tasks.CreateTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create task"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

type logTaskRequest struct {
	TaskID uint `json:"task_id" binding:"required"`
}

// LogCompletion is the child reporting a done chore; it sits PENDING
// until a parent reviews it.
func (h *TaskHandler) LogCompletion(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	var req logTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log := &models.TaskLog{
		ParentID: parentID,
		ChildID:  childID,
		TaskID:   req.TaskID,
		Status:   domain.TaskLogPending,
		LogDate:  domain.DayKey(h.rewards.Now()),
	}
	if err := h.tasks.CreateLog(log); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log task"})
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *TaskHandler) Approve(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	logID := pathID(c, "log_id")
	approval, err := h.rewards.ApproveTaskLog(parentID, logID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task log not found"})
	case errors.Is(err, service.ErrTaskLogReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "task log already reviewed"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "approval failed"})
	default:
		c.JSON(http.StatusOK, approval)
	}
}

func (h *TaskHandler) Reject(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	logID := pathID(c, "log_id")
	log, err := h.rewards.RejectTaskLog(parentID, logID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task log not found"})
	case errors.Is(err, service.ErrTaskLogReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "task log already reviewed"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rejection failed"})
	default:
		c.JSON(http.StatusOK, log)
	}
}
