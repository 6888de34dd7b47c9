package handler

import (
	"errors"
	"net/http"

	"sprout/internal/repository"
	"sprout/internal/service"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	game *service.GameService
}

func NewGameHandler(game *service.GameService) *GameHandler {
	return &GameHandler{game: game}
}

type sessionRequest struct {
	XP    int64 `json:"xp"`
	Coins int64 `json:"coins"`
}

func (h *GameHandler) RecordSession(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.XP < 0 || req.Coins < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "xp and coins must be non-negative"})
		return
	}
	result, err := h.game.RecordSession(parentID, childID, req.XP, req.Coins)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type conversionRequest struct {
	Coins int64 `json:"coins" binding:"required"`
}

func (h *GameHandler) RequestConversion(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	var req conversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conversion, err := h.game.RequestConversion(parentID, childID, req.Coins)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
	case errors.Is(err, repository.ErrInsufficientCoins):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient coins"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "conversion request failed"})
	default:
		c.JSON(http.StatusCreated, conversion)
	}
}

func (h *GameHandler) ApproveConversion(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	conversionID := pathID(c, "conversion_id")
	conversion, err := h.game.ApproveConversion(parentID, conversionID)
	h.respondSettled(c, conversion, err)
}

func (h *GameHandler) RejectConversion(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	conversionID := pathID(c, "conversion_id")
	conversion, err := h.game.RejectConversion(parentID, conversionID)
	h.respondSettled(c, conversion, err)
}

func (h *GameHandler) respondSettled(c *gin.Context, conversion any, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "conversion not found"})
	case errors.Is(err, service.ErrConversionSettled):
		c.JSON(http.StatusConflict, gin.H{"error": "conversion already settled"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "conversion failed"})
	default:
		c.JSON(http.StatusOK, conversion)
	}
}
