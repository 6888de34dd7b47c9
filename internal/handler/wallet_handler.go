package handler

import (
	"errors"
	"net/http"

	"sprout/internal/repository"
	"sprout/internal/service"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	wallets *repository.WalletRepository
	goals   *service.GoalService
}

func NewWalletHandler(wallets *repository.WalletRepository, goals *service.GoalService) *WalletHandler {
	return &WalletHandler{wallets: wallets, goals: goals}
}

type createWalletRequest struct {
	Currency    string         `json:"currency"`
	Allocations map[string]int `json:"allocations"`
}

func (h *WalletHandler) Create(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	var req createWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	w, err := h.wallets.Create(parentID, childID, req.Currency, req.Allocations)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create wallet"})
		return
	}
	c.JSON(http.StatusCreated, w)
}

// GetBalance derives per-pot balances by ledger replay; there is no
// stored balance to read.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	parentID := pathID(c, "parent_id")
	childID := pathID(c, "child_id")
	balance, err := h.goals.PotBalances(parentID, childID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "balance error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pots":        balance,
		"total_cents": balance.Total(),
	})
}
