package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	"marketplace/internal/service"
)

// WalletHandler handles HTTP requests for wallets.
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// RecordTransactionRequest is the HTTP request body for recording a
// wallet transaction.
type RecordTransactionRequest struct {
	Type          string `json:"type"`     // credit, debit
	Category      string `json:"category"` // topup, withdraw, payment, commission, refund, bonus
	Amount        int64  `json:"amount"`
	ReferenceType string `json:"reference_type,omitempty"`
	ReferenceID   string `json:"reference_id,omitempty"`
	Description   string `json:"description,omitempty"`
}

// WalletResponse is the HTTP response for wallet operations.
type WalletResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Balance        int64  `json:"balance"`
	PendingBalance int64  `json:"pending_balance"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
}

// TransactionResponse is the HTTP representation of one ledger row.
type TransactionResponse struct {
	ID            string `json:"id"`
	TransactionID string `json:"transaction_id"`
	Type          string `json:"type"`
	Category      string `json:"category"`
	Amount        int64  `json:"amount"`
	BalanceBefore int64  `json:"balance_before"`
	BalanceAfter  int64  `json:"balance_after"`
	ReferenceType string `json:"reference_type,omitempty"`
	ReferenceID   string `json:"reference_id,omitempty"`
	Description   string `json:"description,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func toWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:             w.ID,
		UserID:         w.UserID,
		Balance:        int64(w.Balance),
		PendingBalance: int64(w.PendingBalance),
		IsActive:       w.IsActive,
		CreatedAt:      w.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toTransactionResponse(t *domain.WalletTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		TransactionID: t.TransactionID,
		Type:          string(t.Type),
		Category:      string(t.Category),
		Amount:        int64(t.Amount),
		BalanceBefore: int64(t.BalanceBefore),
		BalanceAfter:  int64(t.BalanceAfter),
		ReferenceType: string(t.Reference.Type),
		ReferenceID:   t.Reference.ID,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GetWallet handles GET /v1/wallets/:userID
func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, err := h.walletService.GetWallet(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toWalletResponse(wallet))
}

// RecordTransaction handles POST /v1/wallets/:userID/transactions
func (h *WalletHandler) RecordTransaction(c *gin.Context) {
	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	txn, err := h.walletService.Record(c.Request.Context(), service.RecordRequest{
		UserID:   c.Param("userID"),
		Type:     domain.TransactionType(req.Type),
		Category: domain.TransactionCategory(req.Category),
		Amount:   domain.Money(req.Amount),
		Reference: domain.TransactionReference{
			Type: domain.ReferenceType(req.ReferenceType),
			ID:   req.ReferenceID,
		},
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTransactionResponse(txn))
}

// ListTransactions handles GET /v1/wallets/:userID/transactions
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.walletService.History(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, toTransactionResponse(t))
	}

	respondJSON(c, http.StatusOK, gin.H{"transactions": responses, "count": len(responses)})
}
