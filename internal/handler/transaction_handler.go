package handler

import (
	"context"
	"net/http"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/cqrs"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/middleware"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error)
	Transfer(ctx context.Context, cmd cqrs.TransferCommand) (int64, error)
}

type TransactionHandler struct {
	commands TransactionCommander
}

func NewTransactionHandler(commands TransactionCommander) *TransactionHandler {
	return &TransactionHandler{commands: commands}
}

type CreateTransactionRequest struct {
	AccountID           string           `json:"accountId"`
	Agent               string           `json:"agent"`
	Description         string           `json:"description"`
	Amount              *decimal.Decimal `json:"amount"`
	CreatedByCommission bool             `json:"createdByCommission"`
}

type TransferRequest struct {
	SourceAccountID   string           `json:"sourceAccountId"`
	TargetAccountID   string           `json:"targetAccountId"`
	TargetAccountType string           `json:"targetAccountType"`
	Amount            *decimal.Decimal `json:"amount"`
}

type OperationNumberResponse struct {
	OperationNumber int64 `json:"operationNumber"`
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.commands.CreateTransaction(c.Request.Context(), cqrs.CreateTransactionCommand{
		AccountID:           req.AccountID,
		Agent:               req.Agent,
		Description:         req.Description,
		Amount:              req.Amount,
		CreatedByCommission: req.CreatedByCommission,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, OperationNumberResponse{OperationNumber: tx.OperationNumber})
}

func (h *TransactionHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	operationNumber, err := h.commands.Transfer(c.Request.Context(), cqrs.TransferCommand{
		SourceAccountID:   req.SourceAccountID,
		TargetAccountID:   req.TargetAccountID,
		TargetAccountType: req.TargetAccountType,
		Amount:            req.Amount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, OperationNumberResponse{OperationNumber: operationNumber})
}
