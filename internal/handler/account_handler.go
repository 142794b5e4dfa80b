package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/cqrs"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/middleware"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/models"
	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountCommander defines the write-side account operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetBalance(ctx context.Context, q cqrs.GetBalanceQuery) (*models.BalanceView, error)
	ListBalances(ctx context.Context, q cqrs.ListBalancesQuery) ([]models.BalanceView, error)
	ListAccounts(ctx context.Context, q cqrs.ListAccountsQuery) ([]models.Account, error)
	ListMovements(ctx context.Context, q cqrs.ListMovementsQuery) ([]models.Transaction, error)
}

type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

// CreateAccountRequest carries no validate tags: presence and range checks
// are business gates answered by the command service with its enumerated
// messages, not by the structural validator.
type CreateAccountRequest struct {
	CustomerID                   string           `json:"customerId"`
	AssignedDayNumberForMovement *int             `json:"assignedDayNumberForMovement"`
	OpeningAmount                *decimal.Decimal `json:"openingAmount"`
}

type CreateAccountResponse struct {
	ID string `json:"id"`
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		CustomerID:                   req.CustomerID,
		AssignedDayNumberForMovement: req.AssignedDayNumberForMovement,
		OpeningAmount:                req.OpeningAmount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateAccountResponse{ID: account.ID})
}

func (h *AccountHandler) GetBalance(c *gin.Context) {
	view, err := h.queries.GetBalance(c.Request.Context(), cqrs.GetBalanceQuery{
		AccountID: c.Param("accountId"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) ListBalancesByCustomer(c *gin.Context) {
	views, err := h.queries.ListBalances(c.Request.Context(), cqrs.ListBalancesQuery{
		CustomerID: c.Param("customerId"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if views == nil {
		views = []models.BalanceView{}
	}
	c.JSON(http.StatusOK, views)
}

func (h *AccountHandler) ListAccountsByCustomer(c *gin.Context) {
	accounts, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{
		CustomerID: c.Param("customerId"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) ListMovements(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid month")
		return
	}

	movements, err := h.queries.ListMovements(c.Request.Context(), cqrs.ListMovementsQuery{
		AccountID: c.Param("accountId"),
		Period:    utils.YearMonth(year, month),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if movements == nil {
		movements = []models.Transaction{}
	}
	c.JSON(http.StatusOK, movements)
}

// respondServiceError maps a business rejection to a client error and
// anything else to a 500. "Account not found" is the only rejection that
// reads as a missing resource rather than a bad request.
func respondServiceError(c *gin.Context, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		if ve.Message == "Account not found" {
			middleware.RespondWithError(c, http.StatusNotFound, ve.Message)
			return
		}
		middleware.RespondWithError(c, http.StatusBadRequest, ve.Message)
		return
	}
	middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
}
