// Package gateway holds the client for sibling account services, used for the
// credit leg of a transfer whose target account is of another type.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NTT-Botcamp-W3/bank-products-fixed-accounts/internal/cqrs"
	"github.com/shopspring/decimal"
)

// AccountGateway creates transactions on sibling account services.
type AccountGateway interface {
	CreateTransaction(ctx context.Context, accountType string, cmd cqrs.CreateTransactionCommand) (int64, error)
}

// HTTPAccountGateway routes by target account type to the base URL of the
// matching peer service and posts the commission-flagged credit leg there.
type HTTPAccountGateway struct {
	serviceURLs map[string]string
	client      *http.Client
}

func NewHTTPAccountGateway(serviceURLs map[string]string) *HTTPAccountGateway {
	normalized := make(map[string]string, len(serviceURLs))
	for accountType, url := range serviceURLs {
		normalized[strings.ToUpper(accountType)] = strings.TrimSuffix(url, "/")
	}
	return &HTTPAccountGateway{
		serviceURLs: normalized,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type createTransactionRequest struct {
	AccountID           string          `json:"accountId"`
	Agent               string          `json:"agent"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	CreatedByCommission bool            `json:"createdByCommission"`
}

type createTransactionResponse struct {
	OperationNumber int64 `json:"operationNumber"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (g *HTTPAccountGateway) CreateTransaction(ctx context.Context, accountType string, cmd cqrs.CreateTransactionCommand) (int64, error) {
	baseURL, ok := g.serviceURLs[strings.ToUpper(accountType)]
	if !ok {
		return 0, fmt.Errorf("no account service configured for type %s", accountType)
	}

	body, err := json.Marshal(createTransactionRequest{
		AccountID:           cmd.AccountID,
		Agent:               cmd.Agent,
		Description:         cmd.Description,
		Amount:              *cmd.Amount,
		CreatedByCommission: cmd.CreatedByCommission,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal transaction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/savingAccounts/transaction", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("account service %s unavailable: %w", accountType, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Message != "" {
			return 0, fmt.Errorf("account service %s rejected transaction: %s", accountType, errResp.Message)
		}
		return 0, fmt.Errorf("account service %s returned status %d", accountType, resp.StatusCode)
	}

	var created createTransactionResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return created.OperationNumber, nil
}
