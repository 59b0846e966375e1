package steemapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ulogs/wallet-backend/internal/domain"
)

// Client reads account and chain state from a Steem node over JSON-RPC.
// Every call is a single request; failures are returned, never retried.
type Client struct {
	rpcURL     string
	httpClient *http.Client
	logger     logrus.FieldLogger
	nextID     atomic.Int64
}

var (
	_ domain.AccountRepository          = (*Client)(nil)
	_ domain.GlobalPropertiesRepository = (*Client)(nil)
	_ domain.AccountLookup              = (*Client)(nil)
)

// NewClient creates a new Steem JSON-RPC client
func NewClient(rpcURL string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	return &Client{
		rpcURL: rpcURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.WithField("component", "steemapi"),
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int64         `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error,omitempty"`
	ID     int64           `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type accountResult struct {
	Name          string `json:"name"`
	Balance       string `json:"balance"`
	VestingShares string `json:"vesting_shares"`
}

type globalPropertiesResult struct {
	TotalVestingShares    string `json:"total_vesting_shares"`
	TotalVestingFundSteem string `json:"total_vesting_fund_steem"`
}

// call performs a JSON-RPC request and decodes the result into out
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("steem rpc call")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned HTTP %d: %s", method, resp.StatusCode, string(body))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%s failed: %s (code %d)", method, rpcResp.Error.Message, rpcResp.Error.Code)
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

func (c *Client) getAccounts(ctx context.Context, names ...string) ([]accountResult, error) {
	var accounts []accountResult
	if err := c.call(ctx, "condenser_api.get_accounts", []interface{}{names}, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccount implements domain.AccountRepository
func (c *Client) GetAccount(ctx context.Context, name string) (*domain.Account, error) {
	accounts, err := c.getAccounts(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("account %s: %w", name, domain.ErrAccountNotFound)
	}

	balance, err := domain.ParseAsset(accounts[0].Balance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance of %s: %w", name, err)
	}
	vestingShares, err := domain.ParseAsset(accounts[0].VestingShares)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vesting_shares of %s: %w", name, err)
	}

	account := &domain.Account{
		Name:          accounts[0].Name,
		Balance:       balance,
		VestingShares: vestingShares,
	}
	if err := account.Validate(); err != nil {
		return nil, fmt.Errorf("invalid account %s from node: %w", name, err)
	}

	return account, nil
}

// AccountExists implements domain.AccountLookup
func (c *Client) AccountExists(ctx context.Context, name string) (bool, error) {
	accounts, err := c.getAccounts(ctx, name)
	if err != nil {
		return false, err
	}
	return len(accounts) > 0, nil
}

// GetGlobalProperties implements domain.GlobalPropertiesRepository
func (c *Client) GetGlobalProperties(ctx context.Context) (*domain.GlobalProperties, error) {
	var result globalPropertiesResult
	if err := c.call(ctx, "condenser_api.get_dynamic_global_properties", []interface{}{}, &result); err != nil {
		return nil, err
	}

	totalShares, err := domain.ParseAsset(result.TotalVestingShares)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total_vesting_shares: %w", err)
	}
	totalFund, err := domain.ParseAsset(result.TotalVestingFundSteem)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total_vesting_fund_steem: %w", err)
	}

	return &domain.GlobalProperties{
		TotalVestingShares:    totalShares,
		TotalVestingFundSteem: totalFund,
	}, nil
}
