package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to an esplora-style REST API (mempool.space schema). It
// implements ChainService and, incidentally, the tx package's RawTxFetcher.
type Client struct {
	baseURL string
	client  *http.Client
}

// errorEnvelope is the JSON error shape some deployments wrap failures in:
// {"error": {"details": "..."}} or {"error": "..."}.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

// NewClient creates a Client for the resolved configuration. The underlying
// HTTP client keeps a small idle-connection pool and applies a request
// timeout; per-call deadlines come from the caller's context.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// ListUnspent fetches GET /address/{address}/utxo and maps the esplora UTXO
// shape (nested status.confirmed) onto the flat wire type.
func (c *Client) ListUnspent(ctx context.Context, address string) ([]UTXO, error) {
	body, err := c.get(ctx, "/address/"+url.PathEscape(address)+"/utxo", nil)
	if err != nil {
		return nil, err
	}

	var raw []struct {
		TxID   string `json:"txid"`
		Vout   uint32 `json:"vout"`
		Value  uint64 `json:"value"`
		Status struct {
			Confirmed bool `json:"confirmed"`
		} `json:"status"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode utxos: %w", ErrInvalidResponse, err)
	}

	utxos := make([]UTXO, len(raw))
	for i, u := range raw {
		utxos[i] = UTXO{TxID: u.TxID, Vout: u.Vout, Value: u.Value, Confirmed: u.Status.Confirmed}
	}
	return utxos, nil
}

// RecommendedFees fetches GET /v1/fees/recommended.
func (c *Client) RecommendedFees(ctx context.Context) (*FeeTiers, error) {
	body, err := c.get(ctx, "/v1/fees/recommended", nil)
	if err != nil {
		return nil, err
	}

	var tiers FeeTiers
	if err := json.Unmarshal(body, &tiers); err != nil {
		return nil, fmt.Errorf("%w: decode fee tiers: %w", ErrInvalidResponse, err)
	}
	return &tiers, nil
}

// RawTxHex fetches GET /tx/{txid}/hex, returned by the API as plain text.
// The hex itself is validated by the consumer; only transport-level problems
// are reported here.
func (c *Client) RawTxHex(ctx context.Context, txid string) (string, error) {
	body, err := c.get(ctx, "/tx/"+url.PathEscape(txid)+"/hex", ErrTxNotFound)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// BroadcastTx POSTs the raw transaction hex to /tx as plain text. A 2xx
// response body is the assigned txid; anything else is ErrBroadcastRejected
// carrying the service's details.
func (c *Client) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tx",
		strings.NewReader(rawTxHex))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrConnectionFailed, err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrInvalidResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s", ErrBroadcastRejected, errorDetails(body))
	}

	txid := strings.TrimSpace(string(body))
	if txid == "" {
		return "", fmt.Errorf("%w: empty txid in broadcast response", ErrInvalidResponse)
	}
	return txid, nil
}

// BestBlockHeight fetches GET /blocks/tip/height (plain-text integer).
func (c *Client) BestBlockHeight(ctx context.Context) (uint64, error) {
	body, err := c.get(ctx, "/blocks/tip/height", nil)
	if err != nil {
		return 0, err
	}
	height, err := strconv.ParseUint(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse tip height: %w", ErrInvalidResponse, err)
	}
	return height, nil
}

// get performs a GET against the API and returns the response body. A non-2xx
// status maps to ErrInvalidResponse with whatever details the error envelope
// carries, except HTTP 404 when the caller supplied a notFound sentinel for
// endpoints where absence is a distinct outcome.
func (c *Client) get(ctx context.Context, path string, notFound error) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrConnectionFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrInvalidResponse, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && notFound != nil:
		return nil, fmt.Errorf("%w: %s", notFound, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrInvalidResponse, resp.StatusCode, errorDetails(body))
	}
	return body, nil
}

// errorDetails extracts a human-readable reason from an error envelope,
// falling back to the raw body.
func errorDetails(body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Error) > 0 {
		var nested struct {
			Details string `json:"details"`
		}
		if err := json.Unmarshal(env.Error, &nested); err == nil && nested.Details != "" {
			return nested.Details
		}
		var flat string
		if err := json.Unmarshal(env.Error, &flat); err == nil && flat != "" {
			return flat
		}
	}
	return strings.TrimSpace(string(body))
}
