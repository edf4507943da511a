package dex

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"GalaPilot/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var httpLog = logrus.WithField("module", "dex")

const settlementPollInterval = 5 * time.Second

// HTTPClient implements Client against the DEX backend REST API.
type HTTPClient struct {
	client     *resty.Client
	user       string
	privateKey string
}

// NewHTTPClient creates a client for the given backend base URL. The private
// key is used to sign swap submissions, never sent as-is.
func NewHTTPClient(baseURL, user, privateKey string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")
	return &HTTPClient{client: client, user: user, privateKey: privateKey}
}

// CurrentPrice fetches the current price of a token in stable-coin terms.
func (c *HTTPClient) CurrentPrice(ctx context.Context, token string) (decimal.Decimal, error) {
	var out struct {
		Data string `json:"data"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("token", token).
		SetResult(&out).
		Get("/v1/trade/price")
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch price: %w", err)
	}
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("fetch price: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if out.Data == "" {
		return decimal.Zero, fmt.Errorf("fetch price: unexpected response: %s", resp.String())
	}
	price, err := decimal.NewFromString(out.Data)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", out.Data, err)
	}
	return price, nil
}

// UserAssets fetches one page of the user's token balances.
func (c *HTTPClient) UserAssets(ctx context.Context, user string, page, limit int) (*model.Portfolio, error) {
	var out struct {
		Data struct {
			Count  int `json:"count"`
			Tokens []struct {
				Symbol   string `json:"symbol"`
				Quantity string `json:"quantity"`
			} `json:"tokens"`
		} `json:"data"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address": user,
			"page":    fmt.Sprintf("%d", page),
			"limit":   fmt.Sprintf("%d", limit),
		}).
		SetResult(&out).
		Get("/user/assets")
	if err != nil {
		return nil, fmt.Errorf("fetch assets: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch assets: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	portfolio := &model.Portfolio{Count: out.Data.Count}
	for _, tok := range out.Data.Tokens {
		qty, err := decimal.NewFromString(tok.Quantity)
		if err != nil {
			httpLog.Warnf("skipping asset %s with unparseable quantity %q", tok.Symbol, tok.Quantity)
			continue
		}
		portfolio.Balances = append(portfolio.Balances, model.TokenBalance{Symbol: tok.Symbol, Quantity: qty})
	}
	return portfolio, nil
}

// QuoteExactInput requests a quote for swapping amountIn of tokenIn.
func (c *HTTPClient) QuoteExactInput(ctx context.Context, tokenIn, tokenOut string, amountIn decimal.Decimal) (*Quote, error) {
	var out struct {
		Data struct {
			FeeTier   int    `json:"feeTier"`
			AmountOut string `json:"amountOut"`
		} `json:"data"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"tokenIn":  tokenIn,
			"tokenOut": tokenOut,
			"amountIn": amountIn.String(),
		}).
		SetResult(&out).
		Post("/v1/trade/quote")
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("quote: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	amountOut, err := decimal.NewFromString(out.Data.AmountOut)
	if err != nil {
		return nil, fmt.Errorf("quote: parse amountOut %q: %w", out.Data.AmountOut, err)
	}
	return &Quote{FeeTier: out.Data.FeeTier, AmountOut: amountOut}, nil
}

// Swap submits an exact-input swap and returns a handle for settlement.
func (c *HTTPClient) Swap(ctx context.Context, req SwapRequest) (Pending, error) {
	body := map[string]any{
		"tokenIn":          req.TokenIn,
		"tokenOut":         req.TokenOut,
		"fee":              req.FeeTier,
		"amountIn":         req.ExactIn.String(),
		"amountOutMinimum": req.AmountOutMinimum.String(),
		"recipient":        req.Recipient,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("swap: marshal request: %w", err)
	}

	var out struct {
		Data struct {
			TransactionID string `json:"transactionId"`
		} `json:"data"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Wallet-Address", c.user).
		SetHeader("X-Signature", c.sign(payload)).
		SetBody(payload).
		SetResult(&out).
		Post("/v1/trade/swap")
	if err != nil {
		return nil, fmt.Errorf("swap submit: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("swap submit: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if out.Data.TransactionID == "" {
		return nil, fmt.Errorf("swap submit: no transaction id in response: %s", resp.String())
	}
	return &pendingSwap{client: c, id: out.Data.TransactionID}, nil
}

func (c *HTTPClient) sign(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(c.privateKey))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// pendingSwap polls the transaction-status endpoint until the swap reaches a
// terminal state. There is no local timeout: the caller's context governs.
type pendingSwap struct {
	client *HTTPClient
	id     string
}

func (p *pendingSwap) TransactionID() string { return p.id }

func (p *pendingSwap) Wait(ctx context.Context) (string, error) {
	ticker := time.NewTicker(settlementPollInterval)
	defer ticker.Stop()

	for {
		status, message, err := p.poll(ctx)
		if err != nil {
			httpLog.Warnf("transaction %s status poll failed: %v", p.id, err)
		} else {
			switch status {
			case "PROCESSED":
				if message == "" {
					message = "transaction processed"
				}
				return message, nil
			case "FAILED":
				if message == "" {
					message = "transaction failed"
				}
				return "", fmt.Errorf("settlement: %s", message)
			}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *pendingSwap) poll(ctx context.Context) (status, message string, err error) {
	var out struct {
		Data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"data"`
	}
	resp, err := p.client.client.R().
		SetContext(ctx).
		SetQueryParam("transactionId", p.id).
		SetResult(&out).
		Get("/v1/trade/transaction-status")
	if err != nil {
		return "", "", err
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("status %d, body: %s", resp.StatusCode(), resp.String())
	}
	return out.Data.Status, out.Data.Message, nil
}
