// Package paydunya implements the payment provider port against the
// PayDunya checkout-invoice API. Amounts are passed in minor currency
// units; XOF has no decimals so they go on the wire as-is.
package paydunya

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/pkg/errs"
)

const defaultTimeout = 15 * time.Second

// successCode is the response_code PayDunya returns on success.
const successCode = "00"

// Config carries the PayDunya API credentials and endpoint.
type Config struct {
	BaseURL    string
	MasterKey  string
	PrivateKey string
	Token      string
	StoreName  string
}

// Client talks to the PayDunya checkout-invoice API. It implements
// ports.PaymentProvider; every failure surfaces as a ProviderError.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a PayDunya client with a bounded request timeout.
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		http:   &http.Client{Timeout: defaultTimeout},
	}
}

type createInvoiceRequest struct {
	Invoice struct {
		TotalAmount int64  `json:"total_amount"`
		Description string `json:"description"`
	} `json:"invoice"`
	Store struct {
		Name string `json:"name"`
	} `json:"store"`
	Actions struct {
		CallbackURL string `json:"callback_url"`
	} `json:"actions"`
}

type createInvoiceResponse struct {
	ResponseCode string `json:"response_code"`
	ResponseText string `json:"response_text"`
	Token        string `json:"token"`
}

type confirmInvoiceResponse struct {
	ResponseCode string `json:"response_code"`
	ResponseText string `json:"response_text"`
	Status       string `json:"status"`
	Invoice      struct {
		TransactionID string `json:"transaction_id"`
	} `json:"invoice"`
}

// CreateInvoice registers a checkout invoice and returns the provider token
// plus the redirect URL the customer pays at.
func (c *Client) CreateInvoice(
	ctx context.Context,
	amount int64,
	reference, callbackURL string,
) (string, string, error) {
	var body createInvoiceRequest
	body.Invoice.TotalAmount = amount
	body.Invoice.Description = fmt.Sprintf("Commande %s", reference)
	body.Store.Name = c.config.StoreName
	body.Actions.CallbackURL = callbackURL

	var parsed createInvoiceResponse
	if err := c.post(ctx, "/checkout-invoice/create", body, &parsed); err != nil {
		return "", "", errs.NewProviderError("create invoice", err)
	}
	if parsed.ResponseCode != successCode {
		return "", "", errs.NewProviderError("create invoice",
			fmt.Errorf("provider declined with code %s: %s", parsed.ResponseCode, parsed.ResponseText))
	}
	if parsed.Token == "" {
		return "", "", errs.NewProviderError("create invoice",
			fmt.Errorf("provider returned no token"))
	}

	// On success response_text carries the checkout URL.
	return parsed.Token, parsed.ResponseText, nil
}

// ConfirmInvoice asks the provider for the current status of an invoice.
// A still-unpaid invoice is reported as Processing.
func (c *Client) ConfirmInvoice(ctx context.Context, token string) (payment.Status, string, error) {
	var parsed confirmInvoiceResponse
	if err := c.get(ctx, "/checkout-invoice/confirm/"+token, &parsed); err != nil {
		return payment.Unknown, "", errs.NewProviderError("confirm invoice", err)
	}
	if parsed.ResponseCode != successCode {
		return payment.Unknown, "", errs.NewProviderError("confirm invoice",
			fmt.Errorf("provider declined with code %s: %s", parsed.ResponseCode, parsed.ResponseText))
	}

	if parsed.Status == "pending" {
		return payment.Processing, "", nil
	}

	status, err := payment.StatusFromProviderString(parsed.Status)
	if err != nil {
		return payment.Unknown, "", errs.NewProviderError("confirm invoice", err)
	}

	return status, parsed.Invoice.TransactionID, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("PAYDUNYA-MASTER-KEY", c.config.MasterKey)
	req.Header.Set("PAYDUNYA-PRIVATE-KEY", c.config.PrivateKey)
	req.Header.Set("PAYDUNYA-TOKEN", c.config.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
