package mercadopago

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is MercadoPago's production API endpoint.
const DefaultBaseURL = "https://api.mercadopago.com"

// PaymentStatusApproved is the gateway's status for a completed payment.
const PaymentStatusApproved = "approved"

// Config holds the gateway credentials and endpoint.
type Config struct {
	AccessToken string
	BaseURL     string // DefaultBaseURL when empty
}

// Client is a thin MercadoPago API client covering what checkout needs:
// creating a payment preference (redirect URL) and reading a payment back
// when a webhook arrives.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

// NewClient creates a new MercadoPago client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		accessToken: cfg.AccessToken,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// PreferenceItem is one purchasable line in a payment preference.
type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

// PayerAddress is the payer's shipping address as the gateway expects it.
type PayerAddress struct {
	ZipCode      string `json:"zip_code"`
	StreetName   string `json:"street_name"`
	StreetNumber string `json:"street_number"`
}

// Payer identifies the paying customer.
type Payer struct {
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Address PayerAddress `json:"address"`
}

// BackURLs are the browser redirect targets for each payment outcome.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest is the payload for creating a payment preference.
// ExternalReference carries the cart ID so callbacks can recover which
// cart to convert.
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	Payer             Payer            `json:"payer"`
	BackURLs          BackURLs         `json:"back_urls"`
	ExternalReference string           `json:"external_reference"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

// Payment is the subset of the gateway's payment resource the webhook
// handler needs.
type Payment struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
}

// CreatePreference registers a payment preference and returns the redirect
// URL the buyer should be sent to.
func (c *Client) CreatePreference(req PreferenceRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal preference request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build preference request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("preference request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read preference response: %w", err)
	}

	var pref preferenceResponse
	if err := json.Unmarshal(respBody, &pref); err != nil {
		return "", fmt.Errorf("failed to decode preference response: %w", err)
	}
	if resp.StatusCode >= 300 || pref.Error != "" {
		reason := pref.Error
		if reason == "" {
			reason = pref.Message
		}
		return "", fmt.Errorf("gateway rejected preference (status %d): %s", resp.StatusCode, reason)
	}
	if pref.InitPoint == "" {
		return "", fmt.Errorf("gateway returned no redirect URL")
	}
	return pref.InitPoint, nil
}

// GetPayment fetches a payment by id. Webhook notifications only carry the
// payment id; this resolves the status and external reference.
func (c *Client) GetPayment(paymentID string) (*Payment, error) {
	httpReq, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d for payment %s", resp.StatusCode, paymentID)
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}
	return &payment, nil
}
