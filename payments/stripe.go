package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AndreaGalia/olio-galia-sub004/config"
)

// Client talks to the payment processor's REST API (form-encoded requests,
// JSON responses).
type Client struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiURL:     strings.TrimRight(cfg.StripeAPIURL, "/"),
		secretKey:  cfg.StripeSecretKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

type apiError struct {
	Error *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CheckoutSession is the processor-side view of one checkout attempt.
type CheckoutSession struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	Mode            string `json:"mode"`
	PaymentStatus   string `json:"payment_status"` // "paid", "unpaid"
	Currency        string `json:"currency"`
	AmountSubtotal  int64  `json:"amount_subtotal"` // cents
	AmountTotal     int64  `json:"amount_total"`    // cents
	Customer        string `json:"customer"`
	Subscription    string `json:"subscription"`
	CustomerDetails struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address struct {
			Line1      string `json:"line1"`
			Line2      string `json:"line2"`
			City       string `json:"city"`
			State      string `json:"state"`
			PostalCode string `json:"postal_code"`
			Country    string `json:"country"`
		} `json:"address"`
	} `json:"customer_details"`
	Metadata map[string]string `json:"metadata"`
}

type SessionLineItem struct {
	Name       string
	AmountCent int64
	Quantity   int
}

type CreateSessionParams struct {
	Items         []SessionLineItem
	ShippingCent  int64
	ShippingLabel string
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CreateCheckoutSession opens a hosted checkout page and returns the session
// (id + redirect URL).
func (c *Client) CreateCheckoutSession(p CreateSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)
	if p.CustomerEmail != "" {
		form.Set("customer_email", p.CustomerEmail)
	}

	items := p.Items
	if p.ShippingCent > 0 {
		label := p.ShippingLabel
		if label == "" {
			label = "Spedizione"
		}
		items = append(items, SessionLineItem{Name: label, AmountCent: p.ShippingCent, Quantity: 1})
	}
	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", p.Currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.AmountCent, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}
	for k, v := range p.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var session CheckoutSession
	if err := c.post("/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	if session.URL == "" {
		return nil, fmt.Errorf("processor returned empty checkout URL")
	}
	return &session, nil
}

// GetCheckoutSession fetches the full session detail for reconciliation.
func (c *Client) GetCheckoutSession(sessionID string) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.get("/checkout/sessions/"+url.PathEscape(sessionID), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreatePortalSession opens a self-service billing portal for a processor
// customer and returns its URL.
func (c *Client) CreatePortalSession(customerID, returnURL string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("return_url", returnURL)

	var out struct {
		URL string `json:"url"`
	}
	if err := c.post("/billing_portal/sessions", form, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("processor returned empty portal URL")
	}
	return out.URL, nil
}

// CancelSubscription cancels a subscription processor-side.
func (c *Client) CancelSubscription(subscriptionID string) error {
	req, err := http.NewRequest(http.MethodDelete, c.apiURL+"/subscriptions/"+url.PathEscape(subscriptionID), nil)
	if err != nil {
		return err
	}
	return c.do(req, &struct{}{})
}

func (c *Client) post(path string, form url.Values, out interface{}) error {
	req, err := http.NewRequest(http.MethodPost, c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach payment processor: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != nil {
			return fmt.Errorf("processor error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("processor error (%d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse processor response: %w", err)
	}
	return nil
}
