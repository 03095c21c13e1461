package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AndreaGalia/olio-galia-sub004/config"
)

// WhatsApp sends messages through the Cloud API.
type WhatsApp struct {
	apiURL     string
	token      string
	phoneID    string
	httpClient *http.Client
}

func NewWhatsApp(cfg *config.Config) *WhatsApp {
	return &WhatsApp{
		apiURL:     cfg.WhatsAppAPIURL,
		token:      cfg.WhatsAppToken,
		phoneID:    cfg.WhatsAppPhoneID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (w *WhatsApp) SendText(to, text string) error {
	if w.token == "" || w.phoneID == "" {
		return fmt.Errorf("whatsapp provider not configured")
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]string{"body": text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", w.apiURL, w.phoneID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.token)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach whatsapp API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp API error (%d): %s", resp.StatusCode, string(raw))
	}
	return nil
}
