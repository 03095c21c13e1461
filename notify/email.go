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

// Mailer sends transactional email through the provider's HTTP API.
type Mailer struct {
	apiURL     string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		apiURL:     cfg.EmailAPIURL,
		apiKey:     cfg.EmailAPIKey,
		from:       cfg.EmailFrom,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Mailer) Send(to, subject, html string) error {
	if m.apiKey == "" {
		return fmt.Errorf("email provider not configured")
	}

	body, err := json.Marshal(emailPayload{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach email provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email provider error (%d): %s", resp.StatusCode, string(raw))
	}
	return nil
}
