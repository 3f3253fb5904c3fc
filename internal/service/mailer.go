package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"namavruksha/internal/config"
	"namavruksha/pkg/logger"
)

// HTTPMailer sends transactional email through the hosted email provider's
// REST API. Sends are best-effort: failures are logged and swallowed, a
// missed admin alert must never fail the triggering request.
type HTTPMailer struct {
	config     *config.Config
	httpClient *http.Client
	logger     *logger.Logger
}

// NewHTTPMailer creates a new transactional mailer
func NewHTTPMailer(cfg *config.Config, logger *logger.Logger) *HTTPMailer {
	return &HTTPMailer{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type mailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Send delivers one message. Errors are logged, never returned.
func (m *HTTPMailer) Send(ctx context.Context, to, subject, body string) {
	if m.config.MailAPIURL == "" || to == "" {
		m.logger.Debug("Mailer not configured, skipping send")
		return
	}

	payload, err := json.Marshal(mailPayload{
		From:    m.config.MailFrom,
		To:      to,
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		m.logger.WithError(err).Error("Failed to marshal mail payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.MailAPIURL, bytes.NewBuffer(payload))
	if err != nil {
		m.logger.WithError(err).Error("Failed to create mail request")
		return
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", m.config.MailAPIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.logger.WithError(err).WithField("subject", subject).Error("Failed to send mail")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		m.logger.WithFields(map[string]interface{}{
			"status_code": resp.StatusCode,
			"subject":     subject,
		}).Error("Mail provider returned non-success status")
		return
	}

	m.logger.WithField("subject", subject).Debug("Mail sent")
}
