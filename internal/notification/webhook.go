package notification

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gravitational/trace"
)

type WebhookNotifier struct {
	client *http.Client
}

func NewWebhookNotifier() *WebhookNotifier {
	return &WebhookNotifier{client: &http.Client{Timeout: 10 * time.Second}}
}

func (n *WebhookNotifier) Type() string {
	return "webhook"
}

type webhookConfig struct {
	URL string `json:"url"`
}

func (n *WebhookNotifier) ValidateConfig(configJSON string) error {
	var cfg webhookConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return trace.BadParameter("invalid webhook config: %v", err)
	}
	if cfg.URL == "" {
		return trace.BadParameter("webhook config requires url")
	}
	return nil
}

func (n *WebhookNotifier) Send(configJSON string, msg Message) error {
	var cfg webhookConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return trace.BadParameter("invalid webhook config: %v", err)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return trace.Wrap(err)
	}

	resp, err := n.client.Post(cfg.URL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return trace.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return trace.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
