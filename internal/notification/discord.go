package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gravitational/trace"
)

const (
	colorGreen = 3066993  // 0x2ECC71
	colorRed   = 15158332 // 0xE74C3C
	colorGray  = 9807270  // 0x95A5A6
)

type DiscordNotifier struct {
	client *http.Client
}

func NewDiscordNotifier() *DiscordNotifier {
	return &DiscordNotifier{client: &http.Client{Timeout: 10 * time.Second}}
}

func (n *DiscordNotifier) Type() string {
	return "discord"
}

type discordConfig struct {
	WebhookURL string `json:"webhook_url"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Color       int                 `json:"color"`
	Fields      []discordEmbedField `json:"fields"`
	Timestamp   string              `json:"timestamp"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds,omitempty"`
}

func (n *DiscordNotifier) ValidateConfig(configJSON string) error {
	var cfg discordConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return trace.BadParameter("invalid discord config: %v", err)
	}
	if cfg.WebhookURL == "" {
		return trace.BadParameter("discord config requires webhook_url")
	}
	return nil
}

func (n *DiscordNotifier) Send(configJSON string, msg Message) error {
	var cfg discordConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return trace.BadParameter("invalid discord config: %v", err)
	}

	color := colorGray
	switch msg.Status {
	case "up":
		color = colorGreen
	case "down":
		color = colorRed
	}

	payload := discordPayload{
		Embeds: []discordEmbed{{
			Title:       fmt.Sprintf("Monitor Status: %s", msg.Status),
			Description: fmt.Sprintf("**%s** is %s", msg.MonitorName, msg.Status),
			Color:       color,
			Fields: []discordEmbedField{
				{Name: "Target", Value: msg.Target, Inline: true},
				{Name: "Message", Value: msg.Message, Inline: true},
				{Name: "Time", Value: msg.Time, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return trace.Wrap(err)
	}

	resp, err := n.client.Post(cfg.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return trace.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return trace.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}
