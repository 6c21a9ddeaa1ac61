package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gravitational/trace"
)

type TelegramNotifier struct {
	client *http.Client
}

func NewTelegramNotifier() *TelegramNotifier {
	return &TelegramNotifier{client: &http.Client{Timeout: 10 * time.Second}}
}

func (n *TelegramNotifier) Type() string {
	return "telegram"
}

type telegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
}

type telegramPayload struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func (n *TelegramNotifier) ValidateConfig(configJSON string) error {
	var cfg telegramConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return trace.BadParameter("invalid telegram config: %v", err)
	}
	if cfg.BotToken == "" || cfg.ChatID == "" {
		return trace.BadParameter("telegram config requires bot_token and chat_id")
	}
	return nil
}

func (n *TelegramNotifier) Send(configJSON string, msg Message) error {
	var cfg telegramConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return trace.BadParameter("invalid telegram config: %v", err)
	}

	icon := "?"
	switch msg.Status {
	case "up":
		icon = "✅"
	case "down":
		icon = "\U0001F534"
	}

	text := fmt.Sprintf(
		"%s *Monitor Status Update*\n\n*Monitor:* %s\n*Status:* %s\n*Target:* %s\n*Message:* %s\n*Time:* %s",
		icon, msg.MonitorName, msg.Status, msg.Target, msg.Message, msg.Time,
	)

	body, err := json.Marshal(telegramPayload{
		ChatID:    cfg.ChatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return trace.Wrap(err)
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", cfg.BotToken)
	resp, err := n.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return trace.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return trace.Errorf("telegram api returned status %d", resp.StatusCode)
	}
	return nil
}
