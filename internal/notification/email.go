package notification

import (
	"encoding/json"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/gravitational/trace"
)

type EmailNotifier struct{}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{}
}

func (n *EmailNotifier) Type() string {
	return "email"
}

type emailConfig struct {
	Host     string   `json:"host"`
	Port     string   `json:"port"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	From     string   `json:"from"`
	To       []string `json:"to"`
}

func (n *EmailNotifier) ValidateConfig(configJSON string) error {
	var cfg emailConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return trace.BadParameter("invalid email config: %v", err)
	}
	if cfg.Host == "" || cfg.From == "" || len(cfg.To) == 0 {
		return trace.BadParameter("email config requires host, from and to")
	}
	return nil
}

func (n *EmailNotifier) Send(configJSON string, msg Message) error {
	var cfg emailConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return trace.BadParameter("invalid email config: %v", err)
	}

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	subject := fmt.Sprintf("Subject: [upstat] Monitor %s is %s\r\n", msg.MonitorName, strings.ToUpper(msg.Status))
	body := fmt.Sprintf("\r\nMonitor: %s\nTarget: %s\nStatus: %s\nTime: %s\nMessage: %s\n",
		msg.MonitorName, msg.Target, msg.Status, msg.Time, msg.Message)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	if err := smtp.SendMail(addr, auth, cfg.From, cfg.To, []byte(subject+body)); err != nil {
		return trace.Wrap(err)
	}
	return nil
}
