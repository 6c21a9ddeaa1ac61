package notification

// Message carries everything a notifier needs to describe a status change.
type Message struct {
	MonitorName string `json:"monitor_name"`
	Target      string `json:"target"`
	Status      string `json:"status"` // up or down
	Message     string `json:"message"`
	Time        string `json:"time"`
}

// Notifier is one delivery channel type. ValidateConfig gates channel
// persistence; Send is only ever called with a config that passed it.
type Notifier interface {
	Type() string
	ValidateConfig(configJSON string) error
	Send(configJSON string, msg Message) error
}
