package models

import (
	"time"

	"gorm.io/gorm"
)

type MonitorType string

const (
	TypeHTTP        MonitorType = "http"
	TypeHTTPKeyword MonitorType = "http_keyword"
	TypeHTTPJSON    MonitorType = "http_json"
	TypeTCP         MonitorType = "tcp"
	TypeWS          MonitorType = "ws"
	TypeSteam       MonitorType = "steam"
	TypeDocker      MonitorType = "docker"
	TypePing        MonitorType = "ping"
	TypeDNS         MonitorType = "dns"
	TypePush        MonitorType = "push"
)

const (
	StatusUp      = "up"
	StatusDown    = "down"
	StatusUnknown = "unknown"
)

type Monitor struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"not null" json:"name"`
	Type      MonitorType `gorm:"not null" json:"type"`
	Target    string      `json:"target"` // URL, hostname, IP or docker-host descriptor
	PushToken string      `gorm:"index" json:"push_token,omitempty"`

	Interval   int `gorm:"default:60" json:"interval"` // Seconds
	Timeout    int `gorm:"default:10" json:"timeout"`  // Seconds
	MaxRetries int `gorm:"default:0" json:"max_retries"`

	// Fields below are meaningful only for the matching type; they are
	// retained but inert when another type is active.
	ExpectedStatus string `json:"expected_status"` // http-family, empty = any 2xx
	Method         string `json:"method"`          // http-family
	Headers        string `json:"headers"`         // http-family, JSON object string
	Body           string `json:"body"`            // http-family
	Keyword        string `json:"keyword"`         // http_keyword
	JSONPath       string `json:"json_path"`       // http_json
	JSONValue      string `json:"json_value"`      // http_json

	Enabled           bool          `gorm:"default:true" json:"enabled"`
	GroupID           *uint         `json:"group_id"`
	Group             *MonitorGroup `json:"group,omitempty"`
	LastStatus        string        `json:"last_status"` // up, down, unknown
	LastCheckedAt     *time.Time    `json:"last_checked_at"`
	CertificateExpiry *time.Time    `json:"certificate_expiry,omitempty"`

	StatusPages []StatusPage `gorm:"many2many:status_page_monitors" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MonitorTypes is the closed set of supported check types.
var MonitorTypes = []MonitorType{
	TypeHTTP, TypeHTTPKeyword, TypeHTTPJSON, TypeTCP, TypeWS,
	TypeSteam, TypeDocker, TypePing, TypeDNS, TypePush,
}

func ValidMonitorType(t MonitorType) bool {
	for _, mt := range MonitorTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// typeFields is the single source of truth for which optional fields are
// meaningful per monitor type. Validation and serialization both consult it
// so "which fields matter" is never re-derived independently.
var typeFields = map[MonitorType][]string{
	TypeHTTP:        {"expected_status", "method", "headers", "body"},
	TypeHTTPKeyword: {"expected_status", "method", "headers", "body", "keyword"},
	TypeHTTPJSON:    {"expected_status", "method", "headers", "body", "json_path", "json_value"},
	TypeTCP:         {},
	TypeWS:          {},
	TypeSteam:       {},
	TypeDocker:      {},
	TypePing:        {},
	TypeDNS:         {},
	TypePush:        {},
}

// FieldRelevant reports whether an optional field applies to the given type.
func FieldRelevant(t MonitorType, field string) bool {
	for _, f := range typeFields[t] {
		if f == field {
			return true
		}
	}
	return false
}

// HTTPFamily reports whether the type performs an HTTP request and therefore
// honors method/headers/body/expected_status.
func HTTPFamily(t MonitorType) bool {
	return t == TypeHTTP || t == TypeHTTPKeyword || t == TypeHTTPJSON
}
