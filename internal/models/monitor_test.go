package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/upstat-dev/upstat/internal/models"
)

func TestValidMonitorType(t *testing.T) {
	for _, mt := range models.MonitorTypes {
		assert.True(t, models.ValidMonitorType(mt))
	}
	assert.False(t, models.ValidMonitorType("database"))
	assert.False(t, models.ValidMonitorType(""))
}

func TestFieldRelevant(t *testing.T) {
	assert.True(t, models.FieldRelevant(models.TypeHTTP, "headers"))
	assert.True(t, models.FieldRelevant(models.TypeHTTPKeyword, "keyword"))
	assert.True(t, models.FieldRelevant(models.TypeHTTPJSON, "json_path"))

	assert.False(t, models.FieldRelevant(models.TypeHTTP, "keyword"))
	assert.False(t, models.FieldRelevant(models.TypeHTTP, "json_path"))
	assert.False(t, models.FieldRelevant(models.TypeTCP, "headers"))
	assert.False(t, models.FieldRelevant(models.TypePush, "headers"))
}

func TestHTTPFamily(t *testing.T) {
	for _, mt := range models.MonitorTypes {
		want := mt == models.TypeHTTP || mt == models.TypeHTTPKeyword || mt == models.TypeHTTPJSON
		assert.Equal(t, want, models.HTTPFamily(mt), "type %s", mt)
	}
}
