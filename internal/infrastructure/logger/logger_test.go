package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, DebugLevel)

	log.Debug("Debug message", map[string]interface{}{
		"key1": "value1",
	})

	var record map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &record)

	assert.NoError(t, err)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "Debug message", record["message"])
	assert.Equal(t, "value1", record["key1"])
	assert.Contains(t, record, "timestamp")

	// Levels below the configured one are dropped.
	buf.Reset()
	warnLogger := NewJSONLogger(&buf, WarnLevel)

	warnLogger.Debug("Should not appear", nil)
	warnLogger.Info("Should not appear either", nil)
	assert.Equal(t, "", buf.String())

	warnLogger.Warn("Warning message", nil)
	assert.Contains(t, buf.String(), "Warning message")

	// Context fields carry into every record.
	buf.Reset()
	fieldsLogger := log.WithFields(map[string]interface{}{
		"component": "test",
	})
	fieldsLogger.Info("With fields", nil)

	err = json.Unmarshal(buf.Bytes(), &record)
	assert.NoError(t, err)
	assert.Equal(t, "test", record["component"])
	assert.Equal(t, "With fields", record["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, ErrorLevel, ParseLevel("ERROR"))
	assert.Equal(t, InfoLevel, ParseLevel("bogus"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}
