// Package logger provides the structured JSON logger used across the service.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Level represents the severity level of a log message
type Level string

const (
	DebugLevel Level = "DEBUG"
	InfoLevel  Level = "INFO"
	WarnLevel  Level = "WARN"
	ErrorLevel Level = "ERROR"
	FatalLevel Level = "FATAL"
)

var severity = map[Level]int{
	DebugLevel: 0,
	InfoLevel:  1,
	WarnLevel:  2,
	ErrorLevel: 3,
	FatalLevel: 4,
}

// ParseLevel maps a level name to a Level, defaulting to INFO.
func ParseLevel(name string) Level {
	level := Level(name)
	if _, ok := severity[level]; !ok {
		return InfoLevel
	}

	return level
}

// Logger defines the interface for the application logger
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Fatal(msg string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

// JSONLogger is a logger that outputs structured JSON logs, one record per line.
type JSONLogger struct {
	output io.Writer
	level  Level
	fields map[string]interface{}
}

// NewJSONLogger creates a new JSON logger writing to output at the given
// level. A nil output falls back to stdout.
func NewJSONLogger(output io.Writer, level Level) *JSONLogger {
	if output == nil {
		output = os.Stdout
	}

	return &JSONLogger{
		output: output,
		level:  level,
		fields: make(map[string]interface{}),
	}
}

// WithFields returns a new logger carrying the fields in every record.
func (l *JSONLogger) WithFields(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return l
	}

	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}

	for k, v := range fields {
		merged[k] = v
	}

	return &JSONLogger{
		output: l.output,
		level:  l.level,
		fields: merged,
	}
}

func (l *JSONLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(DebugLevel, msg, fields)
}

func (l *JSONLogger) Info(msg string, fields map[string]interface{}) {
	l.log(InfoLevel, msg, fields)
}

func (l *JSONLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(WarnLevel, msg, fields)
}

func (l *JSONLogger) Error(msg string, fields map[string]interface{}) {
	l.log(ErrorLevel, msg, fields)
}

// Fatal logs a message at fatal level and then terminates the program
func (l *JSONLogger) Fatal(msg string, fields map[string]interface{}) {
	l.log(FatalLevel, msg, fields)
	os.Exit(1)
}

func (l *JSONLogger) log(level Level, msg string, fields map[string]interface{}) {
	if severity[level] < severity[l.level] {
		return
	}

	record := make(map[string]interface{}, len(l.fields)+len(fields)+3)
	record["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	record["level"] = level
	record["message"] = msg

	for k, v := range l.fields {
		record[k] = v
	}

	for k, v := range fields {
		record[k] = v
	}

	data, err := json.Marshal(record)
	if err != nil {
		fmt.Fprintf(l.output, "{\"level\":\"ERROR\",\"message\":\"Failed to marshal log entry\",\"error\":%q}\n", err.Error())
		return
	}

	data = append(data, '\n')
	if _, err := l.output.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write log entry: %s\n", err)
	}
}

var defaultLogger Logger = NewJSONLogger(os.Stdout, InfoLevel)

// GetDefaultLogger returns the default logger
func GetDefaultLogger() Logger {
	return defaultLogger
}

// SetDefaultLogger sets the default logger
func SetDefaultLogger(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
