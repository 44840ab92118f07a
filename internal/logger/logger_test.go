package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLogger_Log(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "log-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpFile.Name())   // nolint:errcheck
	defer tmpFile.Close()              // nolint:errcheck

	logger := New(LevelInfo, tmpFile)

	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "test message",
			fields:  Fields{"key": "value"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false, // won't log (below INFO)
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "error occurred",
			err:     errors.New("test error"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := tmpFile.Seek(0, 2) // Get current position

			logger.log(tt.level, tt.message, tt.fields, tt.err)

			after, _ := tmpFile.Seek(0, 2) // Get new position
			logged := after > before

			if logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLogEntry_JSON(t *testing.T) {
	entry := LogEntry{
		Timestamp: "2026-01-01T00:00:00Z",
		Level:     "INFO",
		Message:   "test message",
		Fields: Fields{
			"year":      1992,
			"documents": 8,
		},
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded LogEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.Message != entry.Message {
		t.Errorf("Message = %v, want %v", decoded.Message, entry.Message)
	}
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("years.fetched")
	m.IncrCounter("years.fetched")
	m.IncrCounter("years.fetched")

	snapshot := m.GetSnapshot()
	counters := snapshot["counters"].(map[string]int64)

	if counters["years.fetched"] != 3 {
		t.Errorf("Counter = %v, want 3", counters["years.fetched"])
	}
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics()

	m.SetGauge("table.rows", 512)
	m.SetGauge("table.rows", 1024)

	snapshot := m.GetSnapshot()
	gauges := snapshot["gauges"].(map[string]float64)

	if gauges["table.rows"] != 1024 {
		t.Errorf("Gauge = %v, want 1024.0", gauges["table.rows"])
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("fetch.year", 100*time.Millisecond)
	m.RecordTiming("fetch.year", 200*time.Millisecond)
	m.RecordTiming("fetch.year", 150*time.Millisecond)

	snapshot := m.GetSnapshot()
	timings := snapshot["timings"].(map[string]map[string]interface{})

	fetchTiming := timings["fetch.year"]
	if fetchTiming["count"].(int) != 3 {
		t.Errorf("Timing count = %v, want 3", fetchTiming["count"])
	}

	if fetchTiming["min"].(string) != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", fetchTiming["min"])
	}

	if fetchTiming["max"].(string) != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", fetchTiming["max"])
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	// Test that package-level functions don't panic
	Info("test info", Fields{"key": "value"})
	Warn("test warning", nil)
	Error("test error", Fields{"component": "test"}, errors.New("test"))

	IncrCounter("test")
	SetGauge("test", 42.0)
	RecordTiming("test", time.Second)

	snapshot := GetMetricsSnapshot()
	if snapshot == nil {
		t.Error("GetMetricsSnapshot() returned nil")
	}
}

func TestLogger_Levels(t *testing.T) {
	tmpFile, _ := os.CreateTemp("", "log-test-*")
	defer os.Remove(tmpFile.Name())   // nolint:errcheck
	defer tmpFile.Close()              // nolint:errcheck

	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.minLevel, tmpFile)
			before, _ := tmpFile.Seek(0, 2)

			logger.log(tt.logLevel, "test", nil, nil)

			after, _ := tmpFile.Seek(0, 2)
			logged := after > before

			if logged != tt.shouldLog {
				t.Errorf("shouldLog = %v, want %v", logged, tt.shouldLog)
			}
		})
	}
}

func TestLogger_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Warn("override target missing", Fields{"key": "19680131"})
	logger.Error("fetch failed", Fields{"year": 1992}, errors.New("status 503"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if entry.Level != string(LevelError) {
		t.Errorf("Level = %v, want ERROR", entry.Level)
	}
	if entry.Error != "status 503" {
		t.Errorf("Error = %q, want %q", entry.Error, "status 503")
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	logger.Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("debug logged at INFO: %q", buf.String())
	}

	logger.SetLevel(LevelDebug)
	logger.Debug("shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLevel(DEBUG): %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"Error", LevelError, false},
		{"trace", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetrics_CounterAccessor(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("records.parsed")
	m.IncrCounter("records.parsed")

	if got := m.Counter("records.parsed"); got != 2 {
		t.Errorf("Counter() = %d, want 2", got)
	}
	if got := m.Counter("missing"); got != 0 {
		t.Errorf("Counter(missing) = %d, want 0", got)
	}
}

func TestSetDefault(t *testing.T) {
	previous := Default()
	defer SetDefault(previous)

	var buf bytes.Buffer
	SetDefault(New(LevelWarn, &buf))

	Info("dropped", nil)
	Warn("kept", Fields{"year": 1968})

	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Errorf("default logger output = %q", buf.String())
	}
}
