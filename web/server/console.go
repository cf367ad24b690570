package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger. Carriage-return progress lines are sent
// as separate trimmed messages; only other lines reach the server log.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	raw := fmt.Sprintf(format, args...)
	message := strings.TrimSpace(raw)
	if message == "" {
		return
	}

	if !strings.HasPrefix(raw, "\r") {
		log.Printf("[%s] %s", wl.renderID, message)
	}

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}
