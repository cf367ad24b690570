package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderComplete is the payload of the final event of a render
type RenderComplete struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ImageData    string `json:"imageData"` // Base64 encoded PNG
	TotalPixels  int    `json:"totalPixels"`
	TotalSamples int    `json:"totalSamples"`
	ElapsedMs    int64  `json:"elapsedMs"`
}

// contextSink collects pixels in memory and stops the render once the client is gone
type contextSink struct {
	ctx context.Context
	*renderer.ImageSink
}

func (s contextSink) WritePixel(c color.RGBA) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	return s.ImageSink.WritePixel(c)
}

// handleRender renders a scene and streams progress and the final image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Every event goes through one writer goroutine
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, camera, err := s.createScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	raytracer := renderer.NewRaytracer(camera, sceneObj.World(), renderer.RenderConfig{Seed: req.Seed}, webLogger)
	sink := contextSink{ctx: ctx, ImageSink: renderer.NewImageSink()}
	stats, renderErr := raytracer.Render(sink)

	// Drain console messages before the final event
	close(consoleChan)
	<-consoleDone

	if renderErr != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", renderErr))
		return
	}

	imageData, err := s.imageToBase64PNG(sink.Image)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(RenderComplete{
		Width:        camera.Width(),
		Height:       camera.Height(),
		ImageData:    imageData,
		TotalPixels:  stats.TotalPixels,
		TotalSamples: stats.TotalSamples,
		ElapsedMs:    stats.Duration.Milliseconds(),
	})
	if err != nil {
		log.Printf("Error marshaling render result: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for event := range sseEventChan {
		// Keep draining after a disconnect so senders never block
		if ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until the channel is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
