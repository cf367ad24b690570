package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, scenesDir: "scenes"}
}

// RenderRequest represents the scene and camera parameters shared by render and inspect requests
type RenderRequest struct {
	Scene           string `json:"scene"`           // Built-in scene name
	Width           int    `json:"width"`           // Image width, 0 keeps the scene default
	SamplesPerPixel int    `json:"samplesPerPixel"` // 0 keeps the scene default
	MaxDepth        int    `json:"maxDepth"`        // 0 keeps the scene default
	Seed            int64  `json:"seed"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the scenes that can be rendered
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// Scene files are listed but only built-ins can be requested over HTTP
	type sceneEntry struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}
	response := make([]sceneEntry, 0, len(scenes))
	for _, info := range scenes {
		if info.Type != "builtin" {
			continue
		}
		response = append(response, sceneEntry{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Type:        info.Type,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene selection and camera overrides
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, 2000); err != nil {
		return err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "samples", 0, 1, 10000); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 0, 0, 1000); err != nil {
		return err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("invalid seed: %s", value)
		}
	} else {
		req.Seed = 1
	}

	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene creates the requested built-in scene and its camera
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, *renderer.Camera, error) {
	sceneObj, err := scene.NewScene(req.Scene, req.Seed)
	if err != nil {
		return nil, nil, err
	}

	camera, err := sceneObj.Camera(renderer.CameraConfig{
		Width:           req.Width,
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
	})
	if err != nil {
		return nil, nil, err
	}

	return sceneObj, camera, nil
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(value)
}
