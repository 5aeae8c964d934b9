package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-sphere-tracer/pkg/loaders"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Limits on request parameters
const (
	maxDimension = 2000
	maxSamples   = 10000
	maxDepth     = 1000
)

// Server handles web requests for the sphere tracer
type Server struct {
	port      int
	maxPixels int    // Largest width*height a single request may render
	scenesDir string // Directory searched for YAML scene files
}

// NewServer creates a new web server
func NewServer(port, maxPixels int, scenesDir string) *Server {
	return &Server{port: port, maxPixels: maxPixels, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene ID (e.g., "default" or "file:three-spheres")
	Width           int    `json:"width"`           // Image width
	Height          int    `json:"height"`          // Image height
	SamplesPerPixel int    `json:"samplesPerPixel"` // Samples per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum ray bounce depth
	Seed            int64  `json:"seed"`            // Random seed
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),

		ReadTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	glog.Infof("Starting web server on http://localhost%s", httpServer.Addr)
	return httpServer.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and discovered scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		glog.Errorf("Error while listing scenes: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list scenes")
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	sceneObj, err := s.createScene(sceneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneID,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": 1, "max": maxDimension},
			"height":          map[string]int{"min": 1, "max": maxDimension},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamples},
			"maxDepth":        map[string]int{"min": 1, "max": maxDepth},
			"pixels":          map[string]int{"max": s.maxPixels},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses request parameters, falling back to the scene's own settings
func (s *Server) parseRenderRequest(values url.Values, defaults scene.SamplingConfig) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaults.Width, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaults.Height, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", defaults.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", defaults.MaxDepth, 1, maxDepth); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	if req.Width*req.Height > s.maxPixels {
		return nil, fmt.Errorf("%dx%d exceeds the limit of %d pixels", req.Width, req.Height, s.maxPixels)
	}

	return req, nil
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

// createScene builds a built-in scene or loads "file:<name>" from the scenes directory
func (s *Server) createScene(sceneID string) (*scene.Scene, error) {
	if name, ok := strings.CutPrefix(sceneID, "file:"); ok {
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			return nil, fmt.Errorf("invalid scene file name %q", name)
		}
		return loaders.LoadScene(filepath.Join(s.scenesDir, name+".yaml"))
	}
	return scene.ByName(sceneID)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("Error while writing JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
