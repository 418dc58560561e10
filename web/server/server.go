package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Limits on request parameters
const (
	minSize, maxSize       = 1, 2000
	maxSamplesPerPixel     = 256
	maxRecursionDepth      = 32
	defaultSceneName       = "default"
	largeRenderWarnPixels  = 800 * 600
	largeRenderWarnSamples = 16
)

// Server handles web requests for the raytracer
type Server struct {
	port   int
	config renderer.Config
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, config: renderer.DefaultConfig()}
}

// SetWorkers sets the number of parallel workers per render, 0 for one per CPU
func (s *Server) SetWorkers(workers int) {
	s.config.Workers = workers
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
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

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultSceneName
	}

	sceneObj, err := scene.NewByID(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	modes := make([]string, 0, len(renderer.Modes()))
	for _, m := range renderer.Modes() {
		modes = append(modes, m.String())
	}

	config := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"aspectRatio":  sceneObj.Camera.AspectRatio(),
		"modes":        modes,
		"antiAliasing": []string{"none", "msaa", "ssaa", "fxaa"},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minSize, "max": maxSize},
			"height":          map[string]int{"min": minSize, "max": maxSize},
			"samplesPerPixel": map[string]int{"min": 0, "max": maxSamplesPerPixel},
			"maxDepth":        map[string]int{"min": 0, "max": maxRecursionDepth},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
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
