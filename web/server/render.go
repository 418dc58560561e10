package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string                `json:"scene"`           // Scene ID (e.g., "glass")
	Mode            renderer.Mode         `json:"mode"`            // Render mode
	AntiAliasing    renderer.AntiAliasing `json:"antiAliasing"`    // Only for light3d
	Width           int                   `json:"width"`           // Image width, -1 for the scene default
	Height          int                   `json:"height"`          // Image height, -1 for the scene default
	SamplesPerPixel int                   `json:"samplesPerPixel"` // MSAA/SSAA samples, -1 for the scene default
	MaxDepth        int                   `json:"maxDepth"`        // Advanced recursion depth, -1 for the scene default
}

// RenderResult is the final SSE payload of a successful render
type RenderResult struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	LitPixels        int     `json:"litPixels"`
	Workers          int     `json:"workers"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// renderOutcome carries the result of a render goroutine back to the handler
type renderOutcome struct {
	img   *canvas.Image
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and streams console output, then the image, via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := scene.NewByID(req.Scene)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	// Use request context to detect client disconnection
	ctx := r.Context()
	consoleChan, webLogger := s.setupConsoleLogging()

	startTime := time.Now()
	done := make(chan renderOutcome, 1)
	go func() {
		img, stats, err := s.renderScene(ctx, sceneObj, req, webLogger)
		done <- renderOutcome{img: img, stats: stats, err: err}
	}()

	// Single writer: console messages and the outcome are sent from this goroutine
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)

		case outcome := <-done:
			s.drainConsole(w, consoleChan)
			if outcome.err != nil {
				s.sendSSEError(w, fmt.Sprintf("Render error: %v", outcome.err))
				return
			}
			if err := s.sendResult(w, outcome, time.Since(startTime)); err != nil {
				s.sendSSEError(w, err.Error())
				return
			}
			s.sendSSEEvent(w, "complete", "Rendering completed")
			return

		case <-ctx.Done():
			// Client disconnected; the render sees the same context and stops
			return
		}
	}
}

// renderScene runs one render for a request
func (s *Server) renderScene(ctx context.Context, sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) (*canvas.Image, renderer.RenderStats, error) {
	opts := renderer.Options{
		Mode:            req.Mode,
		AntiAliasing:    req.AntiAliasing,
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
	}
	return renderer.RenderScene(ctx, sceneObj, opts, s.config, logger)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultSceneName
	}

	var err error
	req.Mode = renderer.ModeLight3D
	if mode := query.Get("mode"); mode != "" {
		if req.Mode, err = renderer.ParseMode(mode); err != nil {
			return nil, err
		}
	}
	if aa := query.Get("aa"); aa != "" {
		if req.AntiAliasing, err = renderer.ParseAntiAliasing(aa); err != nil {
			return nil, err
		}
	}

	if req.Width, err = parseIntParam(query, "width", renderer.SceneDefault, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", renderer.SceneDefault, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "samples", renderer.SceneDefault, 0, maxSamplesPerPixel); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", renderer.SceneDefault, 0, maxRecursionDepth); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > largeRenderWarnPixels && req.SamplesPerPixel > largeRenderWarnSamples {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
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
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// drainConsole sends console messages still buffered when a render finishes
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

// sendResult encodes the image and sends it with the render statistics
func (s *Server) sendResult(w http.ResponseWriter, outcome renderOutcome, elapsed time.Duration) error {
	imageData, err := imageToBase64PNG(outcome.img)
	if err != nil {
		return fmt.Errorf("failed to encode image: %v", err)
	}

	result := RenderResult{
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:      outcome.stats.TotalPixels,
			TotalSamples:     outcome.stats.TotalSamples,
			LitPixels:        outcome.stats.LitPixels,
			Workers:          outcome.stats.Workers,
			AverageLuminance: outcome.stats.AverageLuminance,
		},
		ElapsedMs: elapsed.Milliseconds(),
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "result", string(data))
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *canvas.Image) (string, error) {
	var buf bytes.Buffer
	if err := canvas.Encode(&buf, img, canvas.FormatPNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
