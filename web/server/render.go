package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// handleRender renders a scene and responds with a PNG image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("go-sphere-tracer/web/server")
	var span trace.Span
	ctx := r.Context()
	ctx, span = tracer.Start(ctx, "Server.handleRender")
	defer span.End()

	query := r.URL.Query()
	sceneID := query.Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}
	span.SetAttributes(attribute.String("scene", sceneID))

	sceneObj, err := s.createScene(sceneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := s.parseRenderRequest(query, sceneObj.SamplingConfig)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	req.Scene = sceneID

	sceneObj.SamplingConfig.Width = req.Width
	sceneObj.SamplingConfig.Height = req.Height
	sceneObj.SamplingConfig.SamplesPerPixel = req.SamplesPerPixel
	sceneObj.SamplingConfig.MaxDepth = req.MaxDepth

	logger := NewWebLogger(nextRenderID())
	raytracer, err := renderer.NewRaytracer(sceneObj, renderer.RenderConfig{Seed: req.Seed}, logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The request context aborts the render when the client disconnects
	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Printf("Render abandoned: %v", err)
			return
		}
		glog.Errorf("Error while rendering %s: %v", sceneID, err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	var buf bytes.Buffer
	if err := output.WritePNG(&buf, frame); err != nil {
		glog.Errorf("Error while encoding %s: %v", sceneID, err)
		writeError(w, http.StatusInternalServerError, "encoding failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Printf("Error while writing response: %v", err)
	}
}
