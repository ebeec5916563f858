package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goscha01/SiteForge/internal/catalog"
	"github.com/goscha01/SiteForge/internal/pipeline"
)

// RedesignRequest is the request body for both redesign endpoints.
type RedesignRequest struct {
	URL           string `json:"url" validate:"required,url"`
	Style         string `json:"style,omitempty" validate:"omitempty,oneof=modern-trust warm-studio dark-tech editorial-calm"`
	Blueprint     string `json:"blueprint,omitempty"`
	Signature     string `json:"signature,omitempty"`
	QA            bool   `json:"qa,omitempty"`
	CompareStyles bool   `json:"compareStyles,omitempty"`
}

// RedesignResponse is the buffered endpoint's response body.
type RedesignResponse struct {
	RunID    string                   `json:"runId"`
	Style    string                   `json:"style"`
	HTML     string                   `json:"html"`
	Manifest any                      `json:"manifest"`
	Score    any                      `json:"score"`
	Warnings []string                 `json:"warnings,omitempty"`
	QA       any                      `json:"qa,omitempty"`
	Events   []pipeline.ProgressEvent `json:"events"`
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseRedesignRequest decodes and validates the request body, translating
// validator failures into field-level messages.
func (s *Server) parseRedesignRequest(r *http.Request) (*RedesignRequest, []string) {
	var req RedesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, []string{"invalid JSON body: " + err.Error()}
	}

	if err := s.validate.Struct(&req); err != nil {
		var messages []string
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				switch fe.Tag() {
				case "required":
					messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
				case "url":
					messages = append(messages, fmt.Sprintf("%s must be a valid URL", fe.Field()))
				case "oneof":
					messages = append(messages, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
				default:
					messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
				}
			}
		} else {
			messages = append(messages, err.Error())
		}
		return nil, messages
	}

	if req.Signature != "" && !catalog.ValidSignature(catalog.Signature(req.Signature)) {
		return nil, []string{"Signature must be one of the known signatures"}
	}
	if req.Blueprint != "" {
		if _, ok := catalog.Blueprint(req.Blueprint); !ok {
			return nil, []string{"Blueprint must be one of the known blueprints"}
		}
	}

	return &req, nil
}

func (s *Server) pipelineOptions(req *RedesignRequest) pipeline.Options {
	return pipeline.Options{
		URL:             req.URL,
		StylePreset:     req.Style,
		Blueprint:       req.Blueprint,
		Signature:       catalog.Signature(req.Signature),
		RunQA:           req.QA,
		CompareStyles:   req.CompareStyles,
		QAMaxIterations: s.cfg.QAMaxIterations,
		Verbose:         s.cfg.Verbose,
		DatabaseURL:     s.cfg.DatabaseURL,
		Client:          s.client,
		Browser:         s.browser,
	}
}

// handleRedesign runs the pipeline synchronously and responds with the full
// result once, progress events included.
func (s *Server) handleRedesign(w http.ResponseWriter, r *http.Request) {
	req, problems := s.parseRedesignRequest(r)
	if problems != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: problems})
		return
	}

	var events []pipeline.ProgressEvent
	opts := s.pipelineOptions(req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		events = append(events, event)
	}

	result, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: []string{err.Error()}})
		return
	}

	resp := RedesignResponse{
		RunID:    result.RunID,
		Style:    result.StylePreset,
		HTML:     result.HTML,
		Manifest: result.Manifest,
		Score:    result.Score,
		Warnings: result.Warnings,
		Events:   events,
	}
	if result.QA != nil {
		resp.QA = map[string]any{
			"outcome":  result.QA.Outcome,
			"critique": result.QA.Critique,
			"applied":  result.QA.AppliedCount,
			"diff":     result.QA.Diff,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRedesignStream runs the pipeline and streams progress as NDJSON: one
// JSON object per line, flushed per event, in causal order, ending with the
// single terminal event.
func (s *Server) handleRedesignStream(w http.ResponseWriter, r *http.Request) {
	req, problems := s.parseRedesignRequest(r)
	if problems != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: problems})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: []string{"streaming not supported"}})
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(w)
	var mu sync.Mutex

	opts := s.pipelineOptions(req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		if err := encoder.Encode(event); err != nil {
			log.Printf("[SERVER] Failed to write stream event: %v", err)
			return
		}
		flusher.Flush()
	}

	// Errors were already reported through the terminal error event; the
	// stream has nothing further to say.
	if _, err := pipeline.Run(r.Context(), opts); err != nil {
		log.Printf("[SERVER] Streamed run failed: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[SERVER] Failed to write response: %v", err)
	}
}
