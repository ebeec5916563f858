package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *Server {
	return &Server{
		cfg:      Config{Port: 8080, QAMaxIterations: 1},
		validate: validator.New(),
	}
}

func postBody(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/redesign", strings.NewReader(body))
}

func TestParseRedesignRequest_Valid(t *testing.T) {
	s := testServer()

	req, problems := s.parseRedesignRequest(postBody(`{
		"url": "https://acmeplumbing.example",
		"style": "warm-studio",
		"blueprint": "proof-heavy",
		"signature": "dark-neon",
		"qa": true
	}`))

	require.Nil(t, problems)
	assert.Equal(t, "https://acmeplumbing.example", req.URL)
	assert.Equal(t, "warm-studio", req.Style)
	assert.True(t, req.QA)
}

func TestParseRedesignRequest_MissingURL(t *testing.T) {
	s := testServer()

	_, problems := s.parseRedesignRequest(postBody(`{}`))

	require.Len(t, problems, 1)
	assert.Equal(t, "URL is required", problems[0])
}

func TestParseRedesignRequest_MalformedURL(t *testing.T) {
	s := testServer()

	_, problems := s.parseRedesignRequest(postBody(`{"url": "not a url"}`))

	require.Len(t, problems, 1)
	assert.Equal(t, "URL must be a valid URL", problems[0])
}

func TestParseRedesignRequest_UnknownStyle(t *testing.T) {
	s := testServer()

	_, problems := s.parseRedesignRequest(postBody(`{"url": "https://example.com", "style": "vaporwave"}`))

	require.Len(t, problems, 1)
	assert.Equal(t, "Style must be one of: modern-trust warm-studio dark-tech editorial-calm", problems[0])
}

func TestParseRedesignRequest_UnknownSignature(t *testing.T) {
	s := testServer()

	_, problems := s.parseRedesignRequest(postBody(`{"url": "https://example.com", "signature": "glitter"}`))

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "Signature")
}

func TestParseRedesignRequest_UnknownBlueprint(t *testing.T) {
	s := testServer()

	_, problems := s.parseRedesignRequest(postBody(`{"url": "https://example.com", "blueprint": "skyscraper"}`))

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "Blueprint")
}

func TestParseRedesignRequest_InvalidJSON(t *testing.T) {
	s := testServer()

	_, problems := s.parseRedesignRequest(postBody(`{"url":`))

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "invalid JSON body")
}

func TestHandleRedesign_BadRequestBody(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()

	s.handleRedesign(rec, postBody(`{"url": ""}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"URL is required"}, resp.Errors)
}

func TestHandleRedesignStream_BadRequestBody(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()

	s.handleRedesignStream(rec, httptest.NewRequest(http.MethodPost, "/redesign/stream", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()

	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
