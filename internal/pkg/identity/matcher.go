package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrMatcherNotConfigured is returned when no face matching service is wired in.
var ErrMatcherNotConfigured = errors.New("identity matcher is not configured")

// Match is the outcome of comparing a captured image against enrolled faces.
type Match struct {
	Recognized bool
	PersonID   string
	Confidence float64
}

// Matcher resolves a captured image to a known person.
type Matcher interface {
	Match(ctx context.Context, image []byte, filename string) (Match, error)
}

// HTTPMatcher calls an external face-recognition service that accepts a multipart
// "image" upload and answers {"recognized": bool, "person_id": string, "confidence": float}.
type HTTPMatcher struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPMatcher returns nil when endpoint is empty.
func NewHTTPMatcher(endpoint string, timeout time.Duration) *HTTPMatcher {
	if strings.TrimSpace(endpoint) == "" {
		return nil
	}
	return &HTTPMatcher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type matchResponse struct {
	Recognized bool    `json:"recognized"`
	PersonID   string  `json:"person_id"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message,omitempty"`
}

// Match implements Matcher.
func (m *HTTPMatcher) Match(ctx context.Context, image []byte, filename string) (Match, error) {
	if m == nil {
		return Match{}, ErrMatcherNotConfigured
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return Match{}, fmt.Errorf("failed to build match request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return Match{}, fmt.Errorf("failed to build match request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Match{}, fmt.Errorf("failed to build match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, &body)
	if err != nil {
		return Match{}, fmt.Errorf("failed to build match request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return Match{}, fmt.Errorf("identity matcher request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Match{}, fmt.Errorf("identity matcher returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var decoded matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Match{}, fmt.Errorf("failed to decode identity matcher response: %w", err)
	}

	return Match{
		Recognized: decoded.Recognized && decoded.PersonID != "",
		PersonID:   decoded.PersonID,
		Confidence: decoded.Confidence,
	}, nil
}
