// Package facecompare talks to the face verification server. The server
// loads its embedding model once at startup; this client sends it pairs of
// image files and relays the same-person verdict.
package facecompare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sudhanthirapriya/face-recognition-project/internal/api/metrics"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/ports"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultModel   = "VGG-Face"
	defaultTimeout = 30 * time.Second
)

// Client implements ports.FaceComparator against an HTTP verification server.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewClient validates baseURL and returns a ready client. Empty arguments
// fall back to defaults.
func NewClient(baseURL, model string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid face server URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid face server URL scheme %q: must be http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("invalid face server URL: missing host")
	}

	return &Client{
		baseURL: parsed.String(),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// verifyResponse is the verification server's answer for one image pair.
type verifyResponse struct {
	Verified  bool    `json:"verified"`
	Distance  float64 `json:"distance"`
	Threshold float64 `json:"threshold"`
	Model     string  `json:"model"`
}

// Verify posts both images to the server and returns its verdict. Transport
// failures, non-200 answers and unreadable files all surface as errors; the
// enrollment pipeline downgrades them to "no match for this pair".
func (c *Client) Verify(ctx context.Context, imagePathA, imagePathB string) (ports.Verification, error) {
	body, contentType, err := c.buildForm(imagePathA, imagePathB)
	if err != nil {
		metrics.ComparatorChecksTotal.WithLabelValues("error").Inc()
		return ports.Verification{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", body)
	if err != nil {
		metrics.ComparatorChecksTotal.WithLabelValues("error").Inc()
		return ports.Verification{}, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ComparatorChecksTotal.WithLabelValues("error").Inc()
		return ports.Verification{}, fmt.Errorf("verify request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ComparatorChecksTotal.WithLabelValues("error").Inc()
		return ports.Verification{}, fmt.Errorf("read verify response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ComparatorChecksTotal.WithLabelValues("error").Inc()
		return ports.Verification{}, fmt.Errorf("face server error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var vr verifyResponse
	if err := json.Unmarshal(raw, &vr); err != nil {
		metrics.ComparatorChecksTotal.WithLabelValues("error").Inc()
		return ports.Verification{}, fmt.Errorf("decode verify response: %w", err)
	}

	if vr.Verified {
		metrics.ComparatorChecksTotal.WithLabelValues("match").Inc()
	} else {
		metrics.ComparatorChecksTotal.WithLabelValues("no_match").Inc()
	}

	return ports.Verification{Verified: vr.Verified, Score: vr.Distance}, nil
}

// buildForm assembles the multipart body: two image files plus the model name.
func (c *Client) buildForm(imagePathA, imagePathB string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, path := range map[string]string{"img1": imagePathA, "img2": imagePathB} {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read %s image: %w", field, err)
		}
		part, err := writer.CreateFormFile(field, "image.jpg")
		if err != nil {
			return nil, "", fmt.Errorf("create %s form part: %w", field, err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("write %s form part: %w", field, err)
		}
	}

	if err := writer.WriteField("model", c.model); err != nil {
		return nil, "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
