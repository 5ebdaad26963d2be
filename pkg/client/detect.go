package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/downlabs/citydash/pkg/models"
)

// Detect uploads one image to the parking service and returns the
// detection result. The service reports soft failures (unreadable image,
// no plate found) inside a 200 body; those come back as *APIError.
func (c *Client) Detect(ctx context.Context, filename string, image io.Reader) (*models.DetectionResult, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.parking+"/process", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach parking service: %w", err)
	}
	defer resp.Body.Close()

	var result models.DetectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return nil, &APIError{Message: result.Error}
	}
	return &result, nil
}

// DetectFile is Detect reading the image from a local path. Open errors
// are returned unwrapped of transport context so callers can tell a bad
// path from a dead backend.
func (c *Client) DetectFile(ctx context.Context, path string) (*models.DetectionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Detect(ctx, path, f)
}
