// Package facematch wraps the external face-recognition service. Face match
// is a hard dependency of check-in/check-out: a timeout or error here aborts
// the operation, since identity cannot be assumed.
package facematch

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kiranastores/attendance-backend-go/internal/config"
)

var (
	// ErrNoMatch means the service answered but found no matching face.
	ErrNoMatch = errors.New("no matching face found")
)

// Match is a successful face-search result.
type Match struct {
	EmployeeID string  `json:"employee_id"`
	Confidence float64 `json:"confidence"`
}

// Client searches the face index for the employee in an image.
type Client interface {
	Search(ctx context.Context, image []byte) (Match, error)
}

type httpClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

func NewClient(cfg config.FaceMatchConfig) Client {
	return &httpClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		hc:      &http.Client{Timeout: cfg.Timeout},
	}
}

type searchRequest struct {
	Image string `json:"image"` // base64-encoded JPEG/PNG bytes
}

type searchResponse struct {
	Success    bool    `json:"success"`
	EmployeeID string  `json:"employee_id"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// Search implements Client.
func (c *httpClient) Search(ctx context.Context, image []byte) (Match, error) {
	body, err := json.Marshal(searchRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return Match{}, fmt.Errorf("failed to encode face search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/faces/search", bytes.NewReader(body))
	if err != nil {
		return Match{}, fmt.Errorf("failed to build face search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return Match{}, fmt.Errorf("face search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Match{}, ErrNoMatch
	}
	if resp.StatusCode != http.StatusOK {
		return Match{}, fmt.Errorf("face search returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Match{}, fmt.Errorf("failed to decode face search response: %w", err)
	}

	if !result.Success || result.EmployeeID == "" {
		return Match{}, ErrNoMatch
	}

	return Match{EmployeeID: result.EmployeeID, Confidence: result.Confidence}, nil
}
