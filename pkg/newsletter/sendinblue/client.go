// Package sendinblue talks to the Brevo (formerly Sendinblue) v3 API and
// adapts it to the newsletter.Provider contract.
package sendinblue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const DefaultBaseURL = "https://api.brevo.com/v3"

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Configuration carries the credentials shared by every API client.
type Configuration struct {
	APIKey  string
	BaseURL string
}

func (c Configuration) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

type client struct {
	httpClient HTTPDoer
	config     Configuration
}

// do sends body as JSON and decodes a 2xx response into out when out is not
// nil and the response has a body. It returns the response status code.
func (c *client) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request failed: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.baseURL()+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("create request failed: %w", err)
	}

	req.Header.Set("api-key", c.config.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, newAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response failed: %w", err)
		}
	}

	return resp.StatusCode, nil
}
