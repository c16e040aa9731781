// Package quote fetches a random motivational quote for the home view.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"habitchain/internal/model"
	"habitchain/internal/remote"
)

// Client is a thin HTTP client for the quote API. The provider returns a
// JSON list of {q, a} objects.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a quote client for the given API root URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// quoteEntry is one element of the provider's response list.
type quoteEntry struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Random fetches a single random quote. An empty provider result is an
// error; callers degrade to a placeholder quote instead of blocking.
func (c *Client) Random(ctx context.Context) (model.Quote, error) {
	url := c.baseURL + "/api/random"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Quote{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Quote{}, &remote.NetworkError{Service: "quotes", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Quote{}, &remote.NetworkError{Service: "quotes", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Quote{}, &remote.NetworkError{
			Service: "quotes",
			Err:     fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var entries []quoteEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return model.Quote{}, fmt.Errorf("decoding quote response: %w", err)
	}
	if len(entries) == 0 {
		return model.Quote{}, fmt.Errorf("quote provider returned no quotes")
	}

	return model.Quote{Text: entries[0].Q, Author: entries[0].A}, nil
}
