// Package mixcloud is a read-only client for the public Mixcloud API,
// used to list the artist's cloudcasts on the music page.
package mixcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.mixcloud.com"

	// cloudcastLimit matches the page size the site has always requested.
	cloudcastLimit = 50
)

// Cloudcast is a single published mix.
type Cloudcast struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	CreatedTime time.Time `json:"created_time"`
	AudioLength int       `json:"audio_length"`
	Pictures    struct {
		Medium string `json:"medium"`
		Large  string `json:"large"`
	} `json:"pictures"`
}

type cloudcastsResponse struct {
	Data []Cloudcast `json:"data"`
}

// Client fetches cloudcast listings for a single Mixcloud user.
type Client struct {
	baseURL    string
	user       string
	httpClient *http.Client
}

// NewClient creates a Mixcloud client. An empty baseURL selects the public API.
func NewClient(baseURL, user string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		user:    user,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Cloudcasts returns the user's most recent mixes, newest-first as the API
// serves them.
func (c *Client) Cloudcasts(ctx context.Context) ([]Cloudcast, error) {
	endpoint := fmt.Sprintf("%s/%s/cloudcasts/?limit=%d",
		c.baseURL, url.PathEscape(c.user), cloudcastLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build cloudcasts request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudcasts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudcasts request returned status %d", resp.StatusCode)
	}

	var parsed cloudcastsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode cloudcasts response: %w", err)
	}

	if parsed.Data == nil {
		return []Cloudcast{}, nil
	}
	return parsed.Data, nil
}
