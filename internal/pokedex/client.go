package pokedex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/spec-kit/pokewiki/pkg/util"
)

// Client fetches display content from the public Pokémon API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a client for the given API root.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Pokemon fetches the raw JSON document for a pokémon by name or id.
func (c *Client) Pokemon(ctx context.Context, name string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/pokemon/%s", c.baseURL, url.PathEscape(strings.ToLower(name)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFound("pokemon")
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("pokedex upstream returned %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}
