package sdk

import (
	"collab-lab/errors"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteConfig is the project configuration served by the backend.
// Absent fields keep the values chosen by the host.
type RemoteConfig struct {
	Avatars           *bool `json:"avatars,omitempty"`
	Pointers          *bool `json:"pointers,omitempty"`
	RenderLocalAvatar *bool `json:"renderLocalAvatar,omitempty"`
	BufferSize        int   `json:"bufferSize,omitempty"`
	TimelineCapacity  int   `json:"timelineCapacity,omitempty"`
}

type ConfigFetcher interface {
	Fetch(ctx context.Context, apiKey string) (RemoteConfig, error)
}

// HTTPConfigFetcher reads the remote configuration as JSON with a GET request
// authenticated by the API key.
type HTTPConfigFetcher struct {
	client *http.Client
	url    string
}

func NewHTTPConfigFetcher(url string, timeout time.Duration) *HTTPConfigFetcher {
	return &HTTPConfigFetcher{client: &http.Client{Timeout: timeout}, url: url}
}

func (f *HTTPConfigFetcher) Fetch(ctx context.Context, apiKey string) (RemoteConfig, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return RemoteConfig{}, fmt.Errorf("%w: %v", errors.ErrConfigFetch, err)
	}
	request.Header.Set("Authorization", "Bearer "+apiKey)
	request.Header.Set("Accept", "application/json")

	response, err := f.client.Do(request)
	if err != nil {
		return RemoteConfig{}, fmt.Errorf("%w: %v", errors.ErrConfigFetch, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return RemoteConfig{}, fmt.Errorf("%w: unexpected status %d", errors.ErrConfigFetch, response.StatusCode)
	}
	var config RemoteConfig
	if err := json.NewDecoder(response.Body).Decode(&config); err != nil {
		return RemoteConfig{}, fmt.Errorf("%w: decode: %v", errors.ErrConfigFetch, err)
	}
	return config, nil
}
