// Package airquality resolves an air-quality score for coordinates through an
// external index provider. Lookup failures are errors here; the ranking
// runner substitutes the neutral default instead of surfacing them.
package airquality

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider resolves a 1–10 air-quality score for a coordinate.
type Provider interface {
	Score(ctx context.Context, lat, lng float64) (float64, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type aqiResponse struct {
	AQI int `json:"aqi"`
}

// Score fetches the air-quality index for the coordinate and maps it onto
// the 1–10 scale.
func (c *HTTPClient) Score(ctx context.Context, lat, lng float64) (float64, error) {
	path := fmt.Sprintf("/v1/aqi?lat=%f&lng=%f", lat, lng)
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("airquality GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	var out aqiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("airquality decode: %w", err)
	}
	return ScoreForIndex(out.AQI), nil
}

// ScoreForIndex maps a US-style AQI value onto the engine's 1–10 scale.
func ScoreForIndex(aqi int) float64 {
	switch {
	case aqi <= 25:
		return 10
	case aqi <= 50:
		return 9
	case aqi <= 75:
		return 8
	case aqi <= 100:
		return 7
	case aqi <= 125:
		return 6
	case aqi <= 150:
		return 5
	case aqi <= 175:
		return 4
	case aqi <= 200:
		return 3
	case aqi <= 300:
		return 2
	default:
		return 1
	}
}
