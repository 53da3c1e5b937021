package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client resolves coordinates to addresses through the Nominatim reverse
// endpoint. Nominatim requires an identifying User-Agent.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: "medassist-backend/1.0",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// ReverseGeocode returns the English display name for the coordinates, or an
// error when the location cannot be resolved.
func (c *Client) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocoding service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoding service error: %s", resp.Status)
	}

	var result reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Error != "" || result.DisplayName == "" {
		return "", errors.New("no address found for coordinates")
	}
	return result.DisplayName, nil
}
