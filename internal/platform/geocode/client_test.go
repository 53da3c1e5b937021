package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "12.97", r.URL.Query().Get("lat"))
		assert.Equal(t, "77.59", r.URL.Query().Get("lon"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		_ = json.NewEncoder(w).Encode(reverseResponse{
			DisplayName: "Bengaluru, Karnataka, India",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	address, err := client.ReverseGeocode(context.Background(), 12.97, 77.59)
	require.NoError(t, err)
	assert.Equal(t, "Bengaluru, Karnataka, India", address)
}

func TestReverseGeocode_NoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(reverseResponse{Error: "Unable to geocode"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.ReverseGeocode(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestReverseGeocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.ReverseGeocode(context.Background(), 12.97, 77.59)
	assert.Error(t, err)
}
