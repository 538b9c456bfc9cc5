package routing

import (
	"eld-log-service/internal/ports"
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultORSBaseURL = "https://api.openrouteservice.org"
	DefaultORSProfile = "driving-hgv"
)

// ORSClient implements Geocoder and LegRouter using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type ORSClient struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	geocodeCache ports.GeocodeCache
}

func NewORSClient(
	apiKey string,
	baseURL string,
	profile string,
	geocodeCache ports.GeocodeCache,
) (*ORSClient, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultORSBaseURL
	}
	if profile == "" {
		profile = DefaultORSProfile
	}

	client := &ORSClient{
		session:      &http.Client{Timeout: 15 * time.Second},
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		profile:      profile,
		geocodeCache: geocodeCache,
	}

	return client, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
