package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"school-run-planner/internal/platform/obs"
	"school-run-planner/internal/ports"
)

// GoogleProvider implements JourneyTimeProvider using the Google
// Distance Matrix API.
//
// It coordinates:
//   - Address normalization
//   - An optional persistent journey cache
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type GoogleProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	mode         string
	trafficModel string
	cache        ports.JourneyCache
}

const statusOK = "OK"

// NewGoogleProvider builds a provider. cache may be nil, in which case
// every lookup goes to the API.
func NewGoogleProvider(apiKey string, cache ports.JourneyCache) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	provider := &GoogleProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://maps.googleapis.com",
		mode:         "driving",
		trafficModel: "best_guess",
		cache:        cache,
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *GoogleProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type durationValue struct {
	Value int `json:"value"` // seconds
}

type matrixElement struct {
	Status            string         `json:"status"`
	Duration          *durationValue `json:"duration"`
	DurationInTraffic *durationValue `json:"duration_in_traffic"`
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
}

// JourneyTime returns the estimated driving minutes between two
// addresses. A zero arrival requests a depart-now estimate with live
// traffic; a set arrival targets arriving by that time.
func (g *GoogleProvider) JourneyTime(
	ctx context.Context,
	origin string,
	destination string,
	arrival time.Time,
) (_ int, err error) {
	defer obs.Time(ctx, "maps.JourneyTime")(&err)

	normOrigin := g.normalize(origin)
	if normOrigin == "" {
		return 0, errors.New("get journey time: origin must be non-empty")
	}

	normDestination := g.normalize(destination)
	if normDestination == "" {
		return 0, errors.New("get journey time: destination must be non-empty")
	}

	// Check the persistent cache before issuing an external API call.
	if g.cache != nil {
		minutes, ok, err := g.cache.Get(ctx, normOrigin, normDestination, arrival)
		if err != nil {
			return 0, fmt.Errorf("get journey cache: %w", err)
		}
		if ok {
			return minutes, nil
		}
	}

	minutes, err := g.fetchJourneyTime(ctx, normOrigin, normDestination, arrival)
	if err != nil {
		return 0, fmt.Errorf(
			"fetch journey time %q -> %q: %w",
			normOrigin, normDestination, err,
		)
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, normOrigin, normDestination, arrival, minutes); err != nil {
			log.Printf("journey cache write failed: %v", err)
		}
	}

	return minutes, nil
}

// fetchJourneyTime calls the Distance Matrix endpoint for a single
// origin/destination pair and extracts the duration in whole minutes.
func (g *GoogleProvider) fetchJourneyTime(
	ctx context.Context,
	origin string,
	destination string,
	arrival time.Time,
) (int, error) {
	endpoint := g.baseURL + "/maps/api/distancematrix/json"

	buildRequest := func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}

		q := req.URL.Query()
		q.Set("origins", origin)
		q.Set("destinations", destination)
		q.Set("key", g.apiKey)
		q.Set("mode", g.mode)
		q.Set("traffic_model", g.trafficModel)
		if arrival.IsZero() {
			q.Set("departure_time", "now")
		} else {
			q.Set("arrival_time", strconv.FormatInt(arrival.Unix(), 10))
		}
		req.URL.RawQuery = q.Encode()

		return req, nil
	}

	resp, err := g.doWithRetry(ctx, buildRequest)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode matrix response: %w", err)
	}

	if decoded.Status != statusOK {
		return 0, fmt.Errorf("matrix response status %q", decoded.Status)
	}

	if len(decoded.Rows) == 0 || len(decoded.Rows[0].Elements) == 0 {
		return 0, errors.New("matrix response has no elements")
	}

	element := decoded.Rows[0].Elements[0]
	if element.Status != statusOK {
		return 0, fmt.Errorf("matrix element status %q", element.Status)
	}

	// Depart-now requests carry a live-traffic estimate; arrival-time
	// requests only populate the plain duration.
	duration := element.Duration
	if arrival.IsZero() && element.DurationInTraffic != nil {
		duration = element.DurationInTraffic
	}
	if duration == nil {
		return 0, errors.New("matrix element has no duration")
	}

	return duration.Value / 60, nil
}
