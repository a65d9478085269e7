// Package carbon looks up grid carbon intensity from Electricity Maps with
// a static regional fallback table.
package carbon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.electricitymap.org/v3/carbon-intensity/latest"

// GlobalAverageIntensity is used for zones not in the fallback table,
// in gCO2eq/kWh.
const GlobalAverageIntensity = 475.0

// fallbackIntensities holds regional grid averages in gCO2eq/kWh, used when
// the live lookup is unavailable.
var fallbackIntensities = map[string]float64{
	"US-CAL-CISO": 200.0,
	"US":          400.0,
	"US-EAST":     450.0,
	"US-WEST":     250.0,
	"GB":          220.0,
	"FR":          60.0,
	"DE":          380.0,
	"CN":          550.0,
	"IN":          630.0,
	"AU":          510.0,
	"EU":          250.0,
}

// FallbackIntensity returns the static regional average for zone, or the
// global average for unknown zones.
func FallbackIntensity(zone string) float64 {
	if v, ok := fallbackIntensities[zone]; ok {
		return v
	}
	return GlobalAverageIntensity
}

// Client fetches real-time carbon intensity. All failures degrade to the
// fallback table; Intensity never returns an error.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the Electricity Maps endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient creates a lookup client. An empty apiKey means every lookup
// uses the fallback table without a network call.
func NewClient(apiKey string, timeout time.Duration, log *zap.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type intensityResponse struct {
	CarbonIntensity *float64 `json:"carbonIntensity"`
}

// Intensity returns the grid carbon intensity for zone in gCO2eq/kWh. On
// any lookup failure it falls back to the static table, one shot, no retry.
func (c *Client) Intensity(ctx context.Context, zone string) float64 {
	if c.apiKey == "" {
		return FallbackIntensity(zone)
	}

	v, err := c.fetch(ctx, zone)
	if err != nil {
		c.log.Debug("carbon intensity lookup failed, using fallback",
			zap.String("zone", zone), zap.Error(err))
		return FallbackIntensity(zone)
	}
	return v
}

func (c *Client) fetch(ctx context.Context, zone string) (float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("parsing endpoint: %w", err)
	}
	q := u.Query()
	q.Set("zone", zone)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("auth-token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("requesting carbon intensity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("carbon intensity lookup: status %d", resp.StatusCode)
	}

	var body intensityResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding carbon intensity response: %w", err)
	}
	if body.CarbonIntensity == nil {
		return 0, fmt.Errorf("carbon intensity missing from response")
	}
	return *body.CarbonIntensity, nil
}
