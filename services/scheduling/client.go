package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"citaflow/utils"

	"go.uber.org/zap"
)

// Client is the read-only view of the scheduling API the engine depends on.
// The API owns the real capacity counters; everything returned here is a
// possibly-stale mirror.
type Client interface {
	// AvailableSchedules returns the raw template/slot payload for one
	// (sede, modality, date) combination.
	AvailableSchedules(ctx context.Context, sedeID, modalityID, date string) ([]SchedulePayload, error)
	// AvailableSedes returns the sedes offering the given modality.
	AvailableSedes(ctx context.Context, modalityID string) ([]SedePayload, error)
}

// HTTPClient implements Client over the scheduling API's REST surface.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	// CityID scopes available-sedes lookups to the city this deployment
	// serves. Empty means unscoped.
	CityID string
}

// NewHTTPClient builds a client with a caller-imposed timeout. Timeouts
// surface as *NetworkError like any other transport failure.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) AvailableSchedules(ctx context.Context, sedeID, modalityID, date string) ([]SchedulePayload, error) {
	query := url.Values{}
	query.Set("sedeId", sedeID)
	query.Set("modalityId", modalityID)
	query.Set("date", date)

	var payload schedulesResponse
	if err := c.getJSON(ctx, "schedules/available", query, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (c *HTTPClient) AvailableSedes(ctx context.Context, modalityID string) ([]SedePayload, error) {
	query := url.Values{}
	query.Set("modalityId", modalityID)
	if c.CityID != "" {
		query.Set("cityId", c.CityID)
	}

	var payload sedesResponse
	if err := c.getJSON(ctx, "available-sedes", query, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	logger := utils.GetLogger()
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &NetworkError{Op: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("scheduling api request failed", zap.String("path", path), zap.Error(err))
		return &NetworkError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("scheduling api returned non-success status",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &NetworkError{Op: path, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
