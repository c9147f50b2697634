package records

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/greenloop/kerbside/internal/common"
	"github.com/greenloop/kerbside/internal/model"
)

// DefaultBaseURL is the Ballarat open-data catalog.
const DefaultBaseURL = "https://data.ballarat.vic.gov.au"

const datasetPath = "/api/explore/v2.1/catalog/datasets/waste-collection-days/records"

// Client queries the waste-collection-days dataset.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	retryOpts  common.RetryOptions
}

// NewClient creates a records client. An empty baseURL uses the live
// open-data service.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		retryOpts: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     10 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// recordsResponse is the dataset's paging envelope.
type recordsResponse struct {
	Results    []Record `json:"results"`
	TotalCount int      `json:"total_count"`
}

// FetchByAddress returns the raw records matching an address. Transient
// transport failures are retried with backoff; an empty result set is
// reported as common.ErrNoCollectionData.
func (c *Client) FetchByAddress(ctx context.Context, address string) ([]Record, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	query := url.Values{}
	query.Set("where", fmt.Sprintf("address like %q", address))
	query.Set("limit", "20")
	endpoint := c.baseURL + datasetPath + "?" + query.Encode()

	var records []Record
	err := common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return &common.RetryableError{Err: fmt.Errorf("failed to create request: %w", err), Retryable: false}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &common.RetryableError{Err: fmt.Errorf("request failed: %w", err), Retryable: true}
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &common.RetryableError{Err: fmt.Errorf("failed to read response: %w", err), Retryable: true}
		}

		if resp.StatusCode != http.StatusOK {
			// Server-side trouble is worth retrying; anything else is not.
			retryable := resp.StatusCode >= http.StatusInternalServerError
			return &common.RetryableError{
				Err:       fmt.Errorf("collection data service returned status %d: %s", resp.StatusCode, string(body)),
				Retryable: retryable,
			}
		}

		var response recordsResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return &common.RetryableError{Err: fmt.Errorf("failed to decode records: %w", err), Retryable: false}
		}

		records = response.Results
		return nil
	}, c.retryOpts)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched collection records", "address", address, "count", len(records))

	if len(records) == 0 {
		return nil, common.ErrNoCollectionData
	}
	return records, nil
}

// StreamsForAddress fetches the address's records and maps them to streams.
// When the query matches several properties the first record wins; the
// dataset is expected to hold one canonical row per address.
func (c *Client) StreamsForAddress(ctx context.Context, address string) ([]model.CollectionStream, error) {
	matched, err := c.FetchByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	if len(matched) > 1 {
		c.logger.Debug("multiple records matched address, using first",
			"address", address,
			"matches", len(matched))
	}

	streams := matched[0].Streams(c.logger)
	if len(streams) == 0 {
		return nil, common.ErrNoCollectionData
	}
	return streams, nil
}
