package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"jyotish-chart/src/helpers"
	"jyotish-chart/src/logger"
)

const userAgent = "jyotish-chart/1.0"

type NetworkManager struct {
	Client     *http.Client
	MaxRetries int
	BaseDelay  time.Duration
	Logger     *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(timeout time.Duration, maxRetries int, log *logger.Logger) *NetworkManager {
	return &NetworkManager{
		Client:     &http.Client{Timeout: timeout},
		MaxRetries: maxRetries,
		BaseDelay:  500 * time.Millisecond,
		Logger:     log,
	}
}

// -----------------------------------------------------------------------------

// Get performs a GET request with retries and exponential backoff. Status
// codes other than 200 count as failed attempts.
func (nm *NetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	q := reqUrl.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	reqUrl.RawQuery = q.Encode()
	finalUrl := reqUrl.String()

	return helpers.RetryWithBackoff(ctx, "GET "+reqUrl.Path, nm.MaxRetries, nm.BaseDelay, nm.Logger, func() ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nm.do(ctx, finalUrl)
	})
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) do(ctx context.Context, finalUrl string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := nm.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
