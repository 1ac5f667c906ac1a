package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/safeeat/backend/internal/domain"
)

// DefaultBaseURL is the product endpoint of the public Open Food Facts API
const DefaultBaseURL = "https://world.openfoodfacts.org/api/v0/product"

// maxBodySize caps how much of a response is read
const maxBodySize = 4 << 20

// Options configures a Client
type Options struct {
	BaseURL string
	// RequestsPerMinute limits product reads; Open Food Facts asks for at most 100
	RequestsPerMinute int
	Timeout           time.Duration
	UserAgent         string
}

// Client handles communication with the Open Food Facts product API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	debug       bool
	log         *logrus.Entry
}

// NewClient creates a new Open Food Facts client
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	perMinute := opts.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 100
	}
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 5)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "SafeEat/1.0"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: limiter,
		log:         logrus.WithField("component", "openfoodfacts"),
	}
}

// SetDebug enables logging of raw response bodies
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}

	return resp, nil
}

// FetchProduct retrieves the product registered under barcode.
// There is no retry; a failed lookup is re-initiated by the user.
func (c *Client) FetchProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	log := c.log.WithField("barcode", barcode)
	log.Debug("fetching product")

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrNetwork, err)
	}

	reqURL := fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(barcode))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrNetwork, err)
	}

	if c.debug {
		log.WithField("status", resp.StatusCode).Debugf("response body: %s", truncate(string(body), 512))
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("unexpected status")
		return nil, fmt.Errorf("%w: status %d", domain.ErrNetwork, resp.StatusCode)
	}

	var envelope domain.ProductResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrNetwork, err)
	}

	product, err := MapToProduct(&envelope, barcode)
	if err != nil {
		log.Info("product not found")
		return nil, err
	}

	log.WithField("product", product.DisplayName()).Info("product found")
	return product, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
