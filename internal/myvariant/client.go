// Package myvariant provides a client for the myvariant.info batch
// annotation endpoint.
package myvariant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
)

// DefaultEndpoint is the batch variant query endpoint.
const DefaultEndpoint = "http://myvariant.info/v1/variant"

// DefaultFields are the data sources requested for every variant.
var DefaultFields = []string{"cadd", "dbsnp", "snpeff", "mutdb", "clinvar", "dbnsfp"}

// Client posts batched variant queries to myvariant.info.
type Client struct {
	endpoint        string
	fields          []string
	hg38            bool
	httpClient      *http.Client
	initialInterval time.Duration
	maxElapsed      time.Duration
	logger          *zap.Logger
}

// NewClient creates a client for the given endpoint.
// An empty endpoint selects DefaultEndpoint.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		endpoint: endpoint,
		fields:   DefaultFields,
		hg38:     true,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		initialInterval: 500 * time.Millisecond,
		maxElapsed:      2 * time.Minute,
		logger:          zap.NewNop(),
	}
}

// SetFields sets the data sources requested from the service.
// An empty list leaves the field selection to the service.
func (c *Client) SetFields(fields []string) {
	c.fields = fields
}

// SetHG38 selects GRCh38 coordinates (true) or GRCh37 (false).
func (c *Client) SetHG38(hg38 bool) {
	c.hg38 = hg38
}

// SetTimeout sets the per-attempt HTTP timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetRetry configures the exponential backoff between attempts.
// A maxElapsed of zero disables retries.
func (c *Client) SetRetry(initialInterval, maxElapsed time.Duration) {
	c.initialInterval = initialInterval
	c.maxElapsed = maxElapsed
}

// SetLogger sets the logger for retry and request messages.
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

// EncodeQuery builds the URL-encoded request body for a batch of ids.
func (c *Client) EncodeQuery(ids []string) string {
	form := url.Values{}
	form.Set("ids", strings.Join(ids, ","))
	if c.hg38 {
		form.Set("hg38", "true")
	}
	if len(c.fields) > 0 {
		form.Set("fields", strings.Join(c.fields, ","))
	}
	return form.Encode()
}

// QueryVariants posts the ids in a single request and returns the raw
// response body. Transport errors and throttling/gateway statuses are
// retried with exponential backoff; other non-200 statuses fail at once.
func (c *Client) QueryVariants(ctx context.Context, ids []string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, errors.New("no variant ids to query")
	}

	body := c.EncodeQuery(ids)
	var result []byte
	attempt := 0

	operation := func() error {
		attempt++
		data, err := c.post(ctx, body)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			var se *StatusError
			if errors.As(err, &se) && !se.Retryable() {
				return backoff.Permanent(err)
			}
			return err
		}
		result = data
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("myvariant request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	c.logger.Debug("querying myvariant.info",
		zap.String("endpoint", c.endpoint),
		zap.Int("ids", len(ids)))

	if err := backoff.RetryNotify(operation, backoff.WithContext(c.newBackOff(), ctx), notify); err != nil {
		return nil, fmt.Errorf("myvariant query: %w", err)
	}

	return result, nil
}

func (c *Client) newBackOff() backoff.BackOff {
	if c.maxElapsed <= 0 {
		return &backoff.StopBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxElapsedTime = c.maxElapsed
	return b
}

func (c *Client) post(ctx context.Context, body string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}

// StatusError reports a non-200 response from the service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("myvariant API error %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
