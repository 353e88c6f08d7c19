package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/peakfit/fitcli/internal/session"
	"github.com/peakfit/fitcli/internal/stats"
)

const defaultTimeout = 30 * time.Second

// Client issues authenticated JSON requests to the backend. The
// session store supplies the bearer token; requests made while logged
// out are simply sent without an Authorization header and the backend
// decides whether that is acceptable. One call is one round trip: no
// caching, no retries.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
	log     *log.Logger
	stats   stats.StatsProvider
}

func NewClient(baseURL string, sess *session.Store, logger *log.Logger, sp stats.StatsProvider) *Client {
	sp.RegisterMetric("NumApiRequests")
	sp.RegisterMetric("NumApiErrors")

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		session: sess,
		log:     logger,
		stats:   sp,
	}
}

// do performs one request. body is marshaled as JSON when non-nil;
// out, when non-nil, receives the decoded response body. Non-2xx
// responses are returned as *APIError, never swallowed.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.session.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.stats.Incr("NumApiRequests")

	resp, err := c.http.Do(req)
	if err != nil {
		c.stats.Incr("NumApiErrors")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.stats.Incr("NumApiErrors")
		return NewAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}
