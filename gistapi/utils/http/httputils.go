package httputils

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client issues outbound GET requests with bounded retry. Transient server
// statuses and connection failures are retried with exponential backoff;
// client errors never are. It is read-only after construction and safe to
// share across requests.
type Client struct {
	http    *http.Client
	retries int
	backoff time.Duration
}

func New(timeout time.Duration, retries int, backoff time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		retries: retries,
		backoff: backoff,
	}
}

var retryStatus = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusGatewayTimeout:      true,
}

// Get fetches rawURL with the optional query attached. Transport errors and
// statuses in retryStatus are retried up to the configured count; whatever
// happened on the final attempt is returned, so an exhausted retry budget on
// a 5xx yields that response, not an error. The caller owns the body.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) (*http.Response, error) {
	u := rawURL
	if len(query) > 0 {
		u = rawURL + "?" + query.Encode()
	}

	var resp *http.Response
	var err error
	for attempt := 0; ; attempt++ {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if reqErr != nil {
			return nil, reqErr
		}
		resp, err = c.http.Do(req)
		if err == nil && !retryStatus[resp.StatusCode] {
			return resp, nil
		}
		if attempt >= c.retries {
			break
		}
		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff << attempt):
		}
	}
	return resp, err
}
