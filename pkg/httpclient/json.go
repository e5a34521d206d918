package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Getter is satisfied by Client and CircuitBreakerClient.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// GetJSON fetches url and decodes a 2xx body into dst. Non-2xx responses are
// translated with ParseResponseError.
func GetJSON(ctx context.Context, g Getter, url, service string, dst any) error {
	resp, err := g.Get(ctx, url)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ParseResponseError(resp, service)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%s returned an empty body", service)
		}
		return fmt.Errorf("decode %s response: %w", service, err)
	}
	return nil
}

// Doer is satisfied by Client and CircuitBreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// HeaderGetter is a Getter that adds fixed headers, such as Authorization,
// to every GET it sends through a Doer.
type HeaderGetter struct {
	Doer   Doer
	Header http.Header
}

// Get implements Getter.
func (g HeaderGetter) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create GET request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range g.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return g.Doer.Do(ctx, req)
}
