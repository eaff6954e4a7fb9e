package selector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Fetcher performs a JSON request against the data endpoint. params is nil
// for the initial, top-level request.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params url.Values) (any, error)
}

// FetcherFunc adapts a function into a Fetcher.
type FetcherFunc func(ctx context.Context, endpoint string, params url.Values) (any, error)

// Fetch calls the underlying function.
func (fn FetcherFunc) Fetch(ctx context.Context, endpoint string, params url.Values) (any, error) {
	return fn(ctx, endpoint, params)
}

// HTTPFetcher issues GET requests and decodes the body as JSON. Numbers are
// kept as json.Number so identifiers survive without float formatting.
// Relative endpoints such as "/api/regions" are resolved against BaseURL.
type HTTPFetcher struct {
	Client  *http.Client
	Header  http.Header
	BaseURL string
}

// Resolve returns endpoint as an absolute URL, joined to BaseURL when it is
// relative. It returns ErrRelativeURL when no absolute URL can be formed.
func (f HTTPFetcher) Resolve(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("selector: parse url: %w", err)
	}
	if ref.IsAbs() {
		return ref, nil
	}
	if f.BaseURL == "" {
		return nil, fmt.Errorf("%w: %q", ErrRelativeURL, endpoint)
	}
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("selector: parse base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("%w: base %q", ErrRelativeURL, f.BaseURL)
	}
	return base.ResolveReference(ref), nil
}

func (f HTTPFetcher) Fetch(ctx context.Context, endpoint string, params url.Values) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reqURL, err := f.Resolve(endpoint)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		q := reqURL.Query()
		for key, values := range params {
			for i, value := range values {
				if i == 0 {
					q.Set(key, value)
					continue
				}
				q.Add(key, value)
			}
		}
		reqURL.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("selector: request: %w", err)
	}
	for key, values := range f.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("selector: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, StatusError{Code: resp.StatusCode, URL: reqURL.String()}
	}

	var payload any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("selector: decode: %w", err)
	}
	return payload, nil
}
