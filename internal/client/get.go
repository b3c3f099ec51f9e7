package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/inchstudio/forward-catalogs/internal/apperrors"
	"github.com/inchstudio/forward-catalogs/internal/config"
)

// GetJSON issues a GET against rawURL with the given query params and headers
// and decodes the JSON body into out. Failures come back as *apperrors.ErrUpstream
// tagged with source, so callers can treat any list-level failure uniformly.
//
// Some upstreams double-encode their payload as a JSON string; that case is
// detected and the inner document is decoded instead of failing.
func GetJSON(ctx context.Context, httpClient *http.Client, source, rawURL string, params url.Values, headers map[string]string, out any) error {
	requestURL := rawURL
	if len(params) > 0 {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return apperrors.NewUpstreamError(source, rawURL, err)
		}
		query := parsed.Query()
		for key, values := range params {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		parsed.RawQuery = query.Encode()
		requestURL = parsed.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return apperrors.NewUpstreamError(source, requestURL, err)
	}
	req.Header.Set("User-Agent", config.GetUserAgent())
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError(source, requestURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewUpstreamStatusError(source, requestURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewUpstreamError(source, requestURL, err)
	}

	if err := decodeBody(body, out); err != nil {
		return apperrors.NewUpstreamError(source, requestURL, err)
	}
	return nil
}

// decodeBody unmarshals body into out, unwrapping one level of
// string-encoded JSON when necessary.
func decodeBody(body []byte, out any) error {
	directErr := json.Unmarshal(body, out)
	if directErr == nil {
		return nil
	}

	var wrapped string
	if err := json.Unmarshal(body, &wrapped); err == nil {
		return json.Unmarshal([]byte(wrapped), out)
	}
	return directErr
}
