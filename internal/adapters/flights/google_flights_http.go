package flights

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Upstream bodies are truncated to this many bytes in error messages.
const maxErrorBody = 200

type httpStatusError struct {
	Code int
	Body string
}

func newHTTPStatusError(resp *http.Response) *httpStatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &httpStatusError{
		Code: resp.StatusCode,
		Body: strings.TrimSpace(string(b)),
	}
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (g *GoogleFlightsProvider) newRequest(
	ctx context.Context,
	path string,
	params map[string]string,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("X-RapidAPI-Key", g.apiKey)
	req.Header.Set("X-RapidAPI-Host", g.apiHost)
	req.Header.Set("Accept", "application/json")

	return req, nil
}
