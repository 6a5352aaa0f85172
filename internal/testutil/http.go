package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// HTTPResult captures HTTP response details for test assertions.
type HTTPResult struct {
	Code    int
	Error   error
	Headers http.Header
	Cookies []*http.Cookie
	Body    []byte
}

// ExpectStatus validates the HTTP status code and fails the test if it
// doesn't match.
func ExpectStatus(t *testing.T, expected int, result HTTPResult) {
	t.Helper()
	if result.Error != nil {
		t.Fatalf("request error: %v", result.Error)
	}
	if result.Code != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, result.Code, string(result.Body))
	}
}

// CookieByName returns the named cookie from the result, or nil.
func (r HTTPResult) CookieByName(name string) *http.Cookie {
	for _, c := range r.Cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Get performs a GET request through the router with optional cookies and
// decodes a JSON response when one is expected.
func Get(router http.Handler, url string, response any, cookies ...*http.Cookie) HTTPResult {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return run(router, req, response)
}

// PostJSON performs a POST with a JSON body through the router.
func PostJSON(router http.Handler, url string, body string, response any, cookies ...*http.Cookie) HTTPResult {
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return run(router, req, response)
}

func run(router http.Handler, req *http.Request, response any) HTTPResult {
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	result := HTTPResult{
		Code:    res.Code,
		Headers: res.Header(),
		Cookies: res.Result().Cookies(),
		Body:    res.Body.Bytes(),
	}

	if response != nil && res.Body.Len() > 0 {
		if err := json.Unmarshal(res.Body.Bytes(), response); err != nil {
			result.Error = fmt.Errorf("failed to decode JSON: %v\n%s", err, res.Body.String())
		}
	}

	return result
}
