// Package deepl implements a minimal client for the DeepL v2 translate
// endpoint. One call translates an ordered batch of values; the response
// carries one translation and one detected-source-language tag per value.
package deepl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client calls the DeepL HTTP API.
type Client struct {
	// endpoint is the full translate URL (e.g. "https://api-free.deepl.com/v2/translate")
	endpoint string
	// authKey is the DeepL API key sent as the auth_key form field
	authKey string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// New creates a client for the given endpoint and API key.
// Requests time out after 60 seconds.
func New(endpoint, authKey string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		authKey:  authKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// StatusError is a non-200 response from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("deepl: HTTP %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("deepl: HTTP %d", e.Code)
}

// Retryable reports whether the status class is worth retrying:
// rate limiting and server-side failures. Authentication and bad-request
// failures are final.
func (e *StatusError) Retryable() bool {
	switch e.Code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Result is one translated batch: translations and detected source
// languages in input order, one entry per submitted value.
type Result struct {
	Translations []string
	DetectedLang []string
}

// Translate submits one batch of values for translation into target.
// When markup is set, the provider treats embedded HTML tags as structure
// to preserve. Empty-string values are legal and translate to empty
// strings. An empty batch returns an empty result without a network call.
func (c *Client) Translate(ctx context.Context, values []string, target string, markup bool) (Result, error) {
	if len(values) == 0 {
		return Result{}, nil
	}

	form := url.Values{}
	form.Set("auth_key", c.authKey)
	form.Set("target_lang", target)
	form.Set("preserve_formatting", "1")
	if markup {
		form.Set("tag_handling", "html")
	}
	for _, v := range values {
		form.Add("text", v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out struct {
		Translations []struct {
			Text                   string `json:"text"`
			DetectedSourceLanguage string `json:"detected_source_language"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("deepl: decoding response: %w", err)
	}

	res := Result{
		Translations: make([]string, 0, len(out.Translations)),
		DetectedLang: make([]string, 0, len(out.Translations)),
	}
	for _, tr := range out.Translations {
		res.Translations = append(res.Translations, tr.Text)
		res.DetectedLang = append(res.DetectedLang, tr.DetectedSourceLanguage)
	}
	return res, nil
}
