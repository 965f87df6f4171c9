package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/case-framework/discovery-builder/pkg/apihelpers"
)

type ClientConfig struct {
	RootURL              string
	APIKey               string
	MTLSCertificatePaths *apihelpers.CertificatePaths
	Timeout              time.Duration
}

// Client sends JSON requests relative to a root URL.
type Client struct {
	rootURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cConfig ClientConfig) (*Client, error) {
	transport, err := getTransportWithMTLSConfig(cConfig.MTLSCertificatePaths)
	if err != nil {
		slog.Error("Error creating transport with mTLS config", slog.String("error", err.Error()))
		return nil, err
	}

	client := &http.Client{
		Timeout: cConfig.Timeout,
	}
	if transport != nil {
		client.Transport = transport
	}
	return &Client{rootURL: cConfig.RootURL, apiKey: cConfig.APIKey, httpClient: client}, nil
}

// ResponseError is returned for non-2xx responses. Detail holds the "detail" field of the error
// body when the server sent one.
type ResponseError struct {
	StatusCode int
	Detail     string
}

func (e *ResponseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// Do sends payload (if not nil) as JSON and decodes the response into out (if not nil).
func (c *Client) Do(ctx context.Context, method string, pathname string, query url.Values, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonData)
	}

	reqURL := c.rootURL + pathname
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		slog.Error("unexpected error in preparing http request", slog.String("error", err.Error()))
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Api-Key", c.apiKey)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("unexpected error in http call", slog.String("error", err.Error()), slog.String("url", reqURL))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ResponseError{StatusCode: resp.StatusCode, Detail: readErrorDetail(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Error("Error decoding response", slog.String("error", err.Error()), slog.String("url", reqURL))
		return err
	}
	return nil
}

func readErrorDetail(body io.Reader) string {
	var errBody struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&errBody); err != nil {
		return ""
	}
	switch d := errBody.Detail.(type) {
	case string:
		return d
	case nil:
		return ""
	default:
		// validation errors come as a list of objects
		b, err := json.Marshal(d)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func getTransportWithMTLSConfig(mTLSCertificatePaths *apihelpers.CertificatePaths) (*http.Transport, error) {
	if mTLSCertificatePaths == nil {
		return nil, nil
	}

	tlsConfig, err := apihelpers.LoadClientTLSConfig(*mTLSCertificatePaths)
	if err != nil {
		return nil, err
	}

	return &http.Transport{
		TLSClientConfig: tlsConfig,
	}, nil
}
