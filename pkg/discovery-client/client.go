package discoveryclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/case-framework/discovery-builder/pkg/apihelpers"
	httpclient "github.com/case-framework/discovery-builder/pkg/http-client"
	"github.com/go-playground/validator/v10"
)

const (
	DEFAULT_ROOT_URL   = "http://localhost:8000"
	DEFAULT_USER_EMAIL = "admin@discovery.local"
	DEFAULT_TIMEOUT    = 30 * time.Second

	API_PREFIX = "/api"
)

var ErrNotFound = errors.New("not found")

type Config struct {
	RootURL string
	APIKey  string
	// UserEmail identifies the owner for project and instance creation.
	UserEmail            string
	Timeout              time.Duration
	MTLSCertificatePaths *apihelpers.CertificatePaths
}

// Client talks to the discovery interview backend.
type Client struct {
	http      *httpclient.Client
	userEmail string
	validate  *validator.Validate
	now       func() time.Time
}

func NewClient(conf Config) (*Client, error) {
	if conf.RootURL == "" {
		conf.RootURL = DEFAULT_ROOT_URL
	}
	if conf.UserEmail == "" {
		conf.UserEmail = DEFAULT_USER_EMAIL
	}
	if conf.Timeout <= 0 {
		conf.Timeout = DEFAULT_TIMEOUT
	}

	c, err := httpclient.NewClient(httpclient.ClientConfig{
		RootURL:              conf.RootURL + API_PREFIX,
		APIKey:               conf.APIKey,
		MTLSCertificatePaths: conf.MTLSCertificatePaths,
		Timeout:              conf.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		http:      c,
		userEmail: conf.UserEmail,
		validate:  validator.New(),
		now:       time.Now,
	}, nil
}

// APIError is a failed call with a message suitable for showing to a user.
type APIError struct {
	Message    string
	StatusCode int
	// Detail is the reason given by the backend, if any.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func (c *Client) call(ctx context.Context, failMsg string, method string, path string, query url.Values, payload interface{}, out interface{}) error {
	err := c.http.Do(ctx, method, path, query, payload, out)
	if err == nil {
		return nil
	}
	var respErr *httpclient.ResponseError
	if errors.As(err, &respErr) {
		return &APIError{Message: failMsg, StatusCode: respErr.StatusCode, Detail: respErr.Detail}
	}
	return fmt.Errorf("%s: %w", failMsg, err)
}

func (c *Client) userQuery() url.Values {
	return url.Values{"user_email": {c.userEmail}}
}

// flexID accepts numeric and string ids and keeps them as strings.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = flexID(n.String())
	return nil
}

func numericID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", id)
	}
	return n, nil
}
