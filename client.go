package tavus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the default base URL for the Tavus API.
const DefaultBaseURL = "https://tavusapi.com/v2"

var (
	// ErrTransport is returned when the request could not be sent or its
	// response could not be read (DNS failure, refused connection, timeout).
	ErrTransport = errors.New("tavus: transport failure")

	// ErrDecode is returned when a response body is not valid JSON.
	ErrDecode = errors.New("tavus: invalid JSON response")
)

// Client is a client for the Tavus API.
//
// https://docs.tavus.io/api-reference
type Client struct {
	// APIKey is the API key sent in the x-api-key header.
	APIKey string

	// BaseURL is the base URL for the Tavus API.
	BaseURL string

	// HTTPClient is the HTTP client to use for requests.
	HTTPClient *http.Client

	// Limiter, if set, is waited on before each request is sent.
	Limiter *rate.Limiter
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// WithHTTPClient is a ClientOption that sets the HTTP client to use for requests.
//
// If the client is nil, then http.DefaultClient is used
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		if c == nil {
			c = http.DefaultClient
		}
		client.HTTPClient = c
	}
}

// WithBaseURL is a ClientOption that sets the base URL, mostly useful for tests.
//
// An empty URL leaves the default in place.
func WithBaseURL(u string) ClientOption {
	return func(client *Client) {
		if u != "" {
			client.BaseURL = u
		}
	}
}

// WithRateLimiter is a ClientOption that makes the client wait on l before
// sending a request. Requests are still sent exactly once.
func WithRateLimiter(l *rate.Limiter) ClientOption {
	return func(client *Client) {
		client.Limiter = l
	}
}

// NewClient returns a new Client with the given API key.
//
// # Example
//
//	c := tavus.NewClient(os.Getenv("TAVUS_API_KEY"))
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewCreateConversationRequest builds the HTTP request for a "create conversation"
// call. The request carries exactly two headers: x-api-key and Content-Type.
func (c *Client) NewCreateConversationRequest(ctx context.Context, req *CreateConversationRequest) (*http.Request, error) {
	if req == nil {
		return nil, errors.New("tavus: nil create conversation request")
	}

	b, err := req.Payload()
	if err != nil {
		return nil, err
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/conversations", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	r.Header.Set("x-api-key", c.APIKey)
	r.Header.Set("Content-Type", "application/json")

	return r, nil
}

// CreateConversation performs a "create conversation" request using the Tavus API.
//
// The request is sent once. The response status code is not inspected: any
// response whose body is valid JSON is returned, and callers decide what to do
// based on whether it contains a conversation URL. Network failures wrap
// [ErrTransport], and bodies that are not JSON wrap [ErrDecode].
//
// # Example
//
//	resp, _ := client.CreateConversation(ctx, tavus.DefaultConversationRequest())
//	if u, ok := resp.URL(); ok {
//		fmt.Println(u)
//	}
//
// https://docs.tavus.io/api-reference/conversations/create-conversation
func (c *Client) CreateConversation(ctx context.Context, req *CreateConversationRequest) (*CreateConversationResponse, error) {
	r, err := c.NewCreateConversationRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("failed waiting on rate limiter: %w", err)
		}
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	cResp, err := DecodeCreateConversationResponse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode create conversation response (status %d): %w", resp.StatusCode, err)
	}
	cResp.StatusCode = resp.StatusCode

	return cResp, nil
}
