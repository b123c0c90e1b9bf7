// Package client calls the remote job description generator.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
)

type ErrorKind string

const (
	KindNetwork     ErrorKind = "network"
	KindServer      ErrorKind = "server"
	KindApplication ErrorKind = "application"
)

const (
	networkMessage     = "Network error - please check your connection and try again."
	serverMessage      = "Server error - please try again in a moment."
	applicationMessage = "Failed to generate job description. Please try again."
)

// Error is the uniform failure of a generate call. Message is safe to show to users.
type Error struct {
	Kind    ErrorKind
	Status  int // HTTP status, zero when no response arrived
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generator %s error: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("generator %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client posts job inputs to <baseURL>/generate. Each Generate call makes exactly one attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client (2 minute timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.httpClient = &http.Client{Timeout: d}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Generate sends the input and returns the generator's answer.
// Failures are always *Error.
func (c *Client) Generate(ctx context.Context, input dtos.JobInput) (*dtos.GenerateResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, &Error{Kind: KindApplication, Message: applicationMessage, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: networkMessage, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: networkMessage, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:    KindServer,
			Status:  resp.StatusCode,
			Message: serverMessage,
			Cause:   fmt.Errorf("HTTP error! status: %d", resp.StatusCode),
		}
	}

	var result dtos.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: serverMessage, Cause: err}
	}

	if !result.Success || strings.TrimSpace(result.JobDescription) == "" {
		msg := applicationMessage
		switch {
		case result.Message != "":
			msg = result.Message
		case result.Error != "":
			msg = result.Error
		}
		return nil, &Error{Kind: KindApplication, Status: resp.StatusCode, Message: msg}
	}

	return &result, nil
}
