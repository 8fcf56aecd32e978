package services

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
)

// FeedResult wraps either a secret or an error from the feed
type FeedResult struct {
	Secret *models.SecretPayload
	Err    error
}

// FeedService defines the secrets feed interface
type FeedService interface {
	ReadSecrets(ctx context.Context) (<-chan FeedResult, error)
}

// FeedClient manages the SSE connection to the secrets feed and reads events
type FeedClient struct {
	url        string
	logger     *slog.Logger
	httpClient *http.Client
}

// Check interface implementation at compile-time
var _ FeedService = &FeedClient{}

// NewFeedClient creates a new feed client
func NewFeedClient(url string, logger *slog.Logger) *FeedClient {
	return &FeedClient{
		url:    url,
		logger: logger,

		// No timeout for streaming connection
		httpClient: &http.Client{Timeout: 0},
	}
}

// ReadSecrets connects to the feed and sends secret events to the result channel.
// Returns an error if initial connection to the feed fails.
// The channel is closed when the context is cancelled or the feed ends unexpectedly.
func (c *FeedClient) ReadSecrets(ctx context.Context) (<-chan FeedResult, error) {
	resp, err := c.getFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to feed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	c.logger.Info("Feed connection established")

	// Connection successful, start reading events asynchronously
	resultCh := make(chan FeedResult, 100)

	go c.readFeed(ctx, resp.Body, resultCh)

	return resultCh, nil
}

// getFeed establishes the HTTP connection to the SSE feed endpoint
func (c *FeedClient) getFeed(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}

	// These headers are needed for an SSE endpoint
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send feed request: %w", err)
	}

	return resp, nil
}

// readFeed manages the lifecycle of a single SSE connection.
// Reads events from the feed, parses and sends them to the result channel.
// The channel is closed when the function exits.
func (c *FeedClient) readFeed(ctx context.Context, body io.ReadCloser, resultCh chan<- FeedResult) {
	defer close(resultCh)
	defer body.Close()

	err := c.consumeFeed(ctx, body, resultCh)

	switch {
	case err == nil:
		// Feed ended normally with an EOF (this is not supposed to happen)
		c.logger.Info("Feed ended normally")

	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		// Context cancellation is normal and expected on shutdown
		c.logger.Info("Feed connection stopped", "reason", err.Error())

	default:
		// Anything else is an unexpected error (parse, scanner, network)
		c.logger.Error("Feed error", "err", err.Error())
		resultCh <- FeedResult{Err: fmt.Errorf("feed error: %w", err)}
	}
}

// consumeFeed reads and processes SSE events line by line.
// Returns nil on normal EOF, context error on cancellation, or other errors.
func (c *FeedClient) consumeFeed(ctx context.Context, r io.Reader, resultCh chan<- FeedResult) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		// Check the context once per iteration
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		b := scanner.Bytes()

		// Skip empty lines
		if len(b) == 0 {
			continue
		}

		// SSE data lines start with "data: " prefix
		if event, ok := bytes.CutPrefix(b, []byte("data: ")); ok {
			if err := c.handleEvent(ctx, event, resultCh); err != nil {
				return err
			}
		}
	}

	// Check if the scanner stopped due to context cancellation
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleEvent parses a single SSE event and sends it to the result channel.
// Blocks until the event is sent or the context is cancelled.
func (c *FeedClient) handleEvent(ctx context.Context, event []byte, resultCh chan<- FeedResult) error {
	var secret models.SecretPayload

	if err := secret.UnmarshalJSON(event); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	select {
	case resultCh <- FeedResult{Secret: &secret}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
