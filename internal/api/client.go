// Package api simulates the two dependent network calls of the runner.
package api

import (
	"context"
	"time"

	"github.com/maxkimambo/dispatch/internal/logger"
)

const (
	Result1 = "Result 1"
	Result2 = "Result 2"
)

// Client answers both calls after a fixed latency.
type Client struct {
	Latency time.Duration
}

// NewClient creates a client with the given simulated latency.
func NewClient(latency time.Duration) *Client {
	return &Client{Latency: latency}
}

// CallAPI1 waits out the latency and returns Result1.
func (c *Client) CallAPI1(ctx context.Context) (string, error) {
	logger.Op.Debug("Loading start...")
	if err := c.delay(ctx); err != nil {
		return "", err
	}
	logger.Op.WithFields(map[string]interface{}{"result": Result1}).Debug("API1 end")
	return Result1, nil
}

// CallAPI2 waits out the latency and returns Result2. previous is only logged;
// the answer does not depend on it.
func (c *Client) CallAPI2(ctx context.Context, previous string) (string, error) {
	logger.Op.WithFields(map[string]interface{}{"input": previous}).Debug("API2 start")
	if err := c.delay(ctx); err != nil {
		return "", err
	}
	logger.Op.WithFields(map[string]interface{}{"result": Result2}).Debug("API2 end")
	return Result2, nil
}

// delay suspends the caller without holding anything; ctx cancellation ends it early.
func (c *Client) delay(ctx context.Context) error {
	if c.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.Latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
