package llm

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyResponse is returned when the server answered successfully but
// produced no generated text.
var ErrEmptyResponse = errors.New("inference server returned an empty response")

// Client is the narrow adapter between the pipeline and a specific
// inference server's wire protocol. The rest of the tool never sees
// payload shapes.
type Client interface {
	// Generate submits one prompt and blocks until the complete response
	// is returned. Implementations make exactly one attempt per call.
	Generate(ctx context.Context, prompt string) (string, error)
	// Ping reports whether the server is reachable.
	Ping(ctx context.Context) error
}

// backoff returns the delay before the next reachability attempt.
// The delay doubles with each attempt: base * 2^attempt.
func backoff(attempt int, base time.Duration) time.Duration {
	return base * (1 << attempt)
}

// WaitReachable pings the server with exponential backoff until it answers
// or attempts are exhausted. It only guards startup against a server that is
// still loading a model; generation requests are never retried.
func WaitReachable(ctx context.Context, c Client, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = c.Ping(ctx); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(attempt, base)):
		}
	}
	return err
}
