// Package events publishes audit events (login outcomes, logouts) to
// the configured sinks. Publishing is best-effort: handlers log sink
// failures and serve the request anyway.
package events

import (
	"context"
	"time"
)

const (
	TypeLoginSucceeded = "login_succeeded"
	TypeLoginFailed    = "login_failed"
	TypeLogout         = "logout"
)

type Event struct {
	Type     string    `json:"type"`
	Username string    `json:"username,omitempty"`
	UserID   string    `json:"user_id,omitempty"`
	Mode     string    `json:"mode"`
	At       time.Time `json:"at"`
}

type Sink interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop is the sink used when no broker or index is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, e Event) error { return nil }
func (Noop) Close() error                               { return nil }

// Multi fans an event out to every sink and returns the first error.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, e Event) error {
	var first error
	for _, s := range m {
		if err := s.Publish(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
