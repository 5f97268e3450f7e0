// Package notify defines the notification interface and implementations
// for refresh digest delivery.
package notify

import (
	"context"
	"time"
)

// Digest summarizes one completed scheduled refresh.
type Digest struct {
	BatchID   string
	Category  string
	Items     int
	Skipped   int
	Degraded  int
	FetchedAt time.Time
}

// Notifier defines the interface for delivering refresh digests.
type Notifier interface {
	SendDigest(ctx context.Context, d Digest) error
}
