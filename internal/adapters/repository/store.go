// Package repository defines the result store interface and errors.
//
// The store stands in for the hosted results backend: the engine never
// talks to it directly, it only receives immutable snapshots copied out of
// it per request.
package repository

import (
	"context"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
)

// Store provides read/write access to the normalized result history.
type Store interface {
	// Upsert inserts or overwrites a result keyed by ResultID. Re-ingesting
	// a scraped row is a no-op overwrite, which keeps the pipeline
	// idempotent. Returns true when the result was newly inserted.
	Upsert(ctx context.Context, r model.Result) (bool, error)

	// Has reports whether a result id is already stored.
	Has(ctx context.Context, resultID string) bool

	// All returns every stored result, date ascending then event label.
	All(ctx context.Context) []model.Result

	// ByEvent returns the results for one exact event label, date ascending.
	ByEvent(ctx context.Context, eventLabel string) []model.Result

	// Events returns the distinct event labels present, sorted.
	Events(ctx context.Context) []string

	// Count returns the number of stored results.
	Count(ctx context.Context) int
}
