package comfort

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Versioned describes one optimistic-concurrency-controlled resource for
// UpdateVersioned. Ownership updates and threshold-adjustment updates share
// this exact shape; only the loader, the tag format and the mutated fields
// differ.
type Versioned[T any] struct {
	// Load fetches the current row, translating a missing row to ErrNotFound.
	Load func(tx *gorm.DB) (*T, error)
	// Tag formats the opaque version tag (quoted, ready for an ETag header).
	Tag func(res *T) string
	// Version reads the stored version counter.
	Version func(res *T) int64
	// Mutate applies the requested field changes in memory and reports whether
	// anything actually changed versus the stored values.
	Mutate func(res *T) (bool, error)
	// Persist writes the mutated row with a single conditional UPDATE guarded
	// by oldVersion and returns the number of rows affected. It must set the
	// incremented version and the new timestamp on res so Tag(res) yields the
	// fresh tag.
	Persist func(tx *gorm.DB, res *T, oldVersion int64, now time.Time) (int64, error)
}

type UpdateOutcome struct {
	Tag     string
	Changed bool
}

// UpdateVersioned runs the read-check-mutate-write cycle for one versioned
// resource inside a transaction.
//
// Precondition handling: with requireMatch set, a blank ifMatch fails with
// ErrPreconditionRequired; a non-blank ifMatch that differs from the current
// tag fails with ErrPreconditionFailed before any mutation. A mutation that
// changes nothing returns the current tag without bumping the version. The
// write itself is conditional on the version read in this transaction, so a
// concurrent winner makes the UPDATE match zero rows and the loser observes
// ErrPreconditionFailed instead of silently overwriting.
func UpdateVersioned[T any](ctx context.Context, conn *gorm.DB, ifMatch string, requireMatch bool, spec Versioned[T]) (UpdateOutcome, error) {
	var out UpdateOutcome
	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := spec.Load(tx)
		if err != nil {
			return err
		}

		current := spec.Tag(res)

		if requireMatch && strings.TrimSpace(ifMatch) == "" {
			return fmt.Errorf("%w: conditional match token missing", ErrPreconditionRequired)
		}
		if ifMatch != "" && ifMatch != current {
			return fmt.Errorf("%w: expected %s", ErrPreconditionFailed, current)
		}

		changed, err := spec.Mutate(res)
		if err != nil {
			return err
		}
		if !changed {
			out = UpdateOutcome{Tag: current, Changed: false}
			return nil
		}

		oldVersion := spec.Version(res)
		rows, err := spec.Persist(tx, res, oldVersion, time.Now().UTC())
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: resource changed concurrently", ErrPreconditionFailed)
		}

		out = UpdateOutcome{Tag: spec.Tag(res), Changed: true}
		return nil
	})
	if err != nil {
		return UpdateOutcome{}, err
	}
	return out, nil
}
