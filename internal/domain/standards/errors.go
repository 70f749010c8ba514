package standards

import (
	"errors"
	"fmt"
)

// Sentinel kinds for standards errors.
var (
	// ErrUnknownStandard means no tier table exists for an (event, age
	// group) pair. Per-record and non-fatal: the caller reports the
	// classification as unavailable and moves on.
	ErrUnknownStandard = errors.New("no time standard for event and age group")

	// ErrLoadTable covers unreadable or unparseable table artifacts.
	ErrLoadTable = errors.New("load standards table failed")

	// ErrInvalidTable covers artifacts that parse but violate the table
	// invariants (unknown tiers, non-increasing thresholds).
	ErrInvalidTable = errors.New("invalid standards table")
)

func unknownStandard(eventLabel, ageGroup string) error {
	return fmt.Errorf("%w: %s / %s", ErrUnknownStandard, eventLabel, ageGroup)
}
