package extract

import (
	"errors"
	"fmt"
)

// ErrNoPayload is matched by errors.Is for any extraction failure.
var ErrNoPayload = errors.New("typecast: no structured payload found")

// ExtractionError reports that no tactic produced syntactically valid
// structured text. It carries the strategy and the number of tactics
// attempted, for diagnostics.
type ExtractionError struct {
	Strategy Strategy
	Attempts int
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("typecast: no %s payload found after %d tactics: %v", e.Strategy, e.Attempts, e.Err)
}

// Unwrap exposes the last parse error.
func (e *ExtractionError) Unwrap() error { return e.Err }

// Is reports ErrNoPayload so callers can classify without the concrete type.
func (e *ExtractionError) Is(target error) bool { return target == ErrNoPayload }
