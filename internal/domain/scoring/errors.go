package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidWeights is the sentinel wrapped by every ConfigurationError.
var ErrInvalidWeights = errors.New("invalid scoring weights")

// ConfigurationError reports an invalid weight. It is only ever returned at
// scorer construction.
type ConfigurationError struct {
	Field string
	Value float64
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s weight %v must be a finite, non-negative number", ErrInvalidWeights, e.Field, e.Value)
}

func (e *ConfigurationError) Unwrap() error { return ErrInvalidWeights }
