// Package estimator converts arbitrary cached values into an approximate byte count.
package estimator

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultFallbackBytes is reported when a value cannot be measured.
const DefaultFallbackBytes int64 = 128

var ErrUnsizable = errors.New("value size cannot be estimated")

// Estimator measures a value. Implementations may fail, callers recover with a fallback.
type Estimator interface {
	Estimate(value any) (int64, error)
}

// Sizer is implemented by values that know their own footprint.
type Sizer interface {
	SizeBytes() int64
}

// JSON measures raw bytes and strings by length and everything else by
// the length of its JSON encoding.
type JSON struct{}

func (JSON) Estimate(value any) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case Sizer:
		return v.SizeBytes(), nil
	case []byte:
		return int64(len(v)), nil
	case string:
		return int64(len(v)), nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnsizable, err)
	}
	return int64(len(data)), nil
}

// WithFallback wraps an Estimator so that it never fails.
type WithFallback struct {
	Estimator Estimator
	Fallback  int64
}

func NewWithFallback(e Estimator, fallback int64) *WithFallback {
	if e == nil {
		e = JSON{}
	}
	if fallback <= 0 {
		fallback = DefaultFallbackBytes
	}
	return &WithFallback{Estimator: e, Fallback: fallback}
}

// Size returns the estimated size and whether the fallback was used.
func (w *WithFallback) Size(value any) (size int64, fallback bool) {
	size, err := w.Estimator.Estimate(value)
	if err != nil || size < 0 {
		return w.Fallback, true
	}
	return size, false
}
