package username

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Field tracks one username input and the validation result for its current value.
// Lookups may overlap; a result is applied only if the value that started it is
// still the field's value when it resolves. Superseded results are dropped, the
// in-flight request itself is not cancelled.
type Field struct {
	validator *Validator
	logger    logrus.FieldLogger

	mu      sync.Mutex
	current string
	err     error
	checked bool
}

// NewField creates a Field that validates through validator
func NewField(validator *Validator, logger logrus.FieldLogger) *Field {
	return &Field{
		validator: validator,
		logger:    logger,
	}
}

// Set records a new value and clears the result of the previous one
func (f *Field) Set(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if value == f.current {
		return
	}
	f.current = value
	f.err = nil
	f.checked = false
}

// Check sets value and validates it. It blocks until the lookup resolves and
// reports whether the result was applied (false when the value changed meanwhile).
func (f *Field) Check(ctx context.Context, value string) bool {
	f.Set(value)
	return f.resolve(ctx, value)
}

// CheckAsync sets value and validates it on its own goroutine. The returned
// channel receives whether the result was applied and is then closed.
func (f *Field) CheckAsync(ctx context.Context, value string) <-chan bool {
	f.Set(value)

	done := make(chan bool, 1)
	go func() {
		defer close(done)
		done <- f.resolve(ctx, value)
	}()
	return done
}

// resolve validates value and applies the result only if value is still current
func (f *Field) resolve(ctx context.Context, value string) bool {
	err := f.validator.ValidateUsername(ctx, value)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current != value {
		f.logger.WithFields(logrus.Fields{
			"requested": value,
			"current":   f.current,
		}).Debug("discarding stale username validation result")
		return false
	}

	f.err = err
	f.checked = true
	return true
}

// Value returns the current value
func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Resolved reports whether a validation result has been applied for the current value
func (f *Field) Resolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checked
}

// Err returns the validation result for the current value, nil until resolved
func (f *Field) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
