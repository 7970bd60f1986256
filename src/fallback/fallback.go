// Package fallback centralizes the best-effort policy used while building a
// failure report: a helper that fails or panics yields a default value
// instead of replacing the failure being reported.
package fallback

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
)

// Value runs fn and returns its result, or def when fn returns an error or
// panics.
func Value[T any](def T, fn func() (T, error)) (out T) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithError(fmt.Errorf("%v", r)).Debug("best-effort helper panicked, using default")
			out = def
		}
	}()

	v, err := fn()
	if err != nil {
		logger.WithError(err).Debug("best-effort helper failed, using default")
		return def
	}
	return v
}

// Must is Value for helpers that cannot report an error themselves.
func Must[T any](def T, fn func() T) T {
	return Value(def, func() (T, error) { return fn(), nil })
}
