package fallback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	got := Value("default", func() (string, error) { return "ok", nil })
	assert.Equal(t, "ok", got)

	got = Value("default", func() (string, error) { return "ignored", errors.New("broken") })
	assert.Equal(t, "default", got)
}

func TestValueRecoversPanic(t *testing.T) {
	got := Value(42, func() (int, error) { panic("lookup exploded") })
	assert.Equal(t, 42, got)
}

func TestMust(t *testing.T) {
	var m map[string]int
	got := Must(-1, func() int {
		m["x"] = 1 // nil map write panics
		return 1
	})
	assert.Equal(t, -1, got)
}
