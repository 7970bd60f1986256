package chain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracepage/src/trace"
)

type loopError struct {
	msg   string
	cause error
}

func (e *loopError) Error() string { return e.msg }
func (e *loopError) Unwrap() error { return e.cause }

type sliceError struct {
	parts []string
}

func (e sliceError) Error() string { return fmt.Sprint(e.parts) }
func (e sliceError) Unwrap() error { return sliceError{parts: append(e.parts, "again")} }

type hinted struct{}

func (hinted) Error() string    { return "no database" }
func (hinted) Solution() string { return "start postgres" }

func TestWalkSingle(t *testing.T) {
	c := Walk(errors.New("boom"), 10)

	require.Len(t, c, 1)
	assert.Empty(t, c[0].Frames)
	assert.Empty(t, c[0].Solution)
}

func TestWalkOrder(t *testing.T) {
	root := errors.New("C")
	b := fmt.Errorf("B: %w", root)
	a := trace.Wrap(b, "A")

	c := Walk(a, 0)

	require.Len(t, c, 3)
	assert.Same(t, a, c[0].Err)
	assert.Equal(t, b, c[1].Err)
	assert.Equal(t, root, c[2].Err)
	assert.Equal(t, root, c.Root().Err)
	assert.NotEmpty(t, c[0].Frames)
	assert.Empty(t, c[1].Frames)
}

func TestWalkSelfReference(t *testing.T) {
	self := &loopError{msg: "self"}
	self.cause = self

	c := Walk(self, 10)
	require.Len(t, c, 1)
}

func TestWalkCycle(t *testing.T) {
	a := &loopError{msg: "a"}
	b := &loopError{msg: "b", cause: a}
	a.cause = b

	c := Walk(a, 10)

	require.Len(t, c, 2)
	assert.Same(t, a, c[0].Err)
	assert.Same(t, b, c[1].Err)
}

func TestWalkUncomparableTerminates(t *testing.T) {
	c := Walk(sliceError{parts: []string{"x"}}, 10)
	assert.Len(t, c, maxLinks)
}

func TestWalkDeepChainKeepsRoot(t *testing.T) {
	root := errors.New("root cause")
	err := root
	for i := 0; i < 100; i++ {
		err = fmt.Errorf("layer %d: %w", i, err)
	}

	c := Walk(err, 1)
	require.Len(t, c, 101)
	assert.Same(t, root, c.Root().Err)
}

func TestWalkJoined(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	c := Walk(errors.Join(first, second), 10)

	require.Len(t, c, 2)
	assert.Equal(t, first, c[1].Err)
}

func TestWalkFrameLimit(t *testing.T) {
	err := trace.New("deep")
	all := len(err.StackTrace())
	require.Greater(t, all, 1)

	c := Walk(err, 1)
	require.Len(t, c[0].Frames, 1)
	assert.Equal(t, err.StackTrace()[0], c[0].Frames[0], "innermost frame is kept")
}

func TestWalkSolution(t *testing.T) {
	c := Walk(fmt.Errorf("wrapped: %w", hinted{}), 10)

	require.Len(t, c, 2)
	assert.Empty(t, c[0].Solution, "hint belongs to the link that declares it")
	assert.Equal(t, "start postgres", c[1].Solution)
}

func TestWalkNil(t *testing.T) {
	assert.Empty(t, Walk(nil, 10))
}
