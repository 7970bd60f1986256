// Package trace carries call-stack context on errors at the point they are
// constructed, so the failure report can show where they came from.
package trace

import (
	"fmt"
)

// Solver is implemented by errors that know how to fix themselves.
type Solver interface {
	Solution() string
}

// Messager exposes an error's own message without the text of its causes.
type Messager interface {
	Message() string
}

// Error is an error with a captured stack, optional locals at the capture
// site, an optional cause and an optional remediation hint.
type Error struct {
	msg      string
	cause    error
	frames   []Frame
	solution string
}

type Option func(*options)

type options struct {
	skip     int
	locals   map[string]any
	solution string
}

// WithLocals attaches variable bindings to the capture-site frame.
func WithLocals(locals map[string]any) Option {
	return func(o *options) {
		if o.locals == nil {
			o.locals = make(map[string]any, len(locals))
		}
		for k, v := range locals {
			o.locals[k] = v
		}
	}
}

// WithSolution attaches a remediation hint.
func WithSolution(solution string) Option {
	return func(o *options) { o.solution = solution }
}

// WithSkip skips additional frames, for helpers that build errors on
// behalf of their caller.
func WithSkip(skip int) Option {
	return func(o *options) { o.skip += skip }
}

// New returns an error with the caller's stack.
func New(msg string, opts ...Option) *Error {
	return build(msg, nil, opts)
}

// Wrap returns an error caused by cause, with the caller's stack.
func Wrap(cause error, msg string, opts ...Option) *Error {
	return build(msg, cause, opts)
}

// Errorf formats a message and captures the caller's stack. It does not
// interpret %w; use Wrap to keep a cause.
func Errorf(format string, args ...any) *Error {
	return build(fmt.Sprintf(format, args...), nil, nil)
}

func build(msg string, cause error, opts []Option) *Error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// skip build and New/Wrap/Errorf.
	frames := capture(2 + o.skip)
	if len(frames) > 0 && len(o.locals) > 0 {
		frames[0].Locals = o.locals
	}
	return &Error{
		msg:      msg,
		cause:    cause,
		frames:   frames,
		solution: o.solution,
	}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.cause.Error()
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Message() string { return e.msg }

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) StackTrace() []Frame { return e.frames }

func (e *Error) Solution() string { return e.solution }
