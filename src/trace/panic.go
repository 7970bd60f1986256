package trace

import (
	"fmt"
)

// PanicError wraps a recovered panic value together with the stack of the
// goroutine that panicked.
type PanicError struct {
	Value  any
	frames []Frame
}

// Recovered builds a PanicError. It must be called from the deferred
// function that called recover, so the panicking frames are still on the
// stack.
func Recovered(v any) *PanicError {
	return &PanicError{
		Value:  v,
		frames: trimPanic(capture(1)),
	}
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

func (p *PanicError) Message() string {
	if err, ok := p.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(p.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

func (p *PanicError) StackTrace() []Frame { return p.frames }

// PanicValue returns the original value passed to panic.
func (p *PanicError) PanicValue() any { return p.Value }
