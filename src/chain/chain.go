// Package chain walks an error's cause chain into an ordered list of stack
// items, outermost error first and root cause last.
package chain

import (
	"reflect"

	"tracepage/src/trace"
)

// maxLinks bounds the links whose identity cannot be compared. Links with
// a decidable identity are guarded by the visited check alone.
const maxLinks = 64

// Item is one link of the chain.
type Item struct {
	Err error
	// Frames are innermost first.
	Frames   []trace.Frame
	Solution string
}

// Chain is outermost first.
type Chain []Item

// Root returns the deepest cause.
func (c Chain) Root() Item {
	return c[len(c)-1]
}

// Walk follows Unwrap links from err until no cause remains or an error
// already in the chain comes back. frameLimit caps the frames kept per
// link; zero or less keeps all of them.
func Walk(err error, frameLimit int) Chain {
	var out Chain
	var visited []error
	undecided := 0

	for err != nil && undecided < maxLinks {
		if !decidable(err) {
			undecided++
		}
		visited = append(visited, err)
		out = append(out, item(err, frameLimit))
		err = next(err, visited)
	}
	return out
}

func item(err error, frameLimit int) Item {
	it := Item{Err: err}
	if st, ok := err.(trace.StackTracer); ok {
		frames := st.StackTrace()
		if frameLimit > 0 && len(frames) > frameLimit {
			frames = frames[:frameLimit]
		}
		it.Frames = frames
	}
	if s, ok := err.(trace.Solver); ok {
		it.Solution = s.Solution()
	}
	return it
}

// next returns the first unvisited cause of err. Joined errors contribute
// their first unvisited member.
func next(err error, visited []error) error {
	var causes []error
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		causes = []error{u.Unwrap()}
	case interface{ Unwrap() []error }:
		causes = u.Unwrap()
	}

	for _, cause := range causes {
		if cause != nil && !seen(cause, visited) {
			return cause
		}
	}
	return nil
}

func seen(err error, visited []error) bool {
	for _, v := range visited {
		if same(err, v) {
			return true
		}
	}
	return false
}

// decidable reports whether same can decide err's identity.
func decidable(err error) (ok bool) {
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Pointer {
		return true
	}
	if !t.Comparable() {
		return false
	}

	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	other := err
	return err == other
}

// same compares error identity: pointers by address, comparable values
// with ==. Values that cannot be compared are never considered equal.
func same(a, b error) (eq bool) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Pointer {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return false
	}

	defer func() {
		// == on interfaces holding uncomparable dynamic fields panics.
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
