package graphql

import (
	"fmt"
	"strings"
)

// Location is a line/column pair into the original query document, carried
// through from the (out-of-scope) parser so errors can point back at
// source text. Grounded on
// _examples/qktrzrj-graphql/errors/error.go's Location.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// PathSegment is one step of an error's path: either a field response name
// (string) or a list index (int).
type PathSegment interface{}

// Error is a single entry in a response's errors list (spec.md §3, §7).
// Its shape mirrors the teacher's errors.GraphQLError
// (_examples/qktrzrj-graphql/errors/error.go), with ResolverError kept
// unexported from JSON (it exists for callers inspecting errors
// programmatically, not for wire transmission) and Extensions used to
// carry ambient per-request metadata such as the request id (see
// context.go).
type Error struct {
	Message       string                 `json:"message"`
	Path          []PathSegment          `json:"path,omitempty"`
	Locations     []Location             `json:"locations,omitempty"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`
	ResolverError error                  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Path) > 0 {
		b.WriteString(" path=")
		for i, seg := range e.Path {
			if i > 0 {
				b.WriteByte('.')
			}
			fmt.Fprintf(&b, "%v", seg)
		}
	}
	return b.String()
}

// ErrorList is an append-only accumulator of field- and request-level
// errors. Renamed from the teacher's errors.MultiError
// (_examples/qktrzrj-graphql/errors/error.go) to avoid confusion with the
// per-field "one origin, one error" rule in spec.md §4.4.6 -- a List can
// (and in parallel mode, does) grow from many concurrent appends, but
// never shrinks within one request.
type ErrorList []*Error

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func newFieldError(message string, path []PathSegment, requestID string) *Error {
	e := &Error{Message: message, Path: path}
	if requestID != "" {
		e.Extensions = map[string]interface{}{"requestId": requestID}
	}
	return e
}

// SanitizedError is an error whose message is safe to surface to API
// consumers verbatim. Resolvers that want their own error text to reach
// the response (rather than being replaced by a generic message) return a
// SafeError. Grounded on
// _examples/samsarahq-thunder/graphql/errors.go's SanitizedError/SafeError
// pair.
type SanitizedError interface {
	error
	SanitizedError() string
}

// SafeError is a resolver-returned error whose message is considered safe
// to show to clients.
type SafeError struct{ message string }

func NewSafeError(format string, a ...interface{}) error {
	return SafeError{message: fmt.Sprintf(format, a...)}
}

func (e SafeError) Error() string          { return e.message }
func (e SafeError) SanitizedError() string { return e.message }

var _ SanitizedError = SafeError{}

// sanitize returns the message to report for a resolver-origin error: the
// error's own message if it opted in via SanitizedError, otherwise a
// generic message that doesn't leak internal detail.
func sanitize(err error) string {
	if se, ok := err.(SanitizedError); ok {
		return se.SanitizedError()
	}
	return "internal error"
}

// withPath returns a copy of path with seg appended, without mutating the
// caller's backing array.
func withPath(path []PathSegment, seg PathSegment) []PathSegment {
	out := make([]PathSegment, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}
