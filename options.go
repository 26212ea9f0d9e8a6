package graphql

import (
	"log"
	"os"
)

// Option configures an Executor at construction time, following the
// teacher's functional-options idiom (the original options.go built
// internal.Field descriptions this way; here the same pattern configures
// the executor itself).
type Option func(*Executor)

// WithLogger sets the logger an Executor uses to record resolver panics
// before they're downgraded to field errors. Defaults to
// log.New(os.Stderr, "", log.LstdFlags).
func WithLogger(logger *log.Logger) Option {
	return func(e *Executor) { e.logger = logger }
}

// WithMaxDepth bounds selection-set nesting depth; zero (the default)
// disables the check. Ports the teacher's Context.MaxDepth
// (_examples/qktrzrj-graphql/context.go).
func WithMaxDepth(n int) Option {
	return func(e *Executor) { e.maxDepth = n }
}

// WithConcurrency selects whether a query operation's root fields are
// resolved concurrently (spec.md §5's default query-root policy) or one
// at a time. Mutation root fields are always serial regardless of this
// setting, since their side effects must be observed in document order.
func WithConcurrency(parallel bool) Option {
	return func(e *Executor) { e.parallelQueryRoot = parallel }
}

// WithRequestIDGenerator overrides how the Executor produces each
// request's id (default: uuid.NewString). Tests substitute a
// deterministic generator here.
func WithRequestIDGenerator(gen func() string) Option {
	return func(e *Executor) { e.requestIDGen = gen }
}

func defaultLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}
