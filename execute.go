package graphql

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Executor runs operations against a fixed Schema/Registry pair. Build one
// per schema and reuse it across requests -- it holds no per-request
// state itself, only the configuration every request shares (spec.md §5,
// "no cross-request caching").
type Executor struct {
	logger            *log.Logger
	maxDepth          int
	parallelQueryRoot bool
	requestIDGen      func() string
}

// NewExecutor builds an Executor, applying opts over sensible defaults: a
// stderr logger, no depth limit, parallel query-root resolution, and
// uuid.NewString for request ids.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		logger:            defaultLogger(),
		parallelQueryRoot: true,
		requestIDGen:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs op against schema's Query or Mutation root (chosen by
// op.Kind), coercing op's declared variables against rawVariables first
// (spec.md §4.3). A variable-coercion failure is a request-level error:
// the returned Response carries no Data, only the single error that
// caused it (spec.md §7). Everything past that point is field-level: a
// failing field contributes one error and goes null at its own position
// in Data, per the NonNull propagation rules in resolve.go. Parsing the
// query into an Operation/FragmentTable and selecting which operation to
// run are the caller's responsibility -- this engine starts from an
// already-chosen Operation.
func (e *Executor) Execute(ctx context.Context, schema *Schema, op *Operation, fragments FragmentTable, rawVariables map[string]interface{}) *Response {
	requestID := e.requestIDGen()
	ctx = withRequestID(ctx, requestID)

	root := schema.Query
	if op.Kind == OperationMutation {
		root = schema.Mutation
	}
	if root == nil {
		return &Response{Errors: stampRequestID(ErrorList{{Message: "operation has no matching root type in schema"}}, requestID)}
	}

	variables, err := coerceVariableValues(op.Variables, rawVariables)
	if err != nil {
		return &Response{Errors: stampRequestID(ErrorList{{Message: err.Error()}}, requestID)}
	}

	ectx := &execContext{
		Context:   ctx,
		fragments: fragments,
		variables: variables,
		maxDepth:  e.maxDepth,
		logger:    e.logger,
	}

	parallel := e.parallelQueryRoot && op.Kind == OperationQuery
	data, propagate := executeSelectionSet(ectx, root, nil, op.SelectionSet, nil, parallel)
	if propagate {
		return &Response{NullData: true, Errors: stampRequestID(ectx.errs, requestID)}
	}
	return &Response{Data: data, Errors: stampRequestID(ectx.errs, requestID)}
}

func stampRequestID(errs ErrorList, requestID string) ErrorList {
	for _, e := range errs {
		if e.Extensions == nil {
			e.Extensions = map[string]interface{}{}
		}
		if _, ok := e.Extensions["requestId"]; !ok {
			e.Extensions["requestId"] = requestID
		}
	}
	return errs
}
