package graphql

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"runtime/debug"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ResponseMap is an ordered map from response name to completed value,
// preserving the order fields were requested in (spec.md §4.4, "Result
// shape"). Plain Go maps are used everywhere else in the engine -- inside
// Value.Object, variables, arguments -- where order is immaterial;
// ResponseMap exists solely because the final, user-visible output of an
// object-typed field must reproduce query order, unlike Value's
// lexicographic ToOrderedWire (see value.go).
type ResponseMap struct {
	Keys   []string
	Values map[string]interface{}
}

func newResponseMap() *ResponseMap {
	return &ResponseMap{Values: make(map[string]interface{})}
}

func (r *ResponseMap) set(key string, value interface{}) {
	if _, exists := r.Values[key]; !exists {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = value
}

// ToWire renders the map in request order as a slice of OrderedField, the
// same shape Value.ToOrderedWire produces, so response.go can marshal
// either through one JSON helper.
func (r *ResponseMap) ToWire() []OrderedField {
	out := make([]OrderedField, len(r.Keys))
	for i, k := range r.Keys {
		out[i] = OrderedField{Key: k, Value: toWireValue(r.Values[k])}
	}
	return out
}

func toWireValue(v interface{}) interface{} {
	switch vv := v.(type) {
	case *ResponseMap:
		return vv.ToWire()
	case []interface{}:
		out := make([]interface{}, len(vv))
		for i, elem := range vv {
			out[i] = toWireValue(elem)
		}
		return out
	default:
		return v
	}
}

// execContext carries everything that's constant across one operation's
// execution -- the registry, the fragment table, the coerced variables --
// plus the mutable, concurrency-safe error accumulator. One execContext is
// shared by every goroutine spawned while resolving a single operation.
//
// Grounded on _examples/qktrzrj-graphql/execution/execute.go's exeContext,
// generalized with a mutex since this engine's query root resolves
// sibling fields in parallel (spec.md §5) rather than strictly serially.
type execContext struct {
	context.Context
	fragments FragmentTable
	variables map[string]Value
	maxDepth  int
	logger    *log.Logger

	mu   sync.Mutex
	errs ErrorList
}

func (c *execContext) addErr(e *Error) {
	c.mu.Lock()
	c.errs = append(c.errs, e)
	c.mu.Unlock()
}

// shouldIncludeSelection implements spec.md §6's directive handling: only
// @skip and @include are interpreted, @skip taking precedence when both
// are present on the same selection. Any other directive is inert.
func shouldIncludeSelection(directives []Directive, variables map[string]Value) (bool, error) {
	include := true
	for _, d := range directives {
		switch d.Name {
		case "skip":
			v, err := directiveIfArg(d, variables)
			if err != nil {
				return false, err
			}
			if v {
				include = false
			}
		case "include":
			v, err := directiveIfArg(d, variables)
			if err != nil {
				return false, err
			}
			if !v {
				include = false
			}
		}
	}
	return include, nil
}

func directiveIfArg(d Directive, variables map[string]Value) (bool, error) {
	lit, ok := d.Arguments["if"]
	if !ok {
		return false, fmt.Errorf("directive @%s requires argument \"if\"", d.Name)
	}
	v, err := coerceLiteral(BooleanType, lit, variables, "if")
	if err != nil {
		return false, err
	}
	return v.Bool, nil
}

// collectFields implements spec.md §4.4.2: it walks selSet, expanding
// inline fragments and fragment spreads whose type condition matches
// objType (or carries none), dropping any selection whose @skip/@include
// directives resolve to exclusion, and merges the result into field
// groups keyed by response name -- so `foo: bar { a } foo: bar { b }`
// collects into one "foo" group with two FieldSelections, each
// contributing sub-selections that mergeSelectionSets later combines.
//
// visiting guards against a fragment spreading itself, directly or
// transitively: a name already on the active expansion path is treated as
// already-satisfied and silently skipped rather than erroring, since a
// document containing a genuine fragment cycle is a (parser/validator)
// bug this engine isn't responsible for catching -- it degrades instead
// of looping.
func collectFields(objType *ObjectType, selSet *SelectionSet, fragments FragmentTable, variables map[string]Value, visiting map[string]bool) ([]string, map[string][]*FieldSelection, error) {
	order := []string{}
	groups := map[string][]*FieldSelection{}

	var visit func(*SelectionSet) error
	visit = func(ss *SelectionSet) error {
		if ss == nil {
			return nil
		}
		for _, sel := range ss.Selections {
			switch sel.Kind {
			case SelectField:
				f := sel.Field
				include, err := shouldIncludeSelection(f.Directives, variables)
				if err != nil {
					return err
				}
				if !include {
					continue
				}
				name := f.ResponseName()
				if _, seen := groups[name]; !seen {
					order = append(order, name)
				}
				groups[name] = append(groups[name], f)

			case SelectInlineFragment:
				frag := sel.InlineFragment
				include, err := shouldIncludeSelection(frag.Directives, variables)
				if err != nil {
					return err
				}
				if !include {
					continue
				}
				if frag.TypeCondition != "" && frag.TypeCondition != objType.Name {
					continue
				}
				if err := visit(frag.SelectionSet); err != nil {
					return err
				}

			case SelectFragmentSpread:
				spread := sel.FragmentSpread
				include, err := shouldIncludeSelection(spread.Directives, variables)
				if err != nil {
					return err
				}
				if !include {
					continue
				}
				if visiting[spread.Name] {
					continue
				}
				def, ok := fragments[spread.Name]
				if !ok {
					return fmt.Errorf("unknown fragment %q", spread.Name)
				}
				if def.TypeCondition != "" && def.TypeCondition != objType.Name {
					continue
				}
				visiting[spread.Name] = true
				err = visit(def.SelectionSet)
				delete(visiting, spread.Name)
				if err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := visit(selSet); err != nil {
		return nil, nil, err
	}
	return order, groups, nil
}

// mergeSelectionSets combines the sub-selection-sets of every
// FieldSelection sharing a response name into one, per spec.md §4.4.2's
// field-merging rule. It assumes (as the out-of-scope validator would
// otherwise guarantee) that merged selections agree on arguments; this
// engine always resolves using the first occurrence's arguments.
func mergeSelectionSets(fields []*FieldSelection) *SelectionSet {
	merged := &SelectionSet{}
	for _, f := range fields {
		if f.SelectionSet != nil {
			merged.Selections = append(merged.Selections, f.SelectionSet.Selections...)
		}
	}
	if len(merged.Selections) == 0 {
		return nil
	}
	return merged
}

// executeSelectionSet resolves every field collected for objType against
// source, in parallel when parallel is true (the query-root policy of
// spec.md §5) or sequentially otherwise (object fields below the root,
// and always for a mutation root, so sibling mutation fields observe each
// other's side effects in document order).
//
// The returned bool reports whether a NonNull field beneath this selection
// set produced null and must bubble past objType itself (spec.md §4.4.5,
// "Null propagation"): true means the caller should treat this entire
// selection set's result as null and keep bubbling.
func executeSelectionSet(ctx *execContext, objType *ObjectType, source interface{}, selSet *SelectionSet, path []PathSegment, parallel bool) (*ResponseMap, bool) {
	order, groups, err := collectFields(objType, selSet, ctx.fragments, ctx.variables, map[string]bool{})
	if err != nil {
		ctx.addErr(&Error{Message: err.Error(), Path: path})
		return newResponseMap(), false
	}

	out := newResponseMap()
	var mu sync.Mutex
	bubble := false

	run := func(name string) {
		fields := groups[name]
		first := fields[0]
		fieldPath := withPath(path, name)

		if first.Name == "__typename" {
			mu.Lock()
			out.set(name, objType.Name)
			mu.Unlock()
			return
		}

		fieldDef, ok := objType.Fields[first.Name]
		if !ok {
			ctx.addErr(&Error{Message: fmt.Sprintf("field %s not resolved.", first.Name), Path: fieldPath})
			mu.Lock()
			out.set(name, nil)
			mu.Unlock()
			return
		}

		depth := 0
		for _, seg := range fieldPath {
			if _, isName := seg.(string); isName {
				depth++
			}
		}
		if ctx.maxDepth > 0 && depth > ctx.maxDepth {
			ctx.addErr(&Error{Message: fmt.Sprintf("selection exceeds maximum depth of %d", ctx.maxDepth), Path: fieldPath})
			mu.Lock()
			if IsNonNull(fieldDef.Type) {
				bubble = true
			} else {
				out.set(name, nil)
			}
			mu.Unlock()
			return
		}

		merged := mergeSelectionSets(fields)

		args, argErr := coerceArgumentValues(fieldDef, first.Arguments, ctx.variables)
		var result interface{}
		var resolveErr error
		if argErr != nil {
			resolveErr = argErr
		} else {
			result, resolveErr = resolveField(ctx, fieldDef, source, args)
		}

		completed, propagate := completeValue(ctx, fieldDef.Type, result, resolveErr, merged, fieldPath)
		mu.Lock()
		if propagate && IsNonNull(fieldDef.Type) {
			bubble = true
		} else if propagate {
			// A nullable field is the nearest nullable ancestor: it absorbs
			// the propagation and becomes null itself.
			out.set(name, nil)
		} else {
			out.set(name, completed)
		}
		mu.Unlock()
	}

	if parallel && len(order) > 1 {
		g, _ := errgroup.WithContext(ctx.Context)
		for _, name := range order {
			name := name
			g.Go(func() error {
				run(name)
				return nil
			})
		}
		_ = g.Wait()
		// Goroutines call set in completion order; restore source order.
		keys := make([]string, 0, len(out.Keys))
		for _, name := range order {
			if _, ok := out.Values[name]; ok {
				keys = append(keys, name)
			}
		}
		out.Keys = keys
	} else {
		for _, name := range order {
			run(name)
		}
	}

	return out, bubble
}

// resolveField invokes a field's resolver, recovering from panics the
// same way the teacher's safeExecuteResolver does
// (_examples/qktrzrj-graphql/execution/execute.go), so a misbehaving
// resolver downgrades to a field error instead of taking the whole
// request down.
func resolveField(ctx *execContext, field *Field, source interface{}, args map[string]Value) (result interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			stack := debug.Stack()
			if ctx.logger != nil {
				ctx.logger.Printf("graphql: recovered panic in resolver: %v\n%s", p, stack)
			}
			err = fmt.Errorf("panic in resolver: %v", p)
		}
	}()
	if field.Resolve == nil {
		return nil, fmt.Errorf("field has no resolver")
	}
	return field.Resolve(ctx.Context, source, args)
}

// completeValue implements spec.md §4.4.4-§4.4.5: it awaits a resolver's
// result if it's a Future, converts it into the shape appropriate for t,
// and recurses into nested selections for list/object types. The bool
// return mirrors executeSelectionSet's: true means a NonNull violation
// occurred at or below this value and null must propagate to the nearest
// nullable ancestor.
func completeValue(ctx *execContext, t OutputType, result interface{}, resultErr error, selSet *SelectionSet, path []PathSegment) (interface{}, bool) {
	if resultErr != nil {
		ctx.addErr(newResolverFieldError(resultErr, path))
		if IsNonNull(t) {
			return nil, true
		}
		return nil, false
	}

	if nn, ok := t.(*NonNull); ok {
		inner, ok := nn.Type.(OutputType)
		if !ok {
			ctx.addErr(&Error{Message: fmt.Sprintf("type %q is not usable as an output type", nn.Type.String()), Path: path})
			return nil, true
		}
		value, propagate := completeValue(ctx, inner, result, nil, selSet, path)
		if propagate {
			return nil, true
		}
		if value == nil {
			ctx.addErr(&Error{Message: fmt.Sprintf("must not return null for non-null field of type %s", nn.String()), Path: path})
			return nil, true
		}
		return value, false
	}

	value, err := await(result)
	if err != nil {
		ctx.addErr(newResolverFieldError(err, path))
		return nil, false
	}
	if v, ok := value.(Value); ok {
		value = v.ToWire()
	}
	if value == nil || isNilReflect(value) {
		return nil, false
	}

	switch tt := t.(type) {
	case *Scalar:
		v, cerr := completeScalar(tt, value)
		if cerr != nil {
			ctx.addErr(&Error{Message: cerr.Error(), Path: path})
			return nil, false
		}
		return v, false

	case *Enum:
		v, cerr := completeEnum(tt, value)
		if cerr != nil {
			ctx.addErr(&Error{Message: cerr.Error(), Path: path})
			return nil, false
		}
		return v, false

	case *List:
		return completeList(ctx, tt, value, selSet, path)

	case *ObjectType:
		rm, propagate := executeSelectionSet(ctx, tt, value, selSet, path, false)
		if propagate {
			return nil, true
		}
		return rm, false

	default:
		ctx.addErr(&Error{Message: fmt.Sprintf("unsupported output type %T", t), Path: path})
		return nil, false
	}
}

// completeList resolves every element of a resolved slice against the
// list's element type, using reflection the way the teacher's
// executeList does (_examples/qktrzrj-graphql/execution/execute.go) since
// resolvers are free to return any concrete slice type.
func completeList(ctx *execContext, lt *List, value interface{}, selSet *SelectionSet, path []PathSegment) (interface{}, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		ctx.addErr(&Error{Message: fmt.Sprintf("resolved value for a list field is not a slice: %T", value), Path: path})
		return nil, false
	}
	elemType, ok := lt.Type.(OutputType)
	if !ok {
		ctx.addErr(&Error{Message: fmt.Sprintf("list element type %q is not usable as an output type", lt.Type.String()), Path: path})
		return nil, false
	}

	items := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elemPath := withPath(path, i)
		v, propagate := completeValue(ctx, elemType, rv.Index(i).Interface(), nil, selSet, elemPath)
		if propagate {
			return nil, true
		}
		items[i] = v
	}
	return items, false
}

// completeScalar converts a resolver's native Go value into the wire
// representation of one of the five built-in scalars.
func completeScalar(s *Scalar, value interface{}) (interface{}, error) {
	value = unwrapPointer(value)
	if value == nil {
		return nil, nil
	}
	switch s.Name {
	case "Boolean":
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool for Boolean, got %T", value)
		}
		return b, nil
	case "String":
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string for String, got %T", value)
		}
		return str, nil
	case "ID":
		switch v := value.(type) {
		case string:
			return v, nil
		case int:
			return strconv.Itoa(v), nil
		case int32:
			return strconv.FormatInt(int64(v), 10), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		default:
			return nil, fmt.Errorf("expected string or integer for ID, got %T", value)
		}
	case "Int":
		switch v := value.(type) {
		case int:
			return int32(v), nil
		case int32:
			return v, nil
		case int64:
			return int32(v), nil
		default:
			return nil, fmt.Errorf("expected integer for Int, got %T", value)
		}
	case "Float":
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		default:
			return nil, fmt.Errorf("expected number for Float, got %T", value)
		}
	default:
		return nil, fmt.Errorf("unknown scalar %q", s.Name)
	}
}

func completeEnum(e *Enum, value interface{}) (interface{}, error) {
	value = unwrapPointer(value)
	if value == nil {
		return nil, nil
	}
	name, ok := value.(string)
	if !ok {
		if stringer, ok := value.(fmt.Stringer); ok {
			name = stringer.String()
		} else {
			return nil, fmt.Errorf("expected a string-representable value for enum %q, got %T", e.Name, value)
		}
	}
	if !e.Has(name) {
		return nil, fmt.Errorf("%q is not a member of enum %q", name, e.Name)
	}
	return name, nil
}

// unwrapPointer follows pointer chains down to the pointed-to value, or
// nil if any pointer in the chain is nil. Grounded on the teacher's
// unwrap helper (_examples/qktrzrj-graphql/execution/execute.go).
func unwrapPointer(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// isNilReflect reports whether v holds a nil pointer, interface, map,
// slice, chan, or func -- the kinds that can be nil but don't compare
// equal to untyped nil once boxed into an interface{}.
func isNilReflect(v interface{}) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func newResolverFieldError(err error, path []PathSegment) *Error {
	return &Error{
		Message:       sanitizeResolverError(err),
		Path:          path,
		ResolverError: err,
	}
}

// sanitizeResolverError decides what message a resolver/argument error
// shows to the client: a *CoercionError is the client's own fault (bad
// argument, bad variable) so its message is always safe to return;
// anything else defers to the SanitizedError convention in errors.go.
func sanitizeResolverError(err error) string {
	if _, ok := err.(*CoercionError); ok {
		return err.Error()
	}
	return sanitize(err)
}
