// Package schemabuilder is a reflection-based sugar layer over
// package graphql's low-level type graph (graphql.Type/Registry):
// instead of constructing *graphql.ObjectType/*graphql.Field literals by
// hand, a caller registers plain Go types and methods, and Build walks
// them with reflect to produce a graphql.Schema.
//
// Trimmed from the teacher's schemabuilder
// (_examples/qktrzrj-graphql/schemabuilder) to the subset the engine's
// Open Question decision supports: scalars, enums, input objects, object
// types, lists, and non-null -- no interfaces or unions, since type
// conditions in this engine only ever match concrete object types
// (see SPEC_FULL.md §5).
package schemabuilder

import "reflect"

// Object is a builder for a GraphQL object type backed by the Go type
// typ. Fields are added explicitly via FieldFunc -- plain struct fields
// are not auto-exposed, matching the teacher's "every field is a
// registered resolver" contract.
type Object struct {
	Name   string
	Desc   string
	typ    reflect.Type
	fields map[string]*fieldBuilder
	order  []string
}

type fieldBuilder struct {
	name string
	desc string
	fn   interface{}
}

// FieldFunc registers a resolver for name on the object. fn's signature
// is one of:
//
//	func(source T) (Result, error)
//	func(ctx context.Context, source T) (Result, error)
//	func(source T, args A) (Result, error)
//	func(ctx context.Context, source T, args A) (Result, error)
//
// (the trailing error is optional in every form, and the source parameter
// may be left out, as root Query/Mutation fields do). T must match the
// object's registered Go type and A, if present, must be a struct --
// buildField (resolve.go) inspects fn with reflect to figure out which
// form it is.
func (o *Object) FieldFunc(name string, fn interface{}, desc ...string) {
	if o.fields == nil {
		o.fields = map[string]*fieldBuilder{}
	}
	if _, exists := o.fields[name]; exists {
		panic("schemabuilder: duplicate field " + name + " on " + o.Name)
	}
	d := ""
	if len(desc) > 0 {
		d = desc[0]
	}
	o.fields[name] = &fieldBuilder{name: name, desc: d, fn: fn}
	o.order = append(o.order, name)
}

// InputObject is a builder for a GraphQL input object type backed by the
// Go type typ; its fields are derived automatically from typ's exported
// struct fields (see reflect.go), with FieldDefault overriding the
// default value used when a field is omitted from a query.
type InputObject struct {
	Name     string
	Desc     string
	typ      reflect.Type
	defaults map[string]interface{}
}

// FieldDefault sets the default value used for fieldName when a query
// omits it. fieldName is the input object's field name as derived by
// reflect.go (the Go field name run through strcase, or a `graphql:"..."`
// tag override).
func (io *InputObject) FieldDefault(fieldName string, defaultValue interface{}) {
	if io.defaults == nil {
		io.defaults = map[string]interface{}{}
	}
	io.defaults[fieldName] = defaultValue
}

// Enum describes a Go enum-like type (an integer or string type with a
// fixed set of named values) for registration with Schema.Enum.
type Enum struct {
	Name string
	Desc string
	typ  reflect.Type
	// toName maps a concrete enum value to its GraphQL member name.
	toName map[interface{}]string
	// toValue is the inverse, used when coercing an incoming enum literal
	// back into the Go value a resolver expects.
	toValue map[string]interface{}
}
