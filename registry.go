package graphql

import "fmt"

// SchemaError reports a problem discovered while building a Registry from
// a Schema, before any request is ever served.
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string { return "graphql: schema error: " + e.Message }

// duplicateNameError builds the SchemaError returned when two distinct type
// definitions claim the same schema name during registry construction.
func duplicateNameError(name string) error {
	return &SchemaError{Message: fmt.Sprintf("duplicate type name %q", name)}
}

// Registry is the immutable, typed description of every schema entity
// reachable from the schema's roots (C1 in spec.md §4.1). It is built once
// from a Schema and is safe to share, read-only, across concurrent
// requests.
type Registry struct {
	types map[string]NamedType
}

// Lookup returns the named type registered under name, or false if no such
// type was reachable from the schema roots.
func (r *Registry) Lookup(name string) (NamedType, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Len reports how many distinct named types the registry holds.
func (r *Registry) Len() int { return len(r.types) }

// BuildRegistry performs the depth-first reachability traversal described
// in spec.md §4.1: starting from schema.Query (and schema.Mutation, if
// present), it visits object-field return types, object-field argument
// types, and input-object field types, following List/NonNull wrappers,
// recording every named type it encounters. Revisiting an already-known
// name is a no-op, which both terminates cycles and is the sole place two
// same-named-but-distinct type definitions are caught.
//
// Grounded on the teacher's construction-is-a-pure-DFS shape
// (_examples/qktrzrj-graphql/internal/build.go's builder scaffolding and
// execution/selection.go's unwrapType helper), generalized into a
// standalone, reusable reachability pass instead of being interleaved with
// parsing.
func BuildRegistry(schema *Schema) (*Registry, error) {
	if schema == nil || schema.Query == nil {
		return nil, &SchemaError{Message: "schema must declare a Query root"}
	}

	r := &Registry{types: make(map[string]NamedType)}

	var visitType func(Type) error
	var visitObject func(*ObjectType) error
	var visitInputObject func(*InputObjectType) error

	record := func(nt NamedType) (alreadySeen bool, err error) {
		name := nt.TypeName()
		if existing, ok := r.types[name]; ok {
			if existing != nt {
				return false, duplicateNameError(name)
			}
			return true, nil
		}
		r.types[name] = nt
		return false, nil
	}

	visitType = func(t Type) error {
		switch tt := t.(type) {
		case nil:
			return nil
		case *List:
			return visitType(tt.Type)
		case *NonNull:
			if _, ok := tt.Type.(*NonNull); ok {
				return &SchemaError{Message: "NonNull may not wrap another NonNull"}
			}
			return visitType(tt.Type)
		case *Scalar:
			_, err := record(tt)
			return err
		case *Enum:
			_, err := record(tt)
			return err
		case *InputObjectType:
			seen, err := record(tt)
			if err != nil || seen {
				return err
			}
			return visitInputObject(tt)
		case *ObjectType:
			seen, err := record(tt)
			if err != nil || seen {
				return err
			}
			return visitObject(tt)
		default:
			return &SchemaError{Message: fmt.Sprintf("unknown type kind %T", t)}
		}
	}

	visitInputObject = func(o *InputObjectType) error {
		for _, name := range o.FieldOrder {
			f := o.Fields[name]
			if f == nil {
				continue
			}
			if err := visitType(f.Type); err != nil {
				return err
			}
		}
		return nil
	}

	visitObject = func(o *ObjectType) error {
		for _, f := range o.Fields {
			if err := visitType(f.Type); err != nil {
				return err
			}
			for _, argName := range f.ArgOrder {
				arg := f.Arguments[argName]
				if arg == nil {
					continue
				}
				if err := visitType(arg.Type); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := visitType(schema.Query); err != nil {
		return nil, err
	}
	if schema.Mutation != nil {
		if err := visitType(schema.Mutation); err != nil {
			return nil, err
		}
	}

	return r, nil
}
