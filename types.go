package graphql

import (
	"context"
	"fmt"
)

// Type corresponds to a GraphQL type: a Scalar, Enum, InputObject, Object,
// List, or NonNull. Adapted from the teacher's internal.Type tagging
// pattern (_examples/qktrzrj-graphql/internal/types.go): a small sealed
// interface with a no-op tag method so arbitrary values can't satisfy it
// by accident.
type Type interface {
	String() string
	isType()
}

// InputType is the subset of Type usable for variables, arguments, and
// input-object fields: Scalar, Enum, InputObject, List, NonNull.
type InputType interface {
	Type
	isInputType()
}

// OutputType is the subset of Type usable for field return types: Scalar,
// Enum, Object, List, NonNull.
type OutputType interface {
	Type
	isOutputType()
}

// NamedType is any Type that carries a globally unique schema name.
type NamedType interface {
	Type
	TypeName() string
}

// Scalar is a leaf input/output type. Coercion and completion handle the
// five GraphQL built-ins (Int, Float, String, Boolean, ID) by name; a
// Scalar with any other name can be declared, but coercing or completing
// a value of it fails with an "unknown scalar" error.
type Scalar struct {
	Name string
	Desc string
}

func (s *Scalar) isType() {}
func (s *Scalar) isInputType() {}
func (s *Scalar) isOutputType() {}
func (s *Scalar) String() string   { return s.Name }
func (s *Scalar) TypeName() string { return s.Name }

var (
	IntType     = &Scalar{Name: "Int", Desc: "The Int scalar type represents a signed 32-bit numeric value."}
	FloatType   = &Scalar{Name: "Float", Desc: "The Float scalar type represents signed double-precision fractional values."}
	StringType  = &Scalar{Name: "String", Desc: "The String scalar type represents textual data."}
	BooleanType = &Scalar{Name: "Boolean", Desc: "The Boolean scalar type represents true or false."}
	IDType      = &Scalar{Name: "ID", Desc: "The ID scalar type represents a unique identifier, serialized as a String."}
)

// Enum is a leaf type whose values are one of a fixed set of names.
type Enum struct {
	Name    string
	Desc    string
	Members map[string]bool
}

func (e *Enum) isType() {}
func (e *Enum) isInputType() {}
func (e *Enum) isOutputType() {}
func (e *Enum) String() string   { return e.Name }
func (e *Enum) TypeName() string { return e.Name }

// Has reports whether name is a declared member of the enum.
func (e *Enum) Has(name string) bool { return e.Members[name] }

// InputField describes one field of an InputObjectType.
type InputField struct {
	Type         InputType
	DefaultValue *Value // nil means "no default"
}

// InputObjectType is a structured collection of named input fields,
// usable anywhere an input type is expected (variables, arguments, nested
// input object fields).
type InputObjectType struct {
	Name   string
	Desc   string
	Fields map[string]*InputField
	// FieldOrder preserves declaration order for deterministic error
	// messages and introspection-style consumers; iteration order of
	// Fields itself is never relied on.
	FieldOrder []string
}

func (o *InputObjectType) isType() {}
func (o *InputObjectType) isInputType() {}
func (o *InputObjectType) String() string   { return o.Name }
func (o *InputObjectType) TypeName() string { return o.Name }

// Argument describes a single argument accepted by an output field.
type Argument struct {
	Type         InputType
	DefaultValue *Value
}

// Resolver computes the value of a field given its coerced arguments and a
// request-scoped context. It may return any Go value understood by the
// completion routine in resolve.go (a Value, a Future, or a Go primitive
// compatible with the field's declared Scalar), or an error.
type Resolver func(ctx context.Context, source interface{}, args map[string]Value) (interface{}, error)

// Field describes one field of an ObjectType.
type Field struct {
	Type      OutputType
	Arguments map[string]*Argument
	ArgOrder  []string
	Resolve   Resolver
}

// ObjectType is an output type with named, independently resolved fields.
type ObjectType struct {
	Name   string
	Desc   string
	Fields map[string]*Field
}

func (o *ObjectType) isType() {}
func (o *ObjectType) isOutputType() {}
func (o *ObjectType) String() string   { return o.Name }
func (o *ObjectType) TypeName() string { return o.Name }

// List wraps another type, indicating a (possibly empty) ordered sequence
// of it.
type List struct {
	Type Type
}

func (l *List) isType() {}
func (l *List) isInputType()  {}
func (l *List) isOutputType() {}
func (l *List) String() string { return fmt.Sprintf("[%s]", l.Type.String()) }

// NonNull wraps a base type, disallowing a null value at this position.
// NonNull may not itself be wrapped by another NonNull.
type NonNull struct {
	Type Type
}

func (n *NonNull) isType() {}
func (n *NonNull) isInputType()  {}
func (n *NonNull) isOutputType() {}
func (n *NonNull) String() string { return fmt.Sprintf("%s!", n.Type.String()) }

var (
	_ Type = (*Scalar)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*InputObjectType)(nil)
	_ Type = (*ObjectType)(nil)
	_ Type = (*List)(nil)
	_ Type = (*NonNull)(nil)
)

// Schema is the root of a GraphQL type graph: a required Query root and an
// optional Mutation root, both concrete object types (spec.md §3).
type Schema struct {
	Query    *ObjectType
	Mutation *ObjectType
}

// NamedOf strips List/NonNull wrappers and returns the innermost named
// type, or nil if t is nil.
func NamedOf(t Type) NamedType {
	for {
		switch tt := t.(type) {
		case nil:
			return nil
		case *List:
			t = tt.Type
		case *NonNull:
			t = tt.Type
		case NamedType:
			return tt
		default:
			return nil
		}
	}
}

// IsNonNull reports whether t is a NonNull wrapper.
func IsNonNull(t Type) bool {
	_, ok := t.(*NonNull)
	return ok
}
