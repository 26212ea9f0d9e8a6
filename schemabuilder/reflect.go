package schemabuilder

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/lennroth/graphql"
)

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// idMarker is not referenced by the builder. No struct-tag option selects
// the GraphQL ID scalar (fieldTag knows only a name, "nonnull", "null" and
// "-"); a Go type maps to ID only when registered with IDTypeOf.
type idMarker struct{}

// IDTypeOf lets a schema register a named string type (e.g. `type UserID
// string`) as the GraphQL ID scalar instead of String.
func (s *Schema) IDTypeOf(typ interface{}) {
	s.idTypes[reflect.TypeOf(typ)] = struct{}{}
}

// fieldTag is the parsed form of a `graphql:"name,opt1,opt2"` struct tag:
// name overrides the derived field name, "nonnull" forces non-null even
// over a pointer field, "null" forces nullable even over a value field,
// and "-" skips the field entirely.
type fieldTag struct {
	skip    bool
	name    string
	nonnull bool
	null    bool
}

func parseFieldTag(f reflect.StructField) fieldTag {
	raw, ok := f.Tag.Lookup("graphql")
	if !ok {
		return fieldTag{name: strcase.ToLowerCamel(f.Name)}
	}
	parts := strings.Split(raw, ",")
	if parts[0] == "-" {
		return fieldTag{skip: true}
	}
	tag := fieldTag{name: parts[0]}
	if tag.name == "" {
		tag.name = strcase.ToLowerCamel(f.Name)
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "nonnull":
			tag.nonnull = true
		case "null":
			tag.null = true
		}
	}
	return tag
}

// buildOutputType derives an OutputType for t: a pointer becomes nullable
// (the pointee's type, not wrapped in NonNull), anything else is wrapped
// in NonNull, matching the common Go-struct convention that a plain field
// is required and a pointer field is optional.
func (b *builder) buildOutputType(t reflect.Type) (graphql.OutputType, error) {
	if t.Kind() == reflect.Ptr {
		inner, err := b.buildOutputTypeBase(t.Elem())
		if err != nil {
			return nil, err
		}
		return inner, nil
	}
	inner, err := b.buildOutputTypeBase(t)
	if err != nil {
		return nil, err
	}
	return &graphql.NonNull{Type: inner}, nil
}

func (b *builder) buildOutputTypeBase(t reflect.Type) (graphql.OutputType, error) {
	if enum, ok := b.schema.enums[t]; ok {
		return b.buildEnum(enum), nil
	}

	if scalar, ok := b.scalarFor(t); ok {
		return scalar, nil
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		elem, err := b.buildOutputType(t.Elem())
		if err != nil {
			return nil, err
		}
		return &graphql.List{Type: elem}, nil

	case reflect.Struct:
		obj, ok := b.schema.objects[t]
		if !ok {
			return nil, fmt.Errorf("schemabuilder: type %s is not registered as an Object", t)
		}
		return b.buildObject(t, obj)

	default:
		return nil, fmt.Errorf("schemabuilder: don't know how to map Go type %s to an output type", t)
	}
}

// buildInputType is buildOutputType's mirror for the input side: a
// pointer is nullable, everything else is NonNull, and struct fields come
// from a registered InputObject instead of an Object.
func (b *builder) buildInputType(t reflect.Type) (graphql.InputType, error) {
	if t.Kind() == reflect.Ptr {
		return b.buildInputTypeBase(t.Elem())
	}
	inner, err := b.buildInputTypeBase(t)
	if err != nil {
		return nil, err
	}
	return &graphql.NonNull{Type: inner}, nil
}

func (b *builder) buildInputTypeBase(t reflect.Type) (graphql.InputType, error) {
	if enum, ok := b.schema.enums[t]; ok {
		return b.buildEnum(enum), nil
	}

	if scalar, ok := b.scalarFor(t); ok {
		return scalar, nil
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		elem, err := b.buildInputType(t.Elem())
		if err != nil {
			return nil, err
		}
		return &graphql.List{Type: elem}, nil

	case reflect.Struct:
		io, ok := b.schema.inputObjects[t]
		if !ok {
			return nil, fmt.Errorf("schemabuilder: type %s is not registered as an InputObject", t)
		}
		return b.buildInputObject(t, io)

	default:
		return nil, fmt.Errorf("schemabuilder: don't know how to map Go type %s to an input type", t)
	}
}

// scalarFor maps a Go type to one of the five built-in scalars. It returns
// the ID scalar only for a type registered with IDTypeOf; every other
// string kind, plain `string` included, maps to GraphQL String.
func (b *builder) scalarFor(t reflect.Type) (*graphql.Scalar, bool) {
	if _, ok := b.schema.idTypes[t]; ok {
		return graphql.IDType, true
	}
	switch t.Kind() {
	case reflect.Bool:
		return graphql.BooleanType, true
	case reflect.String:
		return graphql.StringType, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return graphql.IntType, true
	case reflect.Float32, reflect.Float64:
		return graphql.FloatType, true
	default:
		return nil, false
	}
}

func (b *builder) buildEnum(e *Enum) *graphql.Enum {
	if cached, ok := b.enumCache[e.typ]; ok {
		return cached
	}
	members := make(map[string]bool, len(e.toValue))
	for name := range e.toValue {
		members[name] = true
	}
	ge := &graphql.Enum{Name: e.Name, Desc: e.Desc, Members: members}
	b.enumCache[e.typ] = ge
	return ge
}
