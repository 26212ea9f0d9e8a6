package schemabuilder

import (
	"fmt"
	"reflect"

	"github.com/lennroth/graphql"
)

// queryRoot and mutationRoot are the placeholder Go types backing the
// schema's root objects -- root field resolvers never receive a real
// source value (Executor.Execute calls the root selection set with a nil
// source), so FieldFunc on a root Object never declares a source
// parameter and these types exist only to give the root Object a distinct,
// cacheable reflect.Type.
type queryRoot struct{}
type mutationRoot struct{}

// Schema accumulates Object/InputObject/Enum registrations keyed by the Go
// type backing each one, then Build walks the registration graph with
// reflect to produce a *graphql.Schema. Grounded on the teacher's
// schemabuilder.Schema (_examples/qktrzrj-graphql/schemabuilder/schema.go),
// trimmed to the type kinds this engine supports.
type Schema struct {
	query        *Object
	mutation     *Object
	objects      map[reflect.Type]*Object
	inputObjects map[reflect.Type]*InputObject
	enums        map[reflect.Type]*Enum
	idTypes      map[reflect.Type]struct{}
}

// NewSchema returns an empty Schema ready for registration.
func NewSchema() *Schema {
	return &Schema{
		objects:      map[reflect.Type]*Object{},
		inputObjects: map[reflect.Type]*InputObject{},
		enums:        map[reflect.Type]*Enum{},
		idTypes:      map[reflect.Type]struct{}{},
	}
}

// Query returns the schema's query root, creating it on first use.
func (s *Schema) Query() *Object {
	if s.query == nil {
		s.query = &Object{Name: "Query", typ: reflect.TypeOf(queryRoot{})}
	}
	return s.query
}

// Mutation returns the schema's mutation root, creating it on first use.
// A schema need not call Mutation at all -- Build leaves graphql.Schema's
// Mutation field nil in that case, matching spec.md §3's "optional
// Mutation root".
func (s *Schema) Mutation() *Object {
	if s.mutation == nil {
		s.mutation = &Object{Name: "Mutation", typ: reflect.TypeOf(mutationRoot{})}
	}
	return s.mutation
}

// Object registers typ (a struct, or pointer to one) as a GraphQL object
// type named name. The returned *Object is used to add fields via
// FieldFunc.
func (s *Schema) Object(name string, typ interface{}, desc ...string) *Object {
	t := indirect(reflect.TypeOf(typ))
	if o, ok := s.objects[t]; ok {
		return o
	}
	o := &Object{Name: name, typ: t}
	if len(desc) > 0 {
		o.Desc = desc[0]
	}
	s.objects[t] = o
	return o
}

// InputObject registers typ as a GraphQL input object type named name,
// with fields derived from typ's exported struct fields.
func (s *Schema) InputObject(name string, typ interface{}, desc ...string) *InputObject {
	t := indirect(reflect.TypeOf(typ))
	if io, ok := s.inputObjects[t]; ok {
		return io
	}
	io := &InputObject{Name: name, typ: t}
	if len(desc) > 0 {
		io.Desc = desc[0]
	}
	s.inputObjects[t] = io
	return io
}

// Enum registers typ as a GraphQL enum type named name. values maps each
// concrete enum value to its GraphQL member name, e.g.:
//
//	s.Enum("Episode", Episode(0), map[interface{}]string{
//	    NewHope: "NEWHOPE", Empire: "EMPIRE", Jedi: "JEDI",
//	})
func (s *Schema) Enum(name string, typ interface{}, values map[interface{}]string, desc ...string) {
	t := indirect(reflect.TypeOf(typ))
	e := &Enum{Name: name, typ: t, toName: map[interface{}]string{}, toValue: map[string]interface{}{}}
	if len(desc) > 0 {
		e.Desc = desc[0]
	}
	for val, memberName := range values {
		e.toName[val] = memberName
		e.toValue[memberName] = val
	}
	s.enums[t] = e
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// builder holds the memoization state needed while Build walks the
// registration graph -- object and input-object types must be cached by
// Go type so that two fields returning the same struct type resolve to
// the identical *graphql.ObjectType pointer (BuildRegistry treats two
// distinct values under one name as a schema error).
type builder struct {
	schema       *Schema
	objectCache  map[reflect.Type]*graphql.ObjectType
	inputCache   map[reflect.Type]*graphql.InputObjectType
	enumCache    map[reflect.Type]*graphql.Enum
}

// Build walks every Object, InputObject, and Enum registered on s and
// produces a *graphql.Schema. The returned schema still needs
// graphql.BuildRegistry to become a servable Registry -- Build only
// assembles the type graph, it does not validate reachability or name
// collisions, both of which BuildRegistry already does.
func (s *Schema) Build() (*graphql.Schema, error) {
	if s.query == nil {
		return nil, fmt.Errorf("schemabuilder: schema has no Query root")
	}
	b := &builder{
		schema:      s,
		objectCache: map[reflect.Type]*graphql.ObjectType{},
		inputCache:  map[reflect.Type]*graphql.InputObjectType{},
		enumCache:   map[reflect.Type]*graphql.Enum{},
	}

	query, err := b.buildObject(s.query.typ, s.query)
	if err != nil {
		return nil, err
	}
	gs := &graphql.Schema{Query: query}

	if s.mutation != nil {
		mutation, err := b.buildObject(s.mutation.typ, s.mutation)
		if err != nil {
			return nil, err
		}
		gs.Mutation = mutation
	}

	return gs, nil
}

func (b *builder) buildObject(t reflect.Type, obj *Object) (*graphql.ObjectType, error) {
	if cached, ok := b.objectCache[t]; ok {
		return cached, nil
	}

	got := &graphql.ObjectType{Name: obj.Name, Desc: obj.Desc, Fields: map[string]*graphql.Field{}}
	b.objectCache[t] = got

	for _, name := range obj.order {
		fb := obj.fields[name]
		field, err := b.buildField(obj, fb)
		if err != nil {
			return nil, fmt.Errorf("schemabuilder: building field %s.%s: %w", obj.Name, name, err)
		}
		got.Fields[name] = field
	}

	return got, nil
}

func (b *builder) buildInputObject(t reflect.Type, io *InputObject) (*graphql.InputObjectType, error) {
	if cached, ok := b.inputCache[t]; ok {
		return cached, nil
	}

	giot := &graphql.InputObjectType{Name: io.Name, Desc: io.Desc, Fields: map[string]*graphql.InputField{}}
	b.inputCache[t] = giot

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		tag := parseFieldTag(f)
		if tag.skip {
			continue
		}

		ft, err := b.inputFieldType(f.Type, tag)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}

		inputField := &graphql.InputField{Type: ft}
		if dv, ok := io.defaults[tag.name]; ok {
			v, err := b.goToValue(ft, dv)
			if err != nil {
				return nil, fmt.Errorf("default for field %s: %w", f.Name, err)
			}
			inputField.DefaultValue = &v
		}

		giot.Fields[tag.name] = inputField
		giot.FieldOrder = append(giot.FieldOrder, tag.name)
	}

	return giot, nil
}

// inputFieldType applies a struct field's graphql tag (nonnull/null
// overrides) on top of the type buildInputType derives from its Go type.
func (b *builder) inputFieldType(t reflect.Type, tag fieldTag) (graphql.InputType, error) {
	base, err := b.buildInputType(t)
	if err != nil {
		return nil, err
	}
	if tag.nonnull {
		if _, ok := base.(*graphql.NonNull); !ok {
			return &graphql.NonNull{Type: base}, nil
		}
	}
	if tag.null {
		if nn, ok := base.(*graphql.NonNull); ok {
			return nn.Type.(graphql.InputType), nil
		}
	}
	return base, nil
}
