package schemabuilder

import (
	"context"
	"fmt"
	"reflect"

	"github.com/lennroth/graphql"
)

// buildField turns a registered fieldBuilder into a *graphql.Field: the
// return type comes from fn's first result, arguments (if any) from fn's
// trailing struct parameter, and the Resolver closure does the reflect
// plumbing of ctx/source/args in and (result, error) out.
//
// Grounded on the teacher's FieldFunc signature-matching idiom
// (_examples/qktrzrj-graphql/schemabuilder/types.go's FieldFunc doc
// comment and resolve.go's getArguments/getArgResolve), rewritten from
// scratch against this engine's map[string]graphql.Value argument
// contract rather than the teacher's internal.InputObject round-trip.
func (b *builder) buildField(obj *Object, fb *fieldBuilder) (*graphql.Field, error) {
	fnVal := reflect.ValueOf(fb.fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("FieldFunc value must be a function, got %s", fnType)
	}

	switch fnType.NumOut() {
	case 1:
		if fnType.Out(0) == errorType {
			return nil, fmt.Errorf("resolver must return a value, not only an error")
		}
	case 2:
		if fnType.Out(1) != errorType {
			return nil, fmt.Errorf("resolver's second return value must be error")
		}
	default:
		return nil, fmt.Errorf("resolver must return (Result) or (Result, error), got %d results", fnType.NumOut())
	}
	returnsErr := fnType.NumOut() == 2
	resultType := fnType.Out(0)

	idx := 0
	hasCtx := false
	if fnType.NumIn() > idx && fnType.In(idx) == contextType {
		hasCtx = true
		idx++
	}

	var sourceType, argsType reflect.Type
	switch fnType.NumIn() - idx {
	case 0:
	case 1:
		p := fnType.In(idx)
		if p == obj.typ {
			sourceType = p
		} else {
			argsType = p
		}
	case 2:
		sourceType = fnType.In(idx)
		argsType = fnType.In(idx + 1)
	default:
		return nil, fmt.Errorf("resolver takes too many parameters")
	}
	if sourceType != nil && sourceType != obj.typ {
		return nil, fmt.Errorf("resolver's source parameter is %s, want %s", sourceType, obj.typ)
	}

	outType, err := b.buildOutputType(resultType)
	if err != nil {
		return nil, err
	}

	field := &graphql.Field{Type: outType, Arguments: map[string]*graphql.Argument{}}

	var argFields []reflect.StructField
	var argTags []fieldTag
	if argsType != nil {
		if argsType.Kind() != reflect.Struct {
			return nil, fmt.Errorf("resolver's args parameter must be a struct, got %s", argsType)
		}
		for i := 0; i < argsType.NumField(); i++ {
			f := argsType.Field(i)
			if f.PkgPath != "" {
				continue
			}
			tag := parseFieldTag(f)
			if tag.skip {
				continue
			}
			at, err := b.inputFieldType(f.Type, tag)
			if err != nil {
				return nil, fmt.Errorf("argument %s: %w", f.Name, err)
			}
			field.Arguments[tag.name] = &graphql.Argument{Type: at}
			field.ArgOrder = append(field.ArgOrder, tag.name)
			argFields = append(argFields, f)
			argTags = append(argTags, tag)
		}
	}

	field.Resolve = func(ctx context.Context, source interface{}, args map[string]graphql.Value) (interface{}, error) {
		in := make([]reflect.Value, 0, fnType.NumIn())
		if hasCtx {
			in = append(in, reflect.ValueOf(ctx))
		}
		if sourceType != nil {
			sv := reflect.ValueOf(source)
			for sv.Kind() == reflect.Ptr && !sv.IsNil() {
				sv = sv.Elem()
			}
			if !sv.IsValid() || sv.Kind() == reflect.Ptr {
				sv = reflect.Zero(sourceType)
			}
			in = append(in, sv)
		}
		if argsType != nil {
			av := reflect.New(argsType).Elem()
			for i, f := range argFields {
				tag := argTags[i]
				val, ok := args[tag.name]
				if !ok {
					continue
				}
				fv, err := b.valueToGo(f.Type, val)
				if err != nil {
					return nil, fmt.Errorf("argument %s: %w", tag.name, err)
				}
				av.Field(i).Set(fv)
			}
			if err := NewValidate().Struct(av.Interface()); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			in = append(in, av)
		}

		out := fnVal.Call(in)
		var resolveErr error
		if returnsErr {
			if e := out[1].Interface(); e != nil {
				resolveErr = e.(error)
			}
		}
		resultVal := out[0].Interface()
		if enumDef, ok := b.schema.enums[indirect(resultType)]; ok {
			name, err := b.encodeEnumResult(enumDef, resultVal)
			if err != nil {
				return nil, err
			}
			resultVal = name
		}
		return resultVal, resolveErr
	}

	return field, nil
}

// encodeEnumResult converts a resolver's raw Go enum value into the member
// name the core engine expects a *graphql.Enum to complete
// (graphql.completeEnum only understands a string or fmt.Stringer) --
// this is the encoding side of the toName table Schema.Enum populates,
// so a resolver can return the bare Go enum value without needing to
// implement fmt.Stringer itself.
func (b *builder) encodeEnumResult(enumDef *Enum, v interface{}) (interface{}, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, nil
	}
	name, ok := enumDef.toName[rv.Interface()]
	if !ok {
		return nil, fmt.Errorf("%v is not a registered member of enum %s", v, enumDef.Name)
	}
	return name, nil
}

// valueToGo decodes a coerced graphql.Value into a Go value assignable to
// t, the inverse of the arguments flow coerce.go already performs in the
// other direction (literal/variable -> Value). Struct destinations must be
// a registered InputObject so field names can be resolved the same way
// buildInputObject derived them.
func (b *builder) valueToGo(t reflect.Type, v graphql.Value) (reflect.Value, error) {
	if t.Kind() == reflect.Ptr {
		if v.IsNull() {
			return reflect.Zero(t), nil
		}
		elem, err := b.valueToGo(t.Elem(), v)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}

	if v.IsNull() {
		return reflect.Zero(t), nil
	}

	if enum, ok := b.schema.enums[t]; ok {
		goVal, ok := enum.toValue[v.Str]
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown enum value %q for %s", v.Str, enum.Name)
		}
		return reflect.ValueOf(goVal).Convert(t), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return reflect.ValueOf(v.Bool).Convert(t), nil

	case reflect.String:
		return reflect.ValueOf(v.Str).Convert(t), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(v.Int).Convert(t), nil

	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(v.Float).Convert(t), nil

	case reflect.Slice:
		out := reflect.MakeSlice(t, len(v.List), len(v.List))
		for i, elem := range v.List {
			ev, err := b.valueToGo(t.Elem(), elem)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil

	case reflect.Struct:
		out := reflect.New(t).Elem()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
			}
			tag := parseFieldTag(f)
			if tag.skip {
				continue
			}
			fv, ok := v.Object[tag.name]
			if !ok {
				continue
			}
			decoded, err := b.valueToGo(f.Type, fv)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("field %s: %w", f.Name, err)
			}
			out.Field(i).Set(decoded)
		}
		return out, nil

	default:
		return reflect.Value{}, fmt.Errorf("don't know how to decode a value into Go type %s", t)
	}
}

// goToValue encodes a Go default value (as passed to InputObject.FieldDefault)
// into a graphql.Value matching ft, the direction valueToGo does not cover.
func (b *builder) goToValue(ft graphql.InputType, goVal interface{}) (graphql.Value, error) {
	if goVal == nil {
		return graphql.Null, nil
	}

	switch t := ft.(type) {
	case *graphql.NonNull:
		inner, ok := t.Type.(graphql.InputType)
		if !ok {
			return graphql.Value{}, fmt.Errorf("NonNull wraps a non-input type")
		}
		return b.goToValue(inner, goVal)

	case *graphql.List:
		rv := reflect.ValueOf(goVal)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return graphql.Value{}, fmt.Errorf("default value for a list field must be a slice, got %T", goVal)
		}
		elemType, ok := t.Type.(graphql.InputType)
		if !ok {
			return graphql.Value{}, fmt.Errorf("list wraps a non-input type")
		}
		out := make([]graphql.Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := b.goToValue(elemType, rv.Index(i).Interface())
			if err != nil {
				return graphql.Value{}, err
			}
			out[i] = ev
		}
		return graphql.NewList(out), nil

	case *graphql.Enum:
		name, ok := enumMemberName(t, goVal)
		if !ok {
			return graphql.Value{}, fmt.Errorf("%v is not a member of enum %s", goVal, t.Name)
		}
		return graphql.NewEnum(name), nil

	case *graphql.Scalar:
		rv := reflect.ValueOf(goVal)
		switch t {
		case graphql.BooleanType:
			return graphql.NewBool(rv.Bool()), nil
		case graphql.StringType, graphql.IDType:
			return graphql.NewString(fmt.Sprintf("%v", goVal)), nil
		case graphql.IntType:
			return graphql.NewInt(int32(reflect.ValueOf(goVal).Convert(reflect.TypeOf(int64(0))).Int())), nil
		case graphql.FloatType:
			return graphql.NewFloat(toFloat64(rv)), nil
		default:
			return graphql.Value{}, fmt.Errorf("unsupported scalar %s for a default value", t.Name)
		}

	default:
		return graphql.Value{}, fmt.Errorf("unsupported input type %T for a default value", ft)
	}
}

func toFloat64(rv reflect.Value) float64 {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	default:
		return 0
	}
}

func enumMemberName(e *graphql.Enum, goVal interface{}) (string, bool) {
	if s, ok := goVal.(string); ok && e.Has(s) {
		return s, true
	}
	if s, ok := goVal.(fmt.Stringer); ok && e.Has(s.String()) {
		return s.String(), true
	}
	return "", false
}
