package graphql

import (
	"fmt"
	"math"
	"strconv"
)

// CoercionError is a request-level error raised while converting
// externally-typed values into the engine's Value representation (spec.md
// §4.3). Coercion is all-or-nothing: the first CoercionError aborts the
// whole coerceVariableValues/coerceArgumentValues call.
type CoercionError struct {
	Path    string // dotted variable/field/argument path, for messages
	Message string
}

func (e *CoercionError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func coercionErrf(path, format string, a ...interface{}) error {
	return &CoercionError{Path: path, Message: fmt.Sprintf(format, a...)}
}

// coerceVariableValues implements spec.md §4.3.1: for each declared
// variable, either take the caller-supplied raw value (coercing it
// against the declared type), fall back to a declared default literal, or
// -- for a NonNull variable with neither -- fail.
//
// Grounded on
// _examples/qktrzrj-graphql/execution/selection.go's variable-binding loop
// in ApplySelectionSet, generalized to produce typed Values instead of
// loosely-typed map[string]interface{}, and on
// _examples/other_examples/4cf6d46f_zombiezen-graphql-server__graphql-value.go.go's
// coerceArgumentValues default-value fallback shape.
func coerceVariableValues(declared []VariableDefinition, raw map[string]interface{}) (map[string]Value, error) {
	out := make(map[string]Value, len(declared))
	for _, decl := range declared {
		rawValue, present := raw[decl.Name]
		if !present {
			if decl.DefaultValue != nil {
				v, err := literalToValue(*decl.DefaultValue, nil)
				if err != nil {
					return nil, coercionErrf(decl.Name, "invalid default value: %s", err)
				}
				out[decl.Name] = v
				continue
			}
			if IsNonNull(decl.Type) {
				return nil, coercionErrf(decl.Name, "missing required variable %q", decl.Name)
			}
			out[decl.Name] = Null
			continue
		}
		v, err := coerceVariableValue(decl.Type, rawValue, decl.Name)
		if err != nil {
			return nil, err
		}
		out[decl.Name] = v
	}
	return out, nil
}

// coerceVariableValue implements the per-type rules of spec.md §4.3.1.
// raw is a format-native value: nil, bool, a number (float64, float32,
// int, int32 or int64), string, []interface{}, or map[string]interface{},
// which covers what encoding/json.Unmarshal produces into an interface{}.
// json.Number is not accepted as a number.
func coerceVariableValue(t InputType, raw interface{}, path string) (Value, error) {
	if raw == nil {
		if IsNonNull(t) {
			return Value{}, coercionErrf(path, "must not be null")
		}
		return Null, nil
	}

	switch tt := t.(type) {
	case *NonNull:
		v, err := coerceVariableValue(tt.Type, raw, path)
		if err != nil {
			return Value{}, err
		}
		if v.IsNull() {
			return Value{}, coercionErrf(path, "must not be null")
		}
		return v, nil

	case *List:
		if arr, ok := raw.([]interface{}); ok {
			items := make([]Value, len(arr))
			for i, elem := range arr {
				v, err := coerceVariableValue(elementType(tt.Type), elem, fmt.Sprintf("%s[%d]", path, i))
				if err != nil {
					return Value{}, err
				}
				items[i] = v
			}
			return NewList(items), nil
		}
		// Input coercion rule: a non-list raw value is coerced against the
		// element type and wrapped in a singleton list.
		v, err := coerceVariableValue(tt.Type, raw, path)
		if err != nil {
			return Value{}, err
		}
		return NewList([]Value{v}), nil

	case *Scalar:
		return coerceScalarVariable(tt, raw, path)

	case *Enum:
		s, ok := raw.(string)
		if !ok {
			return Value{}, coercionErrf(path, "expected enum name string, got %T", raw)
		}
		return NewEnum(s), nil

	case *InputObjectType:
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return Value{}, coercionErrf(path, "expected object, got %T", raw)
		}
		fields := make(map[string]Value, len(tt.FieldOrder))
		for _, fname := range tt.FieldOrder {
			f := tt.Fields[fname]
			if rv, present := obj[fname]; present {
				v, err := coerceVariableValue(f.Type, rv, path+"."+fname)
				if err != nil {
					return Value{}, err
				}
				fields[fname] = v
				continue
			}
			if f.DefaultValue != nil {
				fields[fname] = *f.DefaultValue
				continue
			}
			if IsNonNull(f.Type) {
				return Value{}, coercionErrf(path+"."+fname, "missing required field %q", fname)
			}
			fields[fname] = Null
		}
		for key := range obj {
			if _, ok := tt.Fields[key]; !ok {
				return Value{}, coercionErrf(path, "unknown field %q for input type %q", key, tt.Name)
			}
		}
		return NewObject(fields), nil

	default:
		return Value{}, coercionErrf(path, "unsupported input type %T", t)
	}
}

// elementType returns a list's element type t unchanged; it only names the
// element type at the array-element call site. A NonNull element type is
// enforced by coerceVariableValue itself for every element.
func elementType(t InputType) InputType { return t }

func coerceScalarVariable(s *Scalar, raw interface{}, path string) (Value, error) {
	switch s.Name {
	case "Boolean":
		b, ok := raw.(bool)
		if !ok {
			return Value{}, coercionErrf(path, "expected Boolean, got %T", raw)
		}
		return NewBool(b), nil

	case "String":
		str, ok := raw.(string)
		if !ok {
			return Value{}, coercionErrf(path, "expected String, got %T", raw)
		}
		return NewString(str), nil

	case "ID":
		switch v := raw.(type) {
		case string:
			return NewString(v), nil
		case float64:
			if v != math.Trunc(v) {
				return Value{}, coercionErrf(path, "ID integer must not have a fractional part")
			}
			return NewString(strconv.FormatInt(int64(v), 10)), nil
		case int:
			return NewString(strconv.Itoa(v)), nil
		case int32:
			return NewString(strconv.FormatInt(int64(v), 10)), nil
		case int64:
			return NewString(strconv.FormatInt(v, 10)), nil
		default:
			return Value{}, coercionErrf(path, "expected ID string or integer, got %T", raw)
		}

	case "Int":
		f, ok := asNumber(raw)
		if !ok {
			return Value{}, coercionErrf(path, "expected Int, got %T", raw)
		}
		if f != math.Trunc(f) {
			return Value{}, coercionErrf(path, "Int value %v has a fractional component", f)
		}
		if f < math.MinInt32 || f > math.MaxInt32 {
			return Value{}, coercionErrf(path, "Int value %v out of 32-bit range", f)
		}
		return NewInt(int32(f)), nil

	case "Float":
		f, ok := asNumber(raw)
		if !ok {
			return Value{}, coercionErrf(path, "expected Float, got %T", raw)
		}
		return NewFloat(f), nil

	default:
		return Value{}, coercionErrf(path, "unknown scalar %q", s.Name)
	}
}

func asNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// coerceArgumentValues implements spec.md §4.3.2: it coerces a field's
// argument literals (from the query AST, with $variable references
// pre-resolved against variables) against the field's declared argument
// types, applying defaults for absent arguments. The widening/
// canonicalization rules are the same as coerceVariableValue (int->float,
// int->ID stringification); the difference is the source shape is a
// Literal (which can name a variable), not a raw JSON value.
func coerceArgumentValues(field *Field, argLiterals map[string]Literal, variables map[string]Value) (map[string]Value, error) {
	out := make(map[string]Value, len(field.ArgOrder))
	for _, name := range field.ArgOrder {
		arg := field.Arguments[name]
		lit, present := argLiterals[name]
		if !present {
			if arg.DefaultValue != nil {
				out[name] = *arg.DefaultValue
				continue
			}
			if IsNonNull(arg.Type) {
				return nil, coercionErrf(name, "missing required argument %q", name)
			}
			out[name] = Null
			continue
		}
		v, err := coerceLiteral(arg.Type, lit, variables, name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// literalToValue coerces a literal with no enclosing declared type context
// (used for default-value literals attached directly to a Value, which
// the schema author already typed correctly at construction time). It
// rejects variable references, which are never valid inside a default
// value literal.
func literalToValue(lit Literal, variables map[string]Value) (Value, error) {
	switch lit.Kind {
	case LitNull:
		return Null, nil
	case LitInt:
		return NewInt(lit.Int), nil
	case LitFloat:
		return NewFloat(lit.Float), nil
	case LitBoolean:
		return NewBool(lit.Bool), nil
	case LitString:
		return NewString(lit.Str), nil
	case LitEnum:
		return NewEnum(lit.Str), nil
	case LitVariable:
		if v, ok := variables[lit.Str]; ok {
			return v, nil
		}
		return Value{}, fmt.Errorf("undefined variable $%s", lit.Str)
	case LitList:
		items := make([]Value, len(lit.List))
		for i, elem := range lit.List {
			v, err := literalToValue(elem, variables)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return NewList(items), nil
	case LitObject:
		fields := make(map[string]Value, len(lit.Object))
		for k, elem := range lit.Object {
			v, err := literalToValue(elem, variables)
			if err != nil {
				return Value{}, err
			}
			fields[k] = v
		}
		return NewObject(fields), nil
	default:
		return Value{}, fmt.Errorf("unknown literal kind %v", lit.Kind)
	}
}

// coerceLiteral applies the type-directed coercion rules of spec.md
// §4.3.2 to a literal, resolving $variable references against variables
// as it goes.
func coerceLiteral(t InputType, lit Literal, variables map[string]Value, path string) (Value, error) {
	if lit.Kind == LitVariable {
		v, ok := variables[lit.Str]
		if !ok {
			return Value{}, coercionErrf(path, "undefined variable $%s", lit.Str)
		}
		if v.IsNull() && IsNonNull(t) {
			return Value{}, coercionErrf(path, "variable $%s is null for non-null type %s", lit.Str, t.String())
		}
		return v, nil
	}
	if lit.Kind == LitNull {
		if IsNonNull(t) {
			return Value{}, coercionErrf(path, "must not be null")
		}
		return Null, nil
	}

	switch tt := t.(type) {
	case *NonNull:
		return coerceLiteral(tt.Type, lit, variables, path)

	case *List:
		if lit.Kind == LitList {
			items := make([]Value, len(lit.List))
			for i, elem := range lit.List {
				v, err := coerceLiteral(tt.Type, elem, variables, fmt.Sprintf("%s[%d]", path, i))
				if err != nil {
					return Value{}, err
				}
				items[i] = v
			}
			return NewList(items), nil
		}
		v, err := coerceLiteral(tt.Type, lit, variables, path)
		if err != nil {
			return Value{}, err
		}
		return NewList([]Value{v}), nil

	case *Scalar:
		return coerceScalarLiteral(tt, lit, path)

	case *Enum:
		if lit.Kind != LitEnum {
			return Value{}, coercionErrf(path, "expected enum value, got %v", lit.Kind)
		}
		return NewEnum(lit.Str), nil

	case *InputObjectType:
		if lit.Kind != LitObject {
			return Value{}, coercionErrf(path, "expected input object, got %v", lit.Kind)
		}
		fields := make(map[string]Value, len(tt.FieldOrder))
		for _, fname := range tt.FieldOrder {
			f := tt.Fields[fname]
			if flit, present := lit.Object[fname]; present {
				v, err := coerceLiteral(f.Type, flit, variables, path+"."+fname)
				if err != nil {
					return Value{}, err
				}
				fields[fname] = v
				continue
			}
			if f.DefaultValue != nil {
				fields[fname] = *f.DefaultValue
				continue
			}
			if IsNonNull(f.Type) {
				return Value{}, coercionErrf(path+"."+fname, "missing required field %q", fname)
			}
			fields[fname] = Null
		}
		for key := range lit.Object {
			if _, ok := tt.Fields[key]; !ok {
				return Value{}, coercionErrf(path, "unknown field %q for input type %q", key, tt.Name)
			}
		}
		return NewObject(fields), nil

	default:
		return Value{}, coercionErrf(path, "unsupported input type %T", t)
	}
}

func coerceScalarLiteral(s *Scalar, lit Literal, path string) (Value, error) {
	switch s.Name {
	case "Boolean":
		if lit.Kind != LitBoolean {
			return Value{}, coercionErrf(path, "expected Boolean literal")
		}
		return NewBool(lit.Bool), nil
	case "String":
		if lit.Kind != LitString {
			return Value{}, coercionErrf(path, "expected String literal")
		}
		return NewString(lit.Str), nil
	case "ID":
		switch lit.Kind {
		case LitString:
			return NewString(lit.Str), nil
		case LitInt:
			return NewString(strconv.FormatInt(int64(lit.Int), 10)), nil
		default:
			return Value{}, coercionErrf(path, "expected ID string or int literal")
		}
	case "Int":
		if lit.Kind != LitInt {
			return Value{}, coercionErrf(path, "expected Int literal")
		}
		return NewInt(lit.Int), nil
	case "Float":
		switch lit.Kind {
		case LitFloat:
			return NewFloat(lit.Float), nil
		case LitInt: // int -> float widening, spec.md §4.3.2
			return NewFloat(float64(lit.Int)), nil
		default:
			return Value{}, coercionErrf(path, "expected Float literal")
		}
	default:
		return Value{}, coercionErrf(path, "unknown scalar %q", s.Name)
	}
}
