package graphql

import (
	"fmt"
	"sort"
)

// Kind tags the dynamic type carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBoolean
	KindString
	KindEnum
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindString:
		return "String"
	case KindEnum:
		return "Enum"
	case KindList:
		return "List"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is the engine's internal representation of a GraphQL input or
// output value, independent of any wire format. It is a tagged union: only
// the field matching Kind is meaningful.
//
// Value is used both for coerced variables/arguments (input values) and for
// values produced by resolvers before they are completed against an output
// type (output values) -- the two are the same shape, distinguished only by
// where in the pipeline they appear.
type Value struct {
	Kind   Kind
	Int    int32
	Float  float64
	Bool   bool
	Str    string // also holds the Enum member name when Kind == KindEnum
	List   []Value
	Object map[string]Value
}

// Null is the null Value.
var Null = Value{Kind: KindNull}

func NewInt(v int32) Value     { return Value{Kind: KindInt, Int: v} }
func NewFloat(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func NewBool(v bool) Value     { return Value{Kind: KindBoolean, Bool: v} }
func NewString(v string) Value { return Value{Kind: KindString, Str: v} }
func NewEnum(name string) Value { return Value{Kind: KindEnum, Str: name} }
func NewList(v []Value) Value  { return Value{Kind: KindList, List: v} }
func NewObject(v map[string]Value) Value {
	return Value{Kind: KindObject, Object: v}
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Field looks up a key in an Object value. Returns the null Value and false
// if v is not an object or the key is absent.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind != KindObject {
		return Null, false
	}
	fv, ok := v.Object[name]
	return fv, ok
}

// Equal reports whether two values are structurally identical.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindBoolean:
		return v.Bool == o.Bool
	case KindString, KindEnum:
		return v.Str == o.Str
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.Object) != len(o.Object) {
			return false
		}
		for k, vv := range v.Object {
			ov, ok := o.Object[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ToWire converts a Value into its deterministic wire (JSON-like)
// representation: Null -> nil, Int/Float -> number, Boolean -> bool,
// String -> string, Enum -> string, List -> []interface{}, Object ->
// map[string]interface{}. Ranging over that map has no defined key order
// (encoding/json sorts its keys when marshaling); callers that need an
// explicit lexicographic key order should use ToOrderedWire.
func (v Value) ToWire() interface{} {
	switch v.Kind {
	case KindNull:
		return nil
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBoolean:
		return v.Bool
	case KindString, KindEnum:
		return v.Str
	case KindList:
		out := make([]interface{}, len(v.List))
		for i, elem := range v.List {
			out[i] = elem.ToWire()
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.Object))
		for k, fv := range v.Object {
			out[k] = fv.ToWire()
		}
		return out
	default:
		panic(fmt.Sprintf("graphql: unknown value kind %v", v.Kind))
	}
}

// OrderedField is a single key/value pair of an object rendered with an
// explicit key order: lexicographic from ToOrderedWire, request order from
// ResponseMap.ToWire.
type OrderedField struct {
	Key   string
	Value interface{}
}

// ToOrderedWire is like ToWire but returns object fields as an
// order-preserving slice sorted lexicographically by key, matching the
// canonical output ordering spec.md §3 mandates for Object values produced
// by the engine (as opposed to insertion-ordered ResponseMaps, which keep
// source order -- see resolve.go).
func (v Value) ToOrderedWire() interface{} {
	switch v.Kind {
	case KindObject:
		keys := make([]string, 0, len(v.Object))
		for k := range v.Object {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]OrderedField, 0, len(keys))
		for _, k := range keys {
			out = append(out, OrderedField{Key: k, Value: v.Object[k].ToOrderedWire()})
		}
		return out
	case KindList:
		out := make([]interface{}, len(v.List))
		for i, elem := range v.List {
			out[i] = elem.ToOrderedWire()
		}
		return out
	default:
		return v.ToWire()
	}
}
