package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	assert.True(t, NewInt(1).Equal(NewInt(1)))
	assert.False(t, NewInt(1).Equal(NewInt(2)))
	assert.False(t, NewInt(1).Equal(NewFloat(1)))
	assert.True(t, Null.Equal(Null))

	a := NewList([]Value{NewString("a"), NewString("b")})
	b := NewList([]Value{NewString("a"), NewString("b")})
	c := NewList([]Value{NewString("a")})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	obj1 := NewObject(map[string]Value{"x": NewInt(1), "y": NewBool(true)})
	obj2 := NewObject(map[string]Value{"y": NewBool(true), "x": NewInt(1)})
	assert.True(t, obj1.Equal(obj2))
}

func TestValueToWire(t *testing.T) {
	v := NewObject(map[string]Value{
		"name": NewString("lisa"),
		"tags": NewList([]Value{NewEnum("TEACHER")}),
	})
	wire := v.ToWire().(map[string]interface{})
	assert.Equal(t, "lisa", wire["name"])
	assert.Equal(t, []interface{}{"TEACHER"}, wire["tags"])
}

func TestValueToOrderedWire(t *testing.T) {
	v := NewObject(map[string]Value{
		"z": NewInt(1),
		"a": NewInt(2),
	})
	ordered := v.ToOrderedWire().([]OrderedField)
	assert.Equal(t, "a", ordered[0].Key)
	assert.Equal(t, "z", ordered[1].Key)
}
