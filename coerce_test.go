package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceVariableValuesDefaultsAndMissing(t *testing.T) {
	def := LitInt
	defLit := Literal{Kind: def, Int: 42}
	declared := []VariableDefinition{
		{Name: "limit", Type: IntType, DefaultValue: &defLit},
		{Name: "required", Type: &NonNull{Type: StringType}},
	}

	_, err := coerceVariableValues(declared, map[string]interface{}{"required": "x"})
	require.NoError(t, err)

	vars, err := coerceVariableValues(declared, map[string]interface{}{"required": "x"})
	require.NoError(t, err)
	assert.Equal(t, NewInt(42), vars["limit"])

	_, err = coerceVariableValues(declared, map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required variable")
}

func TestCoerceVariableValueListSingletonWrap(t *testing.T) {
	listType := &List{Type: StringType}
	v, err := coerceVariableValue(listType, "solo", "tags")
	require.NoError(t, err)
	assert.Equal(t, NewList([]Value{NewString("solo")}), v)

	v, err = coerceVariableValue(listType, []interface{}{"a", "b"}, "tags")
	require.NoError(t, err)
	assert.Equal(t, NewList([]Value{NewString("a"), NewString("b")}), v)
}

func TestCoerceVariableValueIntRules(t *testing.T) {
	v, err := coerceVariableValue(IntType, float64(5), "n")
	require.NoError(t, err)
	assert.Equal(t, NewInt(5), v)

	_, err = coerceVariableValue(IntType, float64(5.5), "n")
	require.Error(t, err)

	_, err = coerceVariableValue(IntType, float64(1<<40), "n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of 32-bit range")
}

func TestCoerceVariableValueIDAcceptsIntOrString(t *testing.T) {
	v, err := coerceVariableValue(IDType, "abc", "id")
	require.NoError(t, err)
	assert.Equal(t, NewString("abc"), v)

	v, err = coerceVariableValue(IDType, float64(2000), "id")
	require.NoError(t, err)
	assert.Equal(t, NewString("2000"), v)
}

func TestCoerceVariableValueFloatWidensFromInt(t *testing.T) {
	v, err := coerceVariableValue(FloatType, 3, "n")
	require.NoError(t, err)
	assert.Equal(t, NewFloat(3), v)
}

func TestCoerceVariableValueNonNullRejectsNull(t *testing.T) {
	_, err := coerceVariableValue(&NonNull{Type: StringType}, nil, "name")
	// An explicit null for a NonNull type fails coercion, just as a missing
	// NonNull variable does in coerceVariableValues.
	require.Error(t, err)
}

func TestCoerceArgumentValuesAppliesDefaultsAndDetectsMissing(t *testing.T) {
	defVal := NewInt(10)
	field := &Field{
		ArgOrder: []string{"limit", "name"},
		Arguments: map[string]*Argument{
			"limit": {Type: IntType, DefaultValue: &defVal},
			"name":  {Type: &NonNull{Type: StringType}},
		},
	}

	_, err := coerceArgumentValues(field, map[string]Literal{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required argument")

	args, err := coerceArgumentValues(field, map[string]Literal{
		"name": {Kind: LitString, Str: "lisa"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, NewInt(10), args["limit"])
	assert.Equal(t, NewString("lisa"), args["name"])
}

func TestCoerceLiteralResolvesVariableReference(t *testing.T) {
	vars := map[string]Value{"name": NewString("lisa")}
	v, err := coerceLiteral(&NonNull{Type: StringType}, Literal{Kind: LitVariable, Str: "name"}, vars, "arg")
	require.NoError(t, err)
	assert.Equal(t, NewString("lisa"), v)

	_, err = coerceLiteral(&NonNull{Type: StringType}, Literal{Kind: LitVariable, Str: "missing"}, vars, "arg")
	require.Error(t, err)
}

func TestCoerceScalarLiteralIntToFloatWidening(t *testing.T) {
	v, err := coerceScalarLiteral(FloatType, Literal{Kind: LitInt, Int: 7}, "n")
	require.NoError(t, err)
	assert.Equal(t, NewFloat(7), v)
}
