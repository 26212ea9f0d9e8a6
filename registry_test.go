package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistryReachability(t *testing.T) {
	petType := &ObjectType{Name: "Pet", Fields: map[string]*Field{
		"name": {Type: &NonNull{Type: StringType}},
	}}
	queryType := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"pet": {Type: petType},
	}}

	registry, err := BuildRegistry(&Schema{Query: queryType})
	require.NoError(t, err)

	_, ok := registry.Lookup("Pet")
	assert.True(t, ok)
	_, ok = registry.Lookup("String")
	assert.True(t, ok)
	_, ok = registry.Lookup("Query")
	assert.True(t, ok)
}

func TestBuildRegistryDetectsDuplicateNames(t *testing.T) {
	typeA := &ObjectType{Name: "Thing", Fields: map[string]*Field{}}
	typeB := &ObjectType{Name: "Thing", Fields: map[string]*Field{}}
	queryType := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"a": {Type: typeA},
		"b": {Type: typeB},
	}}

	_, err := BuildRegistry(&Schema{Query: queryType})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate type name")
}

func TestBuildRegistryRequiresQueryRoot(t *testing.T) {
	_, err := BuildRegistry(&Schema{})
	require.Error(t, err)
}

func TestBuildRegistryFollowsArgumentsAndInputObjects(t *testing.T) {
	filterType := &InputObjectType{
		Name:       "Filter",
		FieldOrder: []string{"term"},
		Fields:     map[string]*InputField{"term": {Type: StringType}},
	}
	queryType := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"search": {
			Type:     StringType,
			ArgOrder: []string{"filter"},
			Arguments: map[string]*Argument{
				"filter": {Type: filterType},
			},
		},
	}}

	registry, err := BuildRegistry(&Schema{Query: queryType})
	require.NoError(t, err)
	_, ok := registry.Lookup("Filter")
	assert.True(t, ok)
}
