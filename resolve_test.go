package graphql

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constResolver(v interface{}) Resolver {
	return func(ctx context.Context, source interface{}, args map[string]Value) (interface{}, error) {
		return v, nil
	}
}

func fieldSel(name, alias string, sub *SelectionSet) Selection {
	return Selection{Kind: SelectField, Field: &FieldSelection{Name: name, Alias: alias, SelectionSet: sub}}
}

func runQuery(t *testing.T, root *ObjectType, selSet *SelectionSet, fragments FragmentTable) *Response {
	t.Helper()
	exec := NewExecutor(WithConcurrency(false))
	op := &Operation{Kind: OperationQuery, SelectionSet: selSet}
	return exec.Execute(context.Background(), &Schema{Query: root}, op, fragments, nil)
}

func TestExecuteAliasAndFieldMerging(t *testing.T) {
	root := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"name": {Type: &NonNull{Type: StringType}, Resolve: constResolver("lisa")},
	}}
	selSet := &SelectionSet{Selections: []Selection{
		fieldSel("name", "a", nil),
		fieldSel("name", "b", nil),
	}}

	resp := runQuery(t, root, selSet, nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, "lisa", resp.Data.Values["a"])
	assert.Equal(t, "lisa", resp.Data.Values["b"])
	assert.Equal(t, []string{"a", "b"}, resp.Data.Keys)
}

func TestExecuteInlineFragmentTypeCondition(t *testing.T) {
	person := &ObjectType{Name: "Person", Fields: map[string]*Field{
		"name": {Type: &NonNull{Type: StringType}, Resolve: constResolver("john")},
		"age":  {Type: &NonNull{Type: IntType}, Resolve: constResolver(int32(15))},
	}}
	root := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"me": {Type: person, Resolve: constResolver(struct{}{})},
	}}

	matching := &SelectionSet{Selections: []Selection{
		fieldSel("name", "", nil),
		{Kind: SelectInlineFragment, InlineFragment: &InlineFragment{
			TypeCondition: "Person",
			SelectionSet:  &SelectionSet{Selections: []Selection{fieldSel("age", "", nil)}},
		}},
	}}
	selSet := &SelectionSet{Selections: []Selection{fieldSel("me", "", matching)}}
	resp := runQuery(t, root, selSet, nil)
	require.Empty(t, resp.Errors)
	me := resp.Data.Values["me"].(*ResponseMap)
	assert.Equal(t, "john", me.Values["name"])
	assert.Equal(t, int32(15), me.Values["age"])

	mismatched := &SelectionSet{Selections: []Selection{
		fieldSel("name", "", nil),
		{Kind: SelectInlineFragment, InlineFragment: &InlineFragment{
			TypeCondition: "Robot",
			SelectionSet:  &SelectionSet{Selections: []Selection{fieldSel("age", "", nil)}},
		}},
	}}
	selSet2 := &SelectionSet{Selections: []Selection{fieldSel("me", "", mismatched)}}
	resp2 := runQuery(t, root, selSet2, nil)
	require.Empty(t, resp2.Errors)
	me2 := resp2.Data.Values["me"].(*ResponseMap)
	_, hasAge := me2.Values["age"]
	assert.False(t, hasAge, "fragment on a non-matching concrete type must not contribute fields")
}

func TestExecuteNamedFragmentSpread(t *testing.T) {
	person := &ObjectType{Name: "Person", Fields: map[string]*Field{
		"name": {Type: &NonNull{Type: StringType}, Resolve: constResolver("lisa")},
	}}
	root := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"me": {Type: person, Resolve: constResolver(struct{}{})},
	}}
	fragments := FragmentTable{
		"Basic": &FragmentDefinition{
			Name:          "Basic",
			TypeCondition: "Person",
			SelectionSet:  &SelectionSet{Selections: []Selection{fieldSel("name", "", nil)}},
		},
	}
	selSet := &SelectionSet{Selections: []Selection{
		fieldSel("me", "", &SelectionSet{Selections: []Selection{
			{Kind: SelectFragmentSpread, FragmentSpread: &FragmentSpread{Name: "Basic"}},
		}}),
	}}

	resp := runQuery(t, root, selSet, fragments)
	require.Empty(t, resp.Errors)
	me := resp.Data.Values["me"].(*ResponseMap)
	assert.Equal(t, "lisa", me.Values["name"])
}

func TestExecuteRecursiveFragmentDoesNotHang(t *testing.T) {
	person := &ObjectType{Name: "Person", Fields: map[string]*Field{
		"name": {Type: &NonNull{Type: StringType}, Resolve: constResolver("lisa")},
	}}
	root := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"me": {Type: person, Resolve: constResolver(struct{}{})},
	}}
	fragments := FragmentTable{
		"A": &FragmentDefinition{
			Name: "A", TypeCondition: "Person",
			SelectionSet: &SelectionSet{Selections: []Selection{
				fieldSel("name", "", nil),
				{Kind: SelectFragmentSpread, FragmentSpread: &FragmentSpread{Name: "B"}},
			}},
		},
		"B": &FragmentDefinition{
			Name: "B", TypeCondition: "Person",
			SelectionSet: &SelectionSet{Selections: []Selection{
				{Kind: SelectFragmentSpread, FragmentSpread: &FragmentSpread{Name: "A"}},
			}},
		},
	}
	selSet := &SelectionSet{Selections: []Selection{
		fieldSel("me", "", &SelectionSet{Selections: []Selection{
			{Kind: SelectFragmentSpread, FragmentSpread: &FragmentSpread{Name: "A"}},
		}}),
	}}

	resp := runQuery(t, root, selSet, fragments)
	require.Empty(t, resp.Errors)
	me := resp.Data.Values["me"].(*ResponseMap)
	assert.Equal(t, "lisa", me.Values["name"])
}

func TestExecuteNonNullPropagationBubblesToParent(t *testing.T) {
	person := &ObjectType{Name: "Person", Fields: map[string]*Field{
		"name": {Type: &NonNull{Type: StringType}, Resolve: func(ctx context.Context, source interface{}, args map[string]Value) (interface{}, error) {
			return nil, NewSafeError("name lookup failed")
		}},
	}}
	root := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"me": {Type: &NonNull{Type: person}, Resolve: constResolver(struct{}{})},
	}}
	selSet := &SelectionSet{Selections: []Selection{
		fieldSel("me", "", &SelectionSet{Selections: []Selection{fieldSel("name", "", nil)}}),
	}}

	resp := runQuery(t, root, selSet, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "name lookup failed", resp.Errors[0].Message)
	assert.Nil(t, resp.Data, "a failing NonNull field under a NonNull root field must null the whole response")

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":null,"errors":[{"message":"name lookup failed","path":["me","name"]}]}`, string(out))
}

// TestExecuteUnknownFieldNotResolved covers end-to-end scenario 6: querying
// a field the object type doesn't declare produces the canonical
// "field <name> not resolved." message, not a type/field-name debug dump.
func TestExecuteUnknownFieldNotResolved(t *testing.T) {
	root := &ObjectType{Name: "Query", Fields: map[string]*Field{}}
	selSet := &SelectionSet{Selections: []Selection{fieldSel("nonexistent", "", nil)}}

	resp := runQuery(t, root, selSet, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "field nonexistent not resolved.", resp.Errors[0].Message)
	assert.Equal(t, []PathSegment{"nonexistent"}, resp.Errors[0].Path)

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"nonexistent":null},"errors":[{"message":"field nonexistent not resolved.","path":["nonexistent"]}]}`, string(out))
}

func TestExecuteSkipAndIncludeDirectives(t *testing.T) {
	root := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"name": {Type: &NonNull{Type: StringType}, Resolve: constResolver("lisa")},
		"age":  {Type: &NonNull{Type: IntType}, Resolve: constResolver(int32(30))},
	}}
	selSet := &SelectionSet{Selections: []Selection{
		fieldSel("name", "", nil),
		{Kind: SelectField, Field: &FieldSelection{
			Name: "age",
			Directives: []Directive{
				{Name: "skip", Arguments: map[string]Literal{"if": {Kind: LitBoolean, Bool: true}}},
			},
		}},
	}}

	resp := runQuery(t, root, selSet, nil)
	require.Empty(t, resp.Errors)
	_, hasAge := resp.Data.Values["age"]
	assert.False(t, hasAge)
	assert.Equal(t, "lisa", resp.Data.Values["name"])
}

func TestExecuteMutationRootRunsFieldsInDocumentOrder(t *testing.T) {
	var order []string
	record := func(name string) Resolver {
		return func(ctx context.Context, source interface{}, args map[string]Value) (interface{}, error) {
			order = append(order, name)
			return name, nil
		}
	}
	mutation := &ObjectType{Name: "Mutation", Fields: map[string]*Field{
		"first":  {Type: &NonNull{Type: StringType}, Resolve: record("first")},
		"second": {Type: &NonNull{Type: StringType}, Resolve: record("second")},
		"third":  {Type: &NonNull{Type: StringType}, Resolve: record("third")},
	}}
	selSet := &SelectionSet{Selections: []Selection{
		fieldSel("third", "", nil),
		fieldSel("first", "", nil),
		fieldSel("second", "", nil),
	}}

	exec := NewExecutor()
	op := &Operation{Kind: OperationMutation, SelectionSet: selSet}
	resp := exec.Execute(context.Background(), &Schema{Query: &ObjectType{Name: "Query", Fields: map[string]*Field{}}, Mutation: mutation}, op, nil, nil)

	require.Empty(t, resp.Errors)
	assert.Equal(t, []string{"third", "first", "second"}, order)
}

func TestExecuteMaxDepthTruncates(t *testing.T) {
	var self *ObjectType
	self = &ObjectType{Name: "Node", Fields: map[string]*Field{}}
	self.Fields["name"] = &Field{Type: &NonNull{Type: StringType}, Resolve: constResolver("x")}
	self.Fields["child"] = &Field{Type: self, Resolve: constResolver(struct{}{})}

	root := &ObjectType{Name: "Query", Fields: map[string]*Field{
		"root": {Type: self, Resolve: constResolver(struct{}{})},
	}}

	deep := &SelectionSet{Selections: []Selection{fieldSel("name", "", nil)}}
	for i := 0; i < 5; i++ {
		deep = &SelectionSet{Selections: []Selection{fieldSel("child", "", deep)}}
	}
	selSet := &SelectionSet{Selections: []Selection{fieldSel("root", "", deep)}}

	exec := NewExecutor(WithMaxDepth(2), WithConcurrency(false))
	op := &Operation{Kind: OperationQuery, SelectionSet: selSet}
	resp := exec.Execute(context.Background(), &Schema{Query: root}, op, nil, nil)
	require.NotEmpty(t, resp.Errors)
}
