package graphql

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
)

// TestResponseMapToWireOrdering exercises the ambient diff/dump tooling
// the rest of the suite uses sparingly: cmp.Diff for a structural
// mismatch report, pretty.Compare as a second, human-skimmable rendering,
// and spew.Sdump when a failure needs the raw value laid out field by
// field. Grounded on the teacher's own use of all three across its test
// suite (e.g. _examples/qktrzrj-graphql/system/parser_test.go).
func TestResponseMapToWireOrdering(t *testing.T) {
	rm := newResponseMap()
	rm.set("b", 2)
	rm.set("a", 1)

	got := rm.ToWire()
	want := []OrderedField{{Key: "b", Value: 2}, {Key: "a", Value: 1}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ToWire() mismatch (-want +got):\n%s\ndebug compare:\n%s\ndump:\n%s",
			diff, pretty.Compare(want, got), spew.Sdump(got))
	}
	assert.Equal(t, []string{"b", "a"}, rm.Keys)
}
