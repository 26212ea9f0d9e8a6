// Command simple demonstrates wiring a schemabuilder.Schema together and
// running a single hand-built operation through graphql.Executor. Parsing
// a query document into an Operation is outside this engine's scope, so
// this demo constructs one directly instead of depending on a parser.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lennroth/graphql"
	"github.com/lennroth/graphql/schemabuilder"
)

type Identity int

const (
	Student Identity = iota
	Teacher
)

func (i Identity) String() string {
	switch i {
	case Teacher:
		return "TEACHER"
	default:
		return "STUDENT"
	}
}

type Person struct {
	Name     string
	Identity Identity
}

var db = []*Person{
	{"john", Student},
	{"mark", Student},
	{"lisa", Teacher},
}

func registerEnum(schema *schemabuilder.Schema) {
	schema.Enum("Identity", Identity(0), map[interface{}]string{
		Student: "STUDENT",
		Teacher: "TEACHER",
	}, "a person's identity, student or teacher")
}

func registerPerson(schema *schemabuilder.Schema) {
	person := schema.Object("Person", Person{}, "a person, either a student or a teacher")
	person.FieldFunc("name", func(p Person) string { return p.Name })
	person.FieldFunc("identity", func(p Person) Identity { return p.Identity })
	person.FieldFunc("age", func(p Person) int {
		switch p.Name {
		case "john":
			return 15
		case "mark":
			return 17
		case "lisa":
			return 30
		default:
			return 0
		}
	}, "a field with no backing struct field, derived from the name")
}

func registerOperations(schema *schemabuilder.Schema) {
	query := schema.Query()
	query.FieldFunc("all", func() []*Person { return db }, "every person in the directory")
	query.FieldFunc("byName", func(args struct{ Name string }) *Person {
		for _, p := range db {
			if p.Name == args.Name {
				return p
			}
		}
		return nil
	}, "look a person up by exact name")

	mutation := schema.Mutation()
	mutation.FieldFunc("add", func(args struct {
		Name     string
		Identity Identity
	}) *Person {
		p := &Person{Name: args.Name, Identity: args.Identity}
		db = append(db, p)
		return p
	}, "add a person to the directory")
}

// allPeopleQuery builds the Operation a parser would otherwise hand the
// executor: `{ all { name age identity } }`.
func allPeopleQuery() *graphql.Operation {
	field := func(name string, sub *graphql.SelectionSet) graphql.Selection {
		return graphql.Selection{Kind: graphql.SelectField, Field: &graphql.FieldSelection{Name: name, SelectionSet: sub}}
	}
	personFields := &graphql.SelectionSet{Selections: []graphql.Selection{
		field("name", nil),
		field("age", nil),
		field("identity", nil),
	}}
	return &graphql.Operation{
		Kind: graphql.OperationQuery,
		Name: "AllPeople",
		SelectionSet: &graphql.SelectionSet{Selections: []graphql.Selection{
			field("all", personFields),
		}},
	}
}

func main() {
	builder := schemabuilder.NewSchema()
	registerEnum(builder)
	registerPerson(builder)
	registerOperations(builder)

	schema, err := builder.Build()
	if err != nil {
		panic(err)
	}
	if _, err := graphql.BuildRegistry(schema); err != nil {
		panic(err)
	}

	executor := graphql.NewExecutor()
	resp := executor.Execute(context.Background(), schema, allPeopleQuery(), nil, nil)

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
}
