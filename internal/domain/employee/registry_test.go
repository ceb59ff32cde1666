package employee

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsConsistent(t *testing.T) {
	require.NoError(t, CheckRegistry())
	assert.Len(t, Children, 14)

	singletons := 0
	for _, spec := range Children {
		if spec.Cardinality == Singleton {
			singletons++
		}
	}
	assert.Equal(t, 4, singletons)
}

func TestRegistryCheckCatchesDrift(t *testing.T) {
	type drifted struct {
		PersonalEmail string  `db:"personal_email"`
		Name          string  `db:"name"`
		Born          *string `db:"born"`
		Extra         *string `db:"extra"`
	}
	cases := map[string]Spec{
		"undeclared field": {Name: "x", Cardinality: Singleton, Columns: []string{"name", "born"}, Type: reflect.TypeFor[drifted]()},
		"unknown column":   {Name: "x", Cardinality: Singleton, Columns: []string{"name", "born", "extra", "ghost"}, Type: reflect.TypeFor[drifted]()},
		"date not column":  {Name: "x", Cardinality: Singleton, Columns: []string{"name", "extra", "born"}, DateColumns: []string{"dob"}, Type: reflect.TypeFor[drifted]()},
		"date not string":  {Name: "x", Cardinality: Singleton, Columns: []string{"name", "extra", "born"}, DateColumns: []string{"name"}, Type: reflect.TypeFor[drifted]()},
		"list without id":  {Name: "x", Cardinality: List, Columns: []string{"name", "extra", "born"}, Type: reflect.TypeFor[drifted]()},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, mustSpec(s).check())
		})
	}

	ok := mustSpec(Spec{Name: "x", Cardinality: Singleton, Columns: []string{"name", "born", "extra"}, DateColumns: []string{"born"}, Type: reflect.TypeFor[drifted]()})
	assert.NoError(t, ok.check())
}

func TestStatementShapes(t *testing.T) {
	edu := childByName(t, "education")
	assert.Equal(t,
		"INSERT INTO edu (personal_email, degree, institution, specialization, year_of_passing, percentage, state) VALUES (?, ?, ?, ?, ?, ?, ?)",
		insertSQL(edu))
	assert.Equal(t,
		"SELECT id, personal_email, degree, institution, specialization, year_of_passing, percentage, state FROM edu WHERE personal_email = ? ORDER BY id",
		selectSQL(edu))

	rating := childByName(t, "performanceRating")
	assert.Equal(t,
		"UPDATE performance_rating SET last_year_year = ?, last_year_rating = ?, second_last_year_year = ?, second_last_year_rating = ?, third_last_year_year = ?, third_last_year_rating = ? WHERE personal_email = ?",
		updateSQL(rating))
	assert.Equal(t, "DELETE FROM performance_rating WHERE personal_email = ?", deleteSQL(rating))

	assert.NotContains(t, updateSQL(Root), "SET personal_email")
	assert.Contains(t, insertSQL(Root), "INSERT INTO personal_details (personal_email, official_email,")
}

func childByName(t *testing.T, name string) *Spec {
	t.Helper()
	for _, spec := range Children {
		if spec.Name == name {
			return spec
		}
	}
	t.Fatalf("no child %q", name)
	return nil
}
