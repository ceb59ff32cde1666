package employee

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/config"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/db"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/metrics"
)

func ptr[T any](v T) *T { return &v }

func newTestDB(t *testing.T) db.Gateway {
	t.Helper()
	ctx := context.Background()
	g, err := db.OpenSQLite(ctx, config.Config{DatabaseURL: "file::memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(g.Close)
	_, err = db.Migrate(ctx, g)
	require.NoError(t, err)
	return g
}

func newTestService(t *testing.T, g db.Gateway, strict bool) *Service {
	t.Helper()
	return NewService(g, Options{StrictDates: strict, AssembleConcurrency: 4}, zap.NewNop(), metrics.New())
}

func sampleInput(email string) *ProfileInput {
	return &ProfileInput{
		PersonalDetails: Some(PersonalDetails{
			PersonalEmail:    email,
			FirstName:        "John",
			LastName:         "Mathew",
			PermanentAddress: "12 Park Street, Kolkata",
			AadharNo:         "1234-5678-9012",
			MobileNo:         "9876543210",
			EmployeeCode:     ptr("E1001"),
			PoornataID:       ptr("P-778"),
			DOB:              ptr("1990-05-17"),
		}),
		ProfessionalDetails: Some(ProfessionalDetails{
			Department:  "Finance",
			Designation: "Analyst",
			JobBand:     "B2",
			DOJUnit:     ptr("2020-01-06"),
		}),
		GPANominees: Some([]GPANominee{
			{Name: "Anita Mathew", Relation: "Spouse", Age: ptr(31), Contribution: ptr("100")},
		}),
		NischchintNominee: Some(NischchintNominee{Name: "Anita Mathew", Relation: "Spouse"}),
		EmergencyContacts: Some([]EmergencyContact{
			{Name: "Anita Mathew", Relation: "Spouse", ContactNumber: "9000000001"},
			{Name: "Anita Mathew", Relation: "Spouse", ContactNumber: "9000000001"},
		}),
		Education: Some([]Education{
			{Degree: "BCom", Institution: "Calcutta University"},
			{Degree: "MBA", Institution: "IIM Lucknow", YearOfPassing: ptr("2015")},
		}),
		WorkHistory: Some([]WorkHistory{
			{CompanyName: "Acme", Designation: "Clerk", FromDate: ptr("2012-04-01T00:00:00Z"), ToDate: ptr("2015-03-31")},
		}),
		LanguageSkills: Some([]LanguageSkill{{Language: "Bengali", Speaking: ptr("Fluent")}}),
		AdditionalInfo: Some(AdditionalInfo{Hobbies: ptr("Chess"), DACDate: ptr("2019-11-20")}),
		PerformanceRating: Some(PerformanceRating{LastYearYear: ptr("2023"), LastYearRating: ptr("A")}),
		GratuityDetails: Some([]GratuityDetail{
			{NomineeName: ptr("Anita Mathew"), NomineeAge: ptr(31), ConfirmationDate: ptr("2021-01-06")},
		}),
	}
}

// expectedProfile is what reading back in should yield: keys filled in and
// dates in wire form.
func expectedProfile(t *testing.T, key string, in *ProfileInput) *Profile {
	t.Helper()
	p := &Profile{}
	for _, spec := range append([]*Spec{Root}, Children...) {
		rows := reflect.MakeSlice(reflect.SliceOf(spec.Type), 0, 0)
		sec := in.section(spec.Name)
		if sec.present() && !sec.null() {
			for _, r := range spec.rows(sec.value()) {
				rows = reflect.Append(rows, r)
				row := rows.Index(rows.Len() - 1)
				row.FieldByIndex(spec.fields[keyColumn]).SetString(key)
				for col := range spec.dates {
					f := row.FieldByIndex(spec.fields[col])
					if f.IsNil() {
						continue
					}
					d, err := ParseDate(*f.Interface().(*string))
					require.NoError(t, err)
					f.Set(reflect.ValueOf(ptr(FormatDate(d))))
				}
			}
		}
		p.attach(spec, rows)
	}
	return p
}

// stripIDs clears server-assigned ids from every list child.
func stripIDs(p *Profile) {
	for _, spec := range Children {
		if spec.Cardinality != List {
			continue
		}
		list := reflect.ValueOf(p).Elem().FieldByIndex(profileFields[spec.Name])
		for i := 0; i < list.Len(); i++ {
			list.Index(i).FieldByIndex(spec.fields["id"]).SetZero()
		}
	}
}

func countRows(t *testing.T, g db.Gateway, table, key string) int {
	t.Helper()
	rows, err := g.Query(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE personal_email = ?", table), key)
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, rows.Next())
	var n int
	require.NoError(t, rows.Scan(&n))
	return n
}

func totalRows(t *testing.T, g db.Gateway, key string) int {
	t.Helper()
	total := 0
	for _, spec := range append([]*Spec{Root}, Children...) {
		total += countRows(t, g, spec.Table, key)
	}
	return total
}

var errInjected = errors.New("injected failure")

// failingGateway fails the first transactional statement whose SQL contains
// failOn, after the statements before it have already run.
type failingGateway struct {
	db.Gateway
	failOn string
}

func (f *failingGateway) InTx(ctx context.Context, fn func(tx db.Querier) error) error {
	return f.Gateway.InTx(ctx, func(tx db.Querier) error {
		return fn(failingQuerier{Querier: tx, failOn: f.failOn})
	})
}

type failingQuerier struct {
	db.Querier
	failOn string
}

func (q failingQuerier) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	if strings.Contains(sql, q.failOn) {
		return 0, errInjected
	}
	return q.Querier.Exec(ctx, sql, args...)
}
