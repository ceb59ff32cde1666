package employee

import (
	"fmt"
	"reflect"
	"strings"
)

type Cardinality int

const (
	Singleton Cardinality = iota + 1
	List
)

func (c Cardinality) String() string {
	if c == List {
		return "list"
	}
	return "singleton"
}

const keyColumn = "personal_email"

// Spec declares one table of the aggregate. Columns are the insertable columns
// in statement order; for children they exclude the key and the synthetic id.
type Spec struct {
	Name        string
	Table       string
	Cardinality Cardinality
	Columns     []string
	DateColumns []string
	Type        reflect.Type

	fields map[string][]int
	dates  map[string]bool
}

var Root = mustSpec(Spec{
	Name:        "personalDetails",
	Table:       "personal_details",
	Cardinality: Singleton,
	Columns: []string{
		"personal_email", "official_email", "joining_reference_id", "poornata_id", "employee_code",
		"prefix", "first_name", "middle_name", "last_name", "fathers_name", "mothers_name", "dob",
		"gender", "marital_status", "blood_group", "nationality", "birth_state", "birth_location",
		"religion", "caste", "permanent_address", "current_address", "quarter_no", "pan_no",
		"aadhar_no", "bank_name", "bank_account_no", "ifsc_code", "mobile_no",
	},
	DateColumns: []string{"dob"},
	Type:        reflect.TypeFor[PersonalDetails](),
})

// Children lists every dependent table in a stable order. Deletes run in this
// order and inserts follow it too.
var Children = []*Spec{
	mustSpec(Spec{
		Name:        "professionalDetails",
		Table:       "professional_details",
		Cardinality: Singleton,
		Columns: []string{
			"doj_unit", "doj_group", "department", "designation", "job_band",
			"loi_issue_date", "confirmation_date", "current_ctc", "supervisor_name",
		},
		DateColumns: []string{"doj_unit", "doj_group", "loi_issue_date", "confirmation_date"},
		Type:        reflect.TypeFor[ProfessionalDetails](),
	}),
	mustSpec(Spec{
		Name:        "gpaNominees",
		Table:       "gpa_nominee",
		Cardinality: List,
		Columns:     []string{"name", "relation", "dob", "age", "contribution"},
		DateColumns: []string{"dob"},
		Type:        reflect.TypeFor[GPANominee](),
	}),
	mustSpec(Spec{
		Name:        "nischchintNominee",
		Table:       "nischchint_nominee",
		Cardinality: Singleton,
		Columns:     []string{"name", "relation", "dob", "age", "contribution"},
		DateColumns: []string{"dob"},
		Type:        reflect.TypeFor[NischchintNominee](),
	}),
	mustSpec(Spec{
		Name:        "mediclaimDependents",
		Table:       "mediclaim_dependents",
		Cardinality: List,
		Columns: []string{
			"name", "relation", "dob", "age", "gender", "birth_state", "address",
			"aadhar_number", "marital_status",
		},
		DateColumns: []string{"dob"},
		Type:        reflect.TypeFor[MediclaimDependent](),
	}),
	mustSpec(Spec{
		Name:        "familyMembers",
		Table:       "family_members",
		Cardinality: List,
		Columns:     []string{"name", "relation", "dob", "occupation", "marriage_anniversary", "mobile"},
		DateColumns: []string{"dob", "marriage_anniversary"},
		Type:        reflect.TypeFor[FamilyMember](),
	}),
	mustSpec(Spec{
		Name:        "emergencyContacts",
		Table:       "emergency_contacts",
		Cardinality: List,
		Columns:     []string{"name", "relation", "contact_number", "address"},
		Type:        reflect.TypeFor[EmergencyContact](),
	}),
	mustSpec(Spec{
		Name:        "education",
		Table:       "edu",
		Cardinality: List,
		Columns:     []string{"degree", "institution", "specialization", "year_of_passing", "percentage", "state"},
		Type:        reflect.TypeFor[Education](),
	}),
	mustSpec(Spec{
		Name:        "workHistory",
		Table:       "work_history",
		Cardinality: List,
		Columns: []string{
			"company_name", "designation", "from_date", "to_date", "in_group", "state", "ending_ctc",
		},
		DateColumns: []string{"from_date", "to_date"},
		Type:        reflect.TypeFor[WorkHistory](),
	}),
	mustSpec(Spec{
		Name:        "languageSkills",
		Table:       "language_skills",
		Cardinality: List,
		Columns:     []string{"language", "speaking", "reading", "writing"},
		Type:        reflect.TypeFor[LanguageSkill](),
	}),
	mustSpec(Spec{
		Name:        "additionalInfo",
		Table:       "additional_info",
		Cardinality: Singleton,
		Columns: []string{
			"current_unit_name", "last_job_change_date", "hobbies", "total_experience",
			"last_promotion_date", "attended_dac", "dac_date", "special_abilities",
		},
		DateColumns: []string{"last_job_change_date", "last_promotion_date", "dac_date"},
		Type:        reflect.TypeFor[AdditionalInfo](),
	}),
	mustSpec(Spec{
		Name:        "performanceRating",
		Table:       "performance_rating",
		Cardinality: Singleton,
		Columns: []string{
			"last_year_year", "last_year_rating", "second_last_year_year", "second_last_year_rating",
			"third_last_year_year", "third_last_year_rating",
		},
		Type: reflect.TypeFor[PerformanceRating](),
	}),
	mustSpec(Spec{
		Name:        "pfDetails",
		Table:       "pf_details",
		Cardinality: List,
		Columns: []string{
			"uan_number", "pf_number", "eps_number", "nominee_name", "nominee_relation", "share_percentage",
		},
		Type: reflect.TypeFor[PFDetail](),
	}),
	mustSpec(Spec{
		Name:        "gratuityDetails",
		Table:       "gratuity_details",
		Cardinality: List,
		Columns: []string{
			"nominee_name", "nominee_relation", "share_percentage", "nominee_age", "employee_age",
			"confirmation_date",
		},
		DateColumns: []string{"confirmation_date"},
		Type:        reflect.TypeFor[GratuityDetail](),
	}),
	mustSpec(Spec{
		Name:        "superannuationDetails",
		Table:       "superannuation_details",
		Cardinality: List,
		Columns: []string{
			"nominee_name", "nominee_relation", "share_percentage", "marriage_date", "confirmation_date",
		},
		DateColumns: []string{"marriage_date", "confirmation_date"},
		Type:        reflect.TypeFor[SuperannuationDetail](),
	}),
}

var (
	inputFields   = jsonFieldIndex(reflect.TypeFor[ProfileInput]())
	profileFields = jsonFieldIndex(reflect.TypeFor[Profile]())
)

func init() {
	if err := CheckRegistry(); err != nil {
		panic(err)
	}
}

func mustSpec(s Spec) *Spec {
	s.fields = dbFieldIndex(s.Type)
	s.dates = make(map[string]bool, len(s.DateColumns))
	for _, col := range s.DateColumns {
		s.dates[col] = true
	}
	return &s
}

// CheckRegistry verifies every spec against its Go type and the request and
// response aggregates, so read and write paths cannot drift apart.
func CheckRegistry() error {
	specs := append([]*Spec{Root}, Children...)
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if seen[s.Name] {
			return fmt.Errorf("%s: declared twice", s.Name)
		}
		seen[s.Name] = true
		if err := s.check(); err != nil {
			return err
		}
		if _, ok := inputFields[s.Name]; !ok {
			return fmt.Errorf("%s: no field in ProfileInput", s.Name)
		}
		if _, ok := profileFields[s.Name]; !ok {
			return fmt.Errorf("%s: no field in Profile", s.Name)
		}
	}
	if len(inputFields) != len(specs) || len(profileFields) != len(specs) {
		return fmt.Errorf("aggregate has %d input and %d profile sections, registry has %d",
			len(inputFields), len(profileFields), len(specs))
	}
	return nil
}

func (s *Spec) check() error {
	declared := make(map[string]bool, len(s.Columns))
	for _, col := range s.Columns {
		if _, ok := s.fields[col]; !ok {
			return fmt.Errorf("%s: column %q has no field", s.Name, col)
		}
		declared[col] = true
	}
	for col := range s.dates {
		if !declared[col] {
			return fmt.Errorf("%s: date column %q is not a column", s.Name, col)
		}
		if s.Type.FieldByIndex(s.fields[col]).Type != reflect.TypeFor[*string]() {
			return fmt.Errorf("%s: date column %q must be *string", s.Name, col)
		}
	}
	for col := range s.fields {
		if declared[col] || col == keyColumn || col == "id" {
			continue
		}
		return fmt.Errorf("%s: field for %q is not declared as a column", s.Name, col)
	}
	if s != Root {
		if _, ok := s.fields[keyColumn]; !ok {
			return fmt.Errorf("%s: missing %s field", s.Name, keyColumn)
		}
	}
	if _, ok := s.fields["id"]; ok != (s.Cardinality == List) {
		return fmt.Errorf("%s: only list children carry an id", s.Name)
	}
	return nil
}

func (s *Spec) IsDate(col string) bool {
	return s.dates[col]
}

// selectColumns is the read projection: synthetic id for lists, then the key,
// then every declared column.
func (s *Spec) selectColumns() []string {
	if s == Root {
		return s.Columns
	}
	cols := make([]string, 0, len(s.Columns)+2)
	if s.Cardinality == List {
		cols = append(cols, "id")
	}
	cols = append(cols, keyColumn)
	return append(cols, s.Columns...)
}

// scanTargets returns Scan destinations for cols inside row, which must be an
// addressable value of s.Type.
func (s *Spec) scanTargets(row reflect.Value, cols []string) []any {
	dest := make([]any, len(cols))
	for i, col := range cols {
		ptr := row.FieldByIndex(s.fields[col]).Addr().Interface()
		if s.dates[col] {
			dest[i] = &dateDest{dst: ptr.(**string)}
			continue
		}
		dest[i] = ptr
	}
	return dest
}

// field returns the Go value stored for col in row.
func (s *Spec) field(row reflect.Value, col string) any {
	return row.FieldByIndex(s.fields[col]).Interface()
}

// rows flattens a section value into struct values: a list yields its
// elements, a singleton yields itself.
func (s *Spec) rows(v any) []reflect.Value {
	rv := reflect.ValueOf(v)
	if s.Cardinality == Singleton {
		return []reflect.Value{rv}
	}
	out := make([]reflect.Value, rv.Len())
	for i := range out {
		out[i] = rv.Index(i)
	}
	return out
}

func (p *ProfileInput) section(name string) section {
	return reflect.ValueOf(p).Elem().FieldByIndex(inputFields[name]).Interface().(section)
}

// attach stores assembled rows on the profile: a pointer for singletons, a
// slice for lists.
func (p *Profile) attach(s *Spec, rows reflect.Value) {
	field := reflect.ValueOf(p).Elem().FieldByIndex(profileFields[s.Name])
	if s.Cardinality == List {
		field.Set(rows)
		return
	}
	if rows.Len() == 0 {
		return
	}
	field.Set(rows.Index(0).Addr())
}

func dbFieldIndex(t reflect.Type) map[string][]int {
	out := make(map[string][]int, t.NumField())
	for _, f := range reflect.VisibleFields(t) {
		if tag := f.Tag.Get("db"); tag != "" && tag != "-" {
			out[tag] = f.Index
		}
	}
	return out
}

func jsonFieldIndex(t reflect.Type) map[string][]int {
	out := make(map[string][]int, t.NumField())
	for _, f := range reflect.VisibleFields(t) {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name != "" && name != "-" {
			out[name] = f.Index
		}
	}
	return out
}
