package employee

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/db"
)

const summarySelect = `
    SELECT p.personal_email, p.first_name, p.last_name, p.poornata_id, p.employee_code,
           p.official_email, p.mobile_no, pr.department, pr.designation
    FROM personal_details p
    LEFT JOIN professional_details pr ON pr.personal_email = p.personal_email`

const summaryOrder = `
    ORDER BY p.first_name, p.last_name`

// searchFilter matches the same six identity columns as the directory screen
// searches. Every placeholder receives the same pattern.
const searchFilter = `
    WHERE LOWER(p.personal_email) LIKE LOWER(?) ESCAPE '\'
       OR LOWER(p.official_email) LIKE LOWER(?) ESCAPE '\'
       OR LOWER(p.first_name || ' ' || p.last_name) LIKE LOWER(?) ESCAPE '\'
       OR LOWER(p.poornata_id) LIKE LOWER(?) ESCAPE '\'
       OR LOWER(p.employee_code) LIKE LOWER(?) ESCAPE '\'
       OR LOWER(p.mobile_no) LIKE LOWER(?) ESCAPE '\'`

const searchColumns = 6

type Directory struct {
	db db.Gateway
}

func NewDirectory(g db.Gateway) *Directory {
	return &Directory{db: g}
}

func (d *Directory) List(ctx context.Context) ([]Summary, error) {
	return d.query(ctx, summarySelect+summaryOrder)
}

// Search is a case-insensitive substring match. LIKE wildcards in term match
// literally.
func (d *Directory) Search(ctx context.Context, term string) ([]Summary, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.WithStack(&ValidationError{Fields: []string{"q"}, Message: "Search query is required"})
	}
	pattern := "%" + escapeLike(term) + "%"
	args := make([]any, searchColumns)
	for i := range args {
		args[i] = pattern
	}
	return d.query(ctx, summarySelect+searchFilter+summaryOrder, args...)
}

func (d *Directory) query(ctx context.Context, sql string, args ...any) ([]Summary, error) {
	rows, err := d.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query directory")
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.PersonalEmail, &s.FirstName, &s.LastName, &s.PoornataID, &s.EmployeeCode,
			&s.OfficialEmail, &s.MobileNo, &s.Department, &s.Designation,
		); err != nil {
			return nil, errors.Wrap(err, "scan directory row")
		}
		out = append(out, s)
	}
	return out, errors.Wrap(rows.Err(), "query directory")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
