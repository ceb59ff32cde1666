package employeehandler

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/domain/employee"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/db"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/transport/http/api"
)

// Classify maps employee and store errors onto the problems the API reports.
// Store errors that are not constraint violations still surface the driver's
// message when one can be extracted.
func Classify(err error) (api.Problem, bool) {
	var verr *employee.ValidationError
	if errors.As(err, &verr) {
		return api.Problem{Status: http.StatusBadRequest, Type: api.TypeValidation, Message: verr.Error(), Fields: verr.Fields}, true
	}
	if errors.Is(err, employee.ErrNotFound) {
		return api.Problem{Status: http.StatusNotFound, Type: api.TypeNotFound, Message: employee.ErrNotFound.Error()}, true
	}

	message, hasMessage := db.Message(err)

	var cerr *db.ConstraintError
	if errors.As(err, &cerr) {
		return api.Problem{Status: http.StatusInternalServerError, Type: constraintType(cerr.Kind), Message: message}, true
	}
	if hasMessage {
		return api.Problem{Status: http.StatusInternalServerError, Type: api.TypeServer, Message: message}, true
	}
	return api.Problem{}, false
}

func constraintType(kind db.ConstraintKind) string {
	switch kind {
	case db.UniqueViolation:
		return api.TypeUniqueViolation
	case db.ForeignKeyViolation:
		return api.TypeForeignKey
	case db.NotNullViolation:
		return api.TypeNotNull
	default:
		return api.TypeServer
	}
}
