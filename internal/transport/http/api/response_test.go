package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/requestctx"
)

var errMissing = errors.New("missing")

func testClassifier(err error) (Problem, bool) {
	switch {
	case errors.Is(err, errMissing):
		return Problem{Status: http.StatusNotFound, Type: TypeNotFound, Message: "Thing not found"}, true
	case err.Error() == "bad input":
		return Problem{Status: http.StatusBadRequest, Type: TypeValidation, Message: "Search query is required", Fields: []string{"q"}}, true
	case err.Error() == "partial":
		return Problem{Message: "disk I/O error"}, true
	}
	return Problem{}, false
}

func respond(t *testing.T, rs *Responder, err error) (int, Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/employees", nil)
	req = req.WithContext(requestctx.WithRequestID(req.Context(), "req-42"))
	rec := httptest.NewRecorder()
	rs.Error(rec, req, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestErrorUsesClassifier(t *testing.T) {
	rs := NewResponder(zap.NewNop(), false, testClassifier)

	status, env := respond(t, rs, errors.Wrap(errMissing, "get"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, TypeNotFound, env.Type)
	assert.Equal(t, "Thing not found", env.Message)
	assert.Equal(t, "req-42", env.RequestID)
	assert.Contains(t, env.Stack, "get: missing")
}

func TestPartialProblemDefaultsToServerError(t *testing.T) {
	status, env := respond(t, NewResponder(zap.NewNop(), true, testClassifier), errors.New("partial"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, TypeServer, env.Type)
	assert.Equal(t, "disk I/O error", env.Message)
}

func TestUnclassifiedErrorsAreServerErrors(t *testing.T) {
	for name, rs := range map[string]*Responder{
		"classifier":    NewResponder(zap.NewNop(), true, testClassifier),
		"no classifier": NewResponder(zap.NewNop(), true, nil),
	} {
		t.Run(name, func(t *testing.T) {
			status, env := respond(t, rs, errors.New("connection reset by peer"))
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, TypeServer, env.Type)
			assert.Equal(t, "Internal server error", env.Message)
		})
	}
}

func TestValidationProblemCarriesFields(t *testing.T) {
	_, env := respond(t, NewResponder(zap.NewNop(), true, testClassifier), errors.New("bad input"))
	assert.Equal(t, []string{"q"}, env.Fields)
	assert.Equal(t, "Search query is required", env.Message)
	assert.Empty(t, env.Stack)
}

func TestServerErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rs := NewResponder(zap.New(core), true, testClassifier)

	respond(t, rs, errMissing)
	assert.Zero(t, logs.Len())

	respond(t, rs, errors.New("boom"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "req-42", entry.ContextMap()["request_id"])
	assert.Contains(t, entry.ContextMap()["error"], "boom")
}

func TestListAlwaysWritesArrayAndCount(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}
	rec := httptest.NewRecorder()
	List[row](rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "success", "results": 0, "data": []}`, rec.Body.String())
}

func TestCreatedAndSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"personal_email": "a@example.com"}, "Employee created successfully")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status": "success", "message": "Employee created successfully", "data": {"personal_email": "a@example.com"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Success(rec, httptest.NewRequest(http.MethodDelete, "/", nil), nil, "Employee deleted successfully")
	assert.JSONEq(t, `{"status": "success", "message": "Employee deleted successfully"}`, rec.Body.String())
}
