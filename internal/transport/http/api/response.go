package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/requestctx"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error types carried in the "type" field of error responses.
const (
	TypeValidation      = "ValidationError"
	TypeNotFound        = "NotFoundError"
	TypeUniqueViolation = "UniqueConstraintViolation"
	TypeForeignKey      = "ForeignKeyConstraintViolation"
	TypeNotNull         = "NotNullConstraintViolation"
	TypeServer          = "ServerError"
	TypeRateLimited     = "RateLimitError"
	TypeBadRequest      = "BadRequestError"
	TypeRouteNotFound   = "RouteNotFoundError"
)

const defaultServerMessage = "Internal server error"

type Envelope struct {
	Status    string   `json:"status"`
	Message   string   `json:"message,omitempty"`
	Results   *int     `json:"results,omitempty"`
	Data      any      `json:"data,omitempty"`
	Type      string   `json:"type,omitempty"`
	Fields    []string `json:"fields,omitempty"`
	Stack     string   `json:"stack,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("write json failed", zap.Error(err))
	}
}

func Success(w http.ResponseWriter, r *http.Request, data any, message string) {
	WriteJSON(w, http.StatusOK, Envelope{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		RequestID: requestctx.GetRequestID(r.Context()),
	})
}

// List writes a collection with its element count in "results".
func List[T any](w http.ResponseWriter, r *http.Request, items []T) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	WriteJSON(w, http.StatusOK, Envelope{
		Status:    StatusSuccess,
		Results:   &n,
		Data:      items,
		RequestID: requestctx.GetRequestID(r.Context()),
	})
}

func Created(w http.ResponseWriter, r *http.Request, data any, message string) {
	WriteJSON(w, http.StatusCreated, Envelope{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		RequestID: requestctx.GetRequestID(r.Context()),
	})
}

func Fail(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	WriteJSON(w, status, Envelope{
		Status:    StatusError,
		Message:   message,
		Type:      errType,
		RequestID: requestctx.GetRequestID(r.Context()),
	})
}

// Problem describes how an error is presented to the client.
type Problem struct {
	Status  int
	Type    string
	Message string
	Fields  []string
}

// Classifier maps an error onto a Problem. It reports false for errors it
// does not recognise, which are answered as internal server errors.
type Classifier func(err error) (Problem, bool)

// Responder turns handler errors into error envelopes.
type Responder struct {
	logger     *zap.Logger
	production bool
	classify   Classifier
}

func NewResponder(logger *zap.Logger, production bool, classify Classifier) *Responder {
	return &Responder{logger: logger, production: production, classify: classify}
}

func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	p := rs.problem(err)
	env := Envelope{
		Status:    StatusError,
		Message:   p.Message,
		Type:      p.Type,
		Fields:    p.Fields,
		RequestID: requestctx.GetRequestID(r.Context()),
	}

	if p.Status >= http.StatusInternalServerError {
		rs.logger.Error("request failed", append(requestctx.Fields(r.Context()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("type", env.Type),
			zap.String("error", fmt.Sprintf("%+v", err)),
		)...)
		report(r, env.RequestID, err)
	} else {
		rs.logger.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.Int("status", p.Status),
			zap.Error(err),
		)
	}

	if !rs.production {
		env.Stack = fmt.Sprintf("%+v", err)
	}
	WriteJSON(w, p.Status, env)
}

func (rs *Responder) problem(err error) Problem {
	if rs.classify != nil {
		if p, ok := rs.classify(err); ok {
			if p.Status == 0 {
				p.Status = http.StatusInternalServerError
			}
			if p.Type == "" {
				p.Type = TypeServer
			}
			if p.Message == "" {
				p.Message = defaultServerMessage
			}
			return p
		}
	}
	return Problem{Status: http.StatusInternalServerError, Type: TypeServer, Message: defaultServerMessage}
}

func report(r *http.Request, requestID string, err error) {
	hub := sentry.GetHubFromContext(r.Context())
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(r)
		scope.SetTag("request_id", requestID)
		hub.CaptureException(err)
	})
}
