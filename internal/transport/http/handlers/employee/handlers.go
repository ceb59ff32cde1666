package employeehandler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/domain/employee"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/transport/http/api"
)

// Service is the slice of employee.Service the HTTP layer needs.
type Service interface {
	List(ctx context.Context) ([]employee.Summary, error)
	Search(ctx context.Context, term string) ([]employee.Summary, error)
	Get(ctx context.Context, key string) (*employee.Profile, error)
	Create(ctx context.Context, in *employee.ProfileInput) (string, error)
	Update(ctx context.Context, key string, in *employee.ProfileInput) error
	Delete(ctx context.Context, key string) error
}

type Handler struct {
	Service   Service
	Responder *api.Responder
}

func NewHandler(service Service, responder *api.Responder) *Handler {
	return &Handler{Service: service, Responder: responder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/search", h.handleSearch)
		r.Get("/{email}", h.handleGet)
		r.Post("/", h.handleCreate)
		r.Put("/{email}", h.handleUpdate)
		r.Delete("/{email}", h.handleDelete)
	})
}

type createdPayload struct {
	PersonalEmail string `json:"personal_email"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.List(r.Context())
	if err != nil {
		h.Responder.Error(w, r, err)
		return
	}
	api.List(w, r, rows)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.Responder.Error(w, r, err)
		return
	}
	api.List(w, r, rows)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.Get(r.Context(), emailParam(r))
	if err != nil {
		h.Responder.Error(w, r, err)
		return
	}
	api.Success(w, r, profile, "")
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	key, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.Responder.Error(w, r, err)
		return
	}
	api.Created(w, r, createdPayload{PersonalEmail: key}, "Employee created successfully")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.Service.Update(r.Context(), emailParam(r), in); err != nil {
		h.Responder.Error(w, r, err)
		return
	}
	api.Success(w, r, nil, "Employee updated successfully")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), emailParam(r)); err != nil {
		h.Responder.Error(w, r, err)
		return
	}
	api.Success(w, r, nil, "Employee deleted successfully")
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*employee.ProfileInput, bool) {
	var in employee.ProfileInput
	err := json.NewDecoder(r.Body).Decode(&in)
	switch {
	case err == nil:
		return &in, true
	case errors.Is(err, io.EOF):
		h.Responder.Error(w, r, &employee.ValidationError{
			Fields:  []string{"personalDetails"},
			Message: "Request body is required",
		})
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, r, http.StatusRequestEntityTooLarge, api.TypeBadRequest, "Request body too large")
			return nil, false
		}
		api.Fail(w, r, http.StatusBadRequest, api.TypeBadRequest, "Invalid JSON payload")
	}
	return nil, false
}

// emailParam returns the decoded {email} segment. chi matches against
// RawPath when the request carries one, so only then is the parameter still
// escaped.
func emailParam(r *http.Request) string {
	raw := chi.URLParam(r, "email")
	if r.URL.RawPath != "" {
		if decoded, err := url.PathUnescape(raw); err == nil {
			raw = decoded
		}
	}
	return strings.TrimSpace(raw)
}
