// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"go.uber.org/zap"
)

// Body is the JSON error envelope. Error is the machine-readable kind; the
// remaining fields carry whatever structured detail the kind has.
type Body struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Entity  string            `json:"entity,omitempty"`
	ID      string            `json:"id,omitempty"`
	From    string            `json:"from,omitempty"`
	To      string            `json:"to,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON writes v with status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// BadRequest writes a 400 for input that never reached the service, such
// as an unparseable id or body.
func BadRequest(w http.ResponseWriter, msg string, fields ...storeerr.FieldError) {
	JSON(w, http.StatusBadRequest, Body{Error: "validation", Message: msg, Fields: fieldMap(fields)})
}

// Status maps a service error to its HTTP status code.
func Status(err error) int {
	switch storeerr.Kind(err) {
	case "validation":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "illegal_transition", "capacity_exceeded":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Write renders err. Server-side failures are logged; their detail is not
// sent to the client.
func Write(w http.ResponseWriter, log *zap.Logger, err error) {
	code := Status(err)
	body := Body{Error: storeerr.Kind(err), Message: err.Error()}

	var (
		ve  *storeerr.ValidationError
		nf  *storeerr.NotFoundError
		ite *storeerr.IllegalTransitionError
		ce  *storeerr.CapacityExceededError
	)
	switch {
	case stderrors.As(err, &ve):
		body.Entity = ve.Entity
		body.Fields = fieldMap(ve.Fields)
	case stderrors.As(err, &nf):
		body.Entity, body.ID = nf.Entity, nf.ID
	case stderrors.As(err, &ite):
		body.Entity, body.ID, body.From, body.To = ite.Entity, ite.ID, ite.From, ite.To
	case stderrors.As(err, &ce):
		body.Entity, body.ID = ce.Entity, ce.ID
	}

	if code >= http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", zap.Error(err), zap.String("kind", body.Error))
		}
		body.Message = "internal error"
		body.Entity, body.ID = "", ""
	}
	JSON(w, code, body)
}

func fieldMap(fields []storeerr.FieldError) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		if prev, ok := m[f.Field]; ok {
			m[f.Field] = prev + "; " + f.Message
			continue
		}
		m[f.Field] = f.Message
	}
	return m
}
