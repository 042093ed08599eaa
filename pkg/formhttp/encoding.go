package formhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const maxBodySize = 1 << 20

type instanceView struct {
	ID     string            `json:"id"`
	Schema string            `json:"schema"`
	Lang   string            `json:"lang,omitempty"`
	Fields []string          `json:"fields"`
	States map[string]string `json:"states"`
	Snapshot
}

type fieldResult struct {
	Field     string `json:"field"`
	State     string `json:"state"`
	Message   string `json:"message,omitempty"`
	CanSubmit bool   `json:"can_submit"`
}

type messageRequest struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes. Validation failures carry
// the per-field messages in details.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, ErrSchemaNotFound):
		status, code = http.StatusNotFound, "schema_not_found"
	case errors.Is(err, ErrInstanceNotFound), errors.Is(err, form.ErrSessionNotFound):
		status, code = http.StatusNotFound, "instance_not_found"
	case errors.Is(err, form.ErrUnknownField):
		status, code = http.StatusNotFound, "unknown_field"
	case errors.Is(err, ErrBadRequest):
		status, code = http.StatusBadRequest, "bad_request"
	case errors.Is(err, form.ErrSubmitThrottled):
		status, code = http.StatusTooManyRequests, "submit_throttled"
	case errors.Is(err, form.ErrSubmitDisabled):
		status, code = http.StatusConflict, "submit_disabled"
	case errors.Is(err, form.ErrVetoed):
		status, code = http.StatusConflict, "submit_rejected"
	case errors.Is(err, form.ErrInvalid), validator.IsValidationError(err):
		status, code = http.StatusUnprocessableEntity, "invalid"
	}

	detail := errorDetail{Code: code, Message: http.StatusText(status)}
	if errs := validator.ExtractValidationErrors(err); errs != nil {
		detail.Details = make(map[string]string, len(errs))
		for _, e := range errs {
			detail.Details[e.Field] = e.Message
		}
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		logger.Error(err),
	)
	writeJSON(w, status, errorBody{Error: detail})
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}

// decodeValues reads field values from a JSON object or a form-encoded
// body. An empty body yields no values.
func decodeValues(r *http.Request) (map[string]string, error) {
	values := make(map[string]string)
	if r.Body == nil || r.ContentLength == 0 {
		return values, nil
	}

	if isJSON(r) {
		if err := decodeJSON(r, &values); err != nil {
			return nil, err
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.Join(ErrBadRequest, err)
	}
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			values[k] = vs[0]
		}
	}
	return values, nil
}

// decodeValue reads a single "value" from a JSON object or a form body.
func decodeValue(r *http.Request) (string, error) {
	if isJSON(r) {
		var req struct {
			Value *string `json:"value"`
		}
		if err := decodeJSON(r, &req); err != nil {
			return "", err
		}
		if req.Value == nil {
			return "", errors.Join(ErrBadRequest, fmt.Errorf("missing value"))
		}
		return *req.Value, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", errors.Join(ErrBadRequest, err)
	}
	return r.PostForm.Get("value"), nil
}
