package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/chefos/platform/internal/errs"
	"github.com/chefos/platform/internal/logging"
	"github.com/chefos/platform/pkg/schema"
)

// maxSafeInteger is the largest integer a float64 represents exactly.
// Integers beyond it are serialized as decimal strings so clients that
// parse JSON numbers as floats cannot corrupt identifiers.
const maxSafeInteger = int64(1)<<53 - 1

// errorBody is the canonical error payload. validation is present iff the
// issue list is non-empty.
type errorBody struct {
	StatusCode int            `json:"statusCode"`
	Error      string         `json:"error"`
	Message    string         `json:"message"`
	Validation []schema.Issue `json:"validation,omitempty"`
}

// writeResponse checks value against the schema the endpoint declares for
// status before any byte is sent. A payload failing its own contract never
// reaches the client; it is replaced by the normalized mismatch error.
func writeResponse(ctx context.Context, w http.ResponseWriter, log *logging.Logger, ep Endpoint, status int, value any) {
	contract, ok := ep.Response[status]
	if !ok {
		// No contract registered for this status; emit as-is.
		writeJSON(w, status, value)
		return
	}

	if _, isVoid := contract.(*schema.VoidSchema); isVoid && value == nil {
		w.WriteHeader(status)
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}
	decoded, err := schema.Decode(raw)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	parsed, issues := contract.Parse(nil, decoded)
	if len(issues) > 0 {
		writeError(ctx, w, log, errs.ResponseMismatch(issues))
		return
	}

	writeJSON(w, status, normalizeNumbers(parsed))
}

// writeError normalizes any failure into the canonical error body. Errors
// carrying validation issues respond 400 and log the issues at warning;
// everything else follows the fault path with its declared status.
func writeError(ctx context.Context, w http.ResponseWriter, log *logging.Logger, err error) {
	e := errs.From(err)

	if len(e.Issues) > 0 {
		log.WithContext(ctx).WithField("validation", e.Issues).Warn("Validation error.")
		writeJSON(w, http.StatusBadRequest, errorBody{
			StatusCode: http.StatusBadRequest,
			Error:      "Bad Request",
			Message:    e.Message,
			Validation: e.Issues,
		})
		return
	}

	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	entry := log.WithContext(ctx).WithError(e)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}
	writeJSON(w, status, errorBody{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    e.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// normalizeNumbers rewrites integers outside the float64-safe range as
// decimal strings, recursively.
func normalizeNumbers(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = normalizeNumbers(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNumbers(item)
		}
		return v
	case json.Number:
		s := v.String()
		if strings.ContainsAny(s, ".eE") {
			return v
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			// Integer too large even for int64.
			return s
		}
		if n > maxSafeInteger || n < -maxSafeInteger {
			return s
		}
		return v
	default:
		return value
	}
}
