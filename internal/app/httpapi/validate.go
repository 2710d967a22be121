package httpapi

import (
	"io"
	"net/http"
	"net/url"

	"github.com/chefos/platform/internal/errs"
	"github.com/chefos/platform/pkg/schema"
)

// Request carries the validated inputs of one call. Body and Query hold the
// parsed (coerced, unknown-keys-stripped) values.
type Request struct {
	Body  any
	Query any
}

// ValidateRequest checks the request against the endpoint's declared
// schemas. Issues from body and query are collected together so the caller
// sees every problem at once.
func ValidateRequest(ep Endpoint, r *http.Request) (Request, error) {
	var out Request
	var issues []schema.Issue

	if ep.Body != nil {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return Request{}, errs.Fault(http.StatusBadRequest, "unable to read request body")
		}

		var decoded any
		if len(raw) > 0 {
			decoded, err = schema.Decode(raw)
			if err != nil {
				return Request{}, errs.Fault(http.StatusBadRequest, "Invalid JSON body")
			}
		}

		parsed, bodyIssues := ep.Body.Parse(nil, decoded)
		if len(bodyIssues) > 0 {
			issues = append(issues, bodyIssues...)
		} else {
			out.Body = parsed
		}
	}

	if ep.Query != nil {
		parsed, queryIssues := ep.Query.Parse(nil, queryValues(r.URL.Query()))
		if len(queryIssues) > 0 {
			issues = append(issues, queryIssues...)
		} else {
			out.Query = parsed
		}
	}

	if len(issues) > 0 {
		return Request{}, errs.Validation(issues)
	}
	return out, nil
}

// queryValues flattens url.Values to the first value per key, the shape the
// query schemas validate.
func queryValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}
	return out
}
