package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chefos/platform/internal/errs"
	"github.com/chefos/platform/internal/logging"
	"github.com/chefos/platform/pkg/schema"
)

var testLog = logging.NewDefault("respond-test")

func TestWriteResponseRejectsContractViolations(t *testing.T) {
	ep := Endpoint{
		Response: map[int]schema.Schema{
			http.StatusOK: schema.Object(
				schema.Field{Name: "id", Schema: schema.Number().Int()},
			),
		},
	}

	rec := httptest.NewRecorder()
	writeResponse(context.Background(), rec, testLog, ep, http.StatusOK, map[string]any{"id": "not-a-number"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, invalid data must never leave as 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Response doesn't match the schema" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if _, ok := body["validation"].([]any); !ok {
		t.Fatalf("mismatch body must carry the issues: %v", body)
	}
}

func TestWriteResponseStripsUndeclaredFields(t *testing.T) {
	ep := Endpoint{
		Response: map[int]schema.Schema{
			http.StatusOK: schema.Object(
				schema.Field{Name: "name", Schema: schema.String()},
			),
		},
	}

	rec := httptest.NewRecorder()
	writeResponse(context.Background(), rec, testLog, ep, http.StatusOK, map[string]any{
		"name":   "Flour",
		"secret": "do-not-leak",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "do-not-leak") {
		t.Fatalf("undeclared field leaked: %s", rec.Body.String())
	}
}

func TestWriteResponseSerializesUnsafeIntegersAsStrings(t *testing.T) {
	ep := Endpoint{
		Response: map[int]schema.Schema{
			http.StatusOK: schema.Object(
				schema.Field{Name: "id", Schema: schema.Number().Int()},
				schema.Field{Name: "small", Schema: schema.Number().Int()},
			),
		},
	}

	rec := httptest.NewRecorder()
	writeResponse(context.Background(), rec, testLog, ep, http.StatusOK, map[string]any{
		"id":    json.Number("9007199254740993"),
		"small": json.Number("42"),
	})

	out := rec.Body.String()
	if !strings.Contains(out, `"9007199254740993"`) {
		t.Fatalf("unsafe integer not stringified: %s", out)
	}
	if !strings.Contains(out, `"small":42`) {
		t.Fatalf("safe integer must stay numeric: %s", out)
	}
}

func TestWriteResponseUnregisteredStatusHasNoContract(t *testing.T) {
	ep := Endpoint{Response: map[int]schema.Schema{}}

	rec := httptest.NewRecorder()
	writeResponse(context.Background(), rec, testLog, ep, http.StatusAccepted, map[string]any{"anything": true})

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "anything") {
		t.Fatalf("payload must pass through untouched: %s", rec.Body.String())
	}
}

func TestWriteErrorFaultPath(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, testLog, errs.Forbidden("Invalid credentials."))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["statusCode"] != float64(403) || body["error"] != "Forbidden" {
		t.Fatalf("unexpected body: %v", body)
	}
}
