package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	app "github.com/chefos/platform/internal/app"
	"github.com/chefos/platform/internal/app/domain/product"
	"github.com/chefos/platform/internal/app/storage"
	"github.com/chefos/platform/internal/errs"
	"github.com/chefos/platform/internal/identity"
	"github.com/chefos/platform/internal/logging"
)

type fakeProvider struct{}

func (fakeProvider) LoginWithPassword(_ context.Context, email, password string) (identity.Session, error) {
	if password != "secret" {
		return identity.Session{}, errs.Forbidden("Invalid credentials.")
	}
	return identity.Session{
		AccessToken: "token-abc",
		Subject:     "auth0|abc123",
		Email:       email,
		Permissions: []string{"products:read"},
	}, nil
}

func newTestServer(t *testing.T, stores app.Stores) *httptest.Server {
	t.Helper()
	application, err := app.New(stores, fakeProvider{}, "test", logging.NewDefault("test"))
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	srv := httptest.NewServer(NewHandler(application, logging.NewDefault("test"), nil, Options{}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestLoginMissingFieldListsItInValidation(t *testing.T) {
	srv := newTestServer(t, app.Stores{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth/login", map[string]any{"email": "cook@example.com"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["error"] != "Bad Request" || body["message"] != "Validation error" {
		t.Fatalf("unexpected body: %v", body)
	}
	validation, ok := body["validation"].([]any)
	if !ok || len(validation) != 1 {
		t.Fatalf("expected one validation issue: %v", body["validation"])
	}
	issue := validation[0].(map[string]any)
	path := issue["path"].([]any)
	if len(path) != 1 || path[0] != "password" {
		t.Fatalf("issue path = %v", path)
	}
	if issue["message"] != "Required" {
		t.Fatalf("issue message = %v", issue["message"])
	}
}

func TestLoginSuccessAndRejection(t *testing.T) {
	srv := newTestServer(t, app.Stores{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth/login", map[string]any{
		"email":    "cook@example.com",
		"password": "secret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, body)
	}
	if body["accessToken"] != "token-abc" {
		t.Fatalf("accessToken missing: %v", body)
	}
	if body["email"] != "cook@example.com" {
		t.Fatalf("email = %v", body["email"])
	}
	roles, ok := body["roles"].([]any)
	if !ok || len(roles) != 0 {
		t.Fatalf("roles must be an empty array: %v", body["roles"])
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/auth/login", map[string]any{
		"email":    "cook@example.com",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["message"] != "Invalid credentials." || body["error"] != "Forbidden" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, present := body["validation"]; present {
		t.Fatalf("fault body must not carry validation: %v", body)
	}
}

func TestProductLifecycle(t *testing.T) {
	srv := newTestServer(t, app.Stores{})

	resp, created := doJSON(t, http.MethodPost, srv.URL+"/products", map[string]any{
		"name":  "Flour",
		"price": 2.5,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d, body %v", resp.StatusCode, created)
	}
	id, ok := created["id"].(float64)
	if !ok || id == 0 {
		t.Fatalf("expected server-assigned id: %v", created)
	}
	if _, present := created["created_at"]; present {
		t.Fatalf("response must only carry declared fields: %v", created)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/products", map[string]any{
		"id":    id,
		"name":  "Flour",
		"price": 3.0,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("replace status = %d", resp.StatusCode)
	}

	listResp, err := http.Get(srv.URL + "/products")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer listResp.Body.Close()
	var list []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0]["price"] != 3.0 {
		t.Fatalf("unexpected list: %v", list)
	}

	for i := 0; i < 2; i++ {
		resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/products", map[string]any{"id": id})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("delete attempt %d status = %d", i+1, resp.StatusCode)
		}
	}
}

func TestProductValidationReportsAllIssues(t *testing.T) {
	srv := newTestServer(t, app.Stores{})

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/products", map[string]any{
		"name":  "",
		"price": "cheap",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	validation, ok := body["validation"].([]any)
	if !ok || len(validation) != 2 {
		t.Fatalf("expected both issues reported together: %v", body["validation"])
	}
}

func TestHealthzIgnoresStores(t *testing.T) {
	srv := newTestServer(t, app.Stores{Products: failingProductStore{}})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["status"] != "ok" || body["statusCode"] != float64(200) {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestStoreFaultBecomesInternalError(t *testing.T) {
	srv := newTestServer(t, app.Stores{Products: failingProductStore{}})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/products", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["message"] != "pq: connection refused" {
		t.Fatalf("fault must keep its own message: %v", body)
	}
}

func TestRootAndVersion(t *testing.T) {
	srv := newTestServer(t, app.Stores{})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, body)
	}
	node, ok := body["node"].(map[string]any)
	if !ok || node["env"] != "test" {
		t.Fatalf("unexpected node: %v", body)
	}
	if _, ok := body["version"].(map[string]any); !ok {
		t.Fatalf("missing version: %v", body)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/version", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["version"] == nil || body["major"] == nil {
		t.Fatalf("unexpected version body: %v", body)
	}
}

type failingProductStore struct{}

func (failingProductStore) UpsertProduct(context.Context, product.Product) (product.Product, error) {
	return product.Product{}, errors.New("pq: connection refused")
}

func (failingProductStore) ListProducts(context.Context) ([]product.Product, error) {
	return nil, errors.New("pq: connection refused")
}

func (failingProductStore) DeleteProduct(context.Context, int64) error {
	return errors.New("pq: connection refused")
}

var _ storage.ProductStore = failingProductStore{}
