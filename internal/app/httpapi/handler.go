package httpapi

import (
	"net/http"
	"runtime"
	"time"

	app "github.com/chefos/platform/internal/app"
	"github.com/chefos/platform/internal/app/domain/product"
	"github.com/chefos/platform/internal/logging"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
	log *logging.Logger
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	writeResponse(r.Context(), w, h.log, rootEndpoint, http.StatusOK, map[string]any{
		"node": map[string]any{
			"env":     h.app.Env,
			"version": runtime.Version(),
		},
		"startedAt": h.app.StartedAt.Format(time.RFC3339),
		"uptime":    h.app.Uptime(),
		"version":   h.app.Version,
	})
}

func (h *handler) version(w http.ResponseWriter, r *http.Request) {
	writeResponse(r.Context(), w, h.log, versionEndpoint, http.StatusOK, h.app.Version)
}

// healthz reports liveness only. It must stay cheap and must not touch the
// database.
func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeResponse(r.Context(), w, h.log, healthEndpoint, http.StatusOK, map[string]any{
		"statusCode": http.StatusOK,
		"status":     "ok",
		"uptime":     h.app.Uptime(),
	})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateRequest(loginEndpoint, r)
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}
	body := req.Body.(map[string]any)

	login, err := h.app.Auth.Login(r.Context(), body["email"].(string), body["password"].(string))
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}

	writeResponse(r.Context(), w, h.log, loginEndpoint, http.StatusOK, map[string]any{
		"accessToken": login.AccessToken,
		"id":          login.UserID,
		"email":       login.Email,
		"permissions": login.Permissions,
		"roles":       login.Roles,
	})
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Products.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}
	writeResponse(r.Context(), w, h.log, listProductsEndpoint, http.StatusOK, list)
}

func (h *handler) upsertProduct(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateRequest(upsertProductEndpoint, r)
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}
	body := req.Body.(map[string]any)

	p := product.Product{
		Name: body["name"].(string),
	}
	p.Price, _ = numberField(body, "price")
	if id, ok := intField(body, "id"); ok {
		p.ID = id
	}

	stored, err := h.app.Products.Upsert(r.Context(), p)
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}
	writeResponse(r.Context(), w, h.log, upsertProductEndpoint, http.StatusOK, stored)
}

func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateRequest(deleteProductEndpoint, r)
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}
	body := req.Body.(map[string]any)

	id, _ := intField(body, "id")
	if err := h.app.Products.Remove(r.Context(), id); err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}
	writeResponse(r.Context(), w, h.log, deleteProductEndpoint, http.StatusOK, nil)
}
