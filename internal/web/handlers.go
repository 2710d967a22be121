package web

import (
	"net/http"
	"strconv"

	"github.com/chefos/platform/pkg/client"
)

type loginPage struct {
	Flashes []string
}

type dashboardPage struct {
	Email   string
	Health  client.Health
	Version client.Version
	Flashes []string
}

type productsPage struct {
	Email    string
	Products []client.Product
	Flashes  []string
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	data, sess := s.currentSession(r)
	if data.Token != "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	s.render(w, "login.html", loginPage{Flashes: s.flashes(w, r, sess)})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	_, sess := s.currentSession(r)

	res, err := s.api.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		s.addFlash(w, r, sess, s.userMessage(r, err))
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := s.saveSession(w, r, sess, sessionData{Token: res.AccessToken, Email: res.Email}); err != nil {
		s.log.WithContext(r.Context()).WithError(err).Error("save session")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	_, sess := s.currentSession(r)
	sess.Options.MaxAge = -1
	delete(sess.Values, "data")
	_ = sess.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	data, sess := s.currentSession(r)
	if data.Token == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	page := dashboardPage{Email: data.Email, Flashes: s.flashes(w, r, sess)}
	if health, err := s.api.GetHealth(r.Context()); err == nil {
		page.Health = health
	}
	if version, err := s.api.GetVersion(r.Context()); err == nil {
		page.Version = version
	}
	s.render(w, "dashboard.html", page)
}

func (s *Server) products(w http.ResponseWriter, r *http.Request) {
	data, sess := s.currentSession(r)
	if data.Token == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	list, err := s.api.WithSession(data.Token).ListProducts(r.Context())
	if err != nil {
		s.addFlash(w, r, sess, s.userMessage(r, err))
	}
	s.render(w, "products.html", productsPage{
		Email:    data.Email,
		Products: list,
		Flashes:  s.flashes(w, r, sess),
	})
}

func (s *Server) saveProduct(w http.ResponseWriter, r *http.Request) {
	data, sess := s.currentSession(r)
	if data.Token == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	var p client.Product
	p.Name = r.PostFormValue("name")
	p.Price, _ = strconv.ParseFloat(r.PostFormValue("price"), 64)
	if raw := r.PostFormValue("id"); raw != "" {
		p.ID, _ = strconv.ParseInt(raw, 10, 64)
	}

	if _, err := s.api.WithSession(data.Token).UpsertProduct(r.Context(), p); err != nil {
		s.addFlash(w, r, sess, s.userMessage(r, err))
	}
	http.Redirect(w, r, "/products", http.StatusFound)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	data, sess := s.currentSession(r)
	if data.Token == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	id, _ := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err := s.api.WithSession(data.Token).DeleteProduct(r.Context(), id); err != nil {
		s.addFlash(w, r, sess, s.userMessage(r, err))
	}
	http.Redirect(w, r, "/products", http.StatusFound)
}
