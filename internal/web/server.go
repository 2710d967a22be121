// Package web serves the server-rendered frontend: login, dashboard and
// product management. It talks to the backend exclusively through the typed
// API client; backend errors surface as flash messages, never as raw
// traces.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/chefos/platform/internal/logging"
	"github.com/chefos/platform/pkg/client"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionName = "platform_session"

// Config carries the frontend's settings.
type Config struct {
	BackendURL    string
	SessionSecret string
	// SessionMaxAge is in seconds.
	SessionMaxAge int
	SecureCookies bool
}

// Server is the frontend HTTP surface.
type Server struct {
	api   *client.Client
	store *sessions.CookieStore
	tmpl  *template.Template
	log   *logging.Logger
}

// sessionData is what the signed cookie carries, serialized as JSON.
type sessionData struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// New builds the frontend server.
func New(cfg Config, log *logging.Logger) (*Server, error) {
	if log == nil {
		log = logging.NewDefault("web")
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}

	return &Server{
		api:   client.New(cfg.BackendURL),
		store: store,
		tmpl:  tmpl,
		log:   log,
	}, nil
}

// Handler returns the routed frontend.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/login", s.loginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	r.HandleFunc("/", s.dashboard).Methods(http.MethodGet)
	r.HandleFunc("/products", s.products).Methods(http.MethodGet)
	r.HandleFunc("/products", s.saveProduct).Methods(http.MethodPost)
	r.HandleFunc("/products/delete", s.deleteProduct).Methods(http.MethodPost)
	return r
}

// currentSession returns the decoded session, zero when not logged in.
func (s *Server) currentSession(r *http.Request) (sessionData, *sessions.Session) {
	sess, _ := s.store.Get(r, sessionName)
	raw, ok := sess.Values["data"].(string)
	if !ok {
		return sessionData{}, sess
	}
	var data sessionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return sessionData{}, sess
	}
	return data, sess
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, sess *sessions.Session, data sessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sess.Values["data"] = string(raw)
	return sess.Save(r, w)
}

// flash pulls queued flash messages and persists their removal.
func (s *Server) flashes(w http.ResponseWriter, r *http.Request, sess *sessions.Session) []string {
	raw := sess.Flashes()
	if len(raw) > 0 {
		_ = sess.Save(r, w)
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, sess *sessions.Session, msg string) {
	sess.AddFlash(msg)
	_ = sess.Save(r, w)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.WithError(err).Error("render template")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// userMessage maps an API failure to something safe to show. Structured
// backend errors carry their own message; transport failures get a generic
// line.
func (s *Server) userMessage(r *http.Request, err error) string {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	s.log.WithContext(r.Context()).WithError(err).Error("backend unreachable")
	return "The service is temporarily unavailable. Please try again."
}
