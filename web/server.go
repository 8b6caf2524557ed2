// ABOUTME: REST API server for contacts and categories
// ABOUTME: Serves the JSON endpoints the TUI client talks to
package web

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/rolodex/db"
	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/service"
	"github.com/harperreed/rolodex/viz"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

// Store is the storage the API serves.
type Store interface {
	service.ContactsService
	service.CategoriesService
}

type Server struct {
	store  Store
	logger *zap.Logger
	token  string
	mux    *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithAuthToken requires requests to carry "Authorization: Bearer <token>".
func WithAuthToken(token string) Option {
	return func(s *Server) { s.token = token }
}

type errorBody struct {
	Error string `json:"error"`
}

func NewServer(store Store, opts ...Option) *Server {
	s := &Server{store: store, logger: zap.NewNop(), mux: http.NewServeMux()}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /contacts", s.handleListContacts)
	s.mux.HandleFunc("POST /contacts", s.handleCreateContact)
	s.mux.HandleFunc("GET /contacts/{id}", s.handleGetContact)
	s.mux.HandleFunc("PUT /contacts/{id}", s.handleUpdateContact)
	s.mux.HandleFunc("DELETE /contacts/{id}", s.handleDeleteContact)
	s.mux.HandleFunc("GET /categories", s.handleListCategories)
	s.mux.HandleFunc("POST /categories", s.handleCreateCategory)
	s.mux.HandleFunc("GET /graph", s.handleGraph)

	return s
}

// Handler returns the routed handler with logging and CORS applied.
func (s *Server) Handler() http.Handler {
	return s.withLogging(withCORS(s.withAuth(s.mux)))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("api server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("api server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	order := models.ParseSortOrder(r.URL.Query().Get("orderBy"))
	contacts, err := s.store.ListContacts(r.Context(), order)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	contact, err := s.store.GetContactByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contact)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var payload models.ContactPayload
	if !s.decode(w, r, &payload) {
		return
	}
	contact, err := s.store.CreateContact(r.Context(), payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, contact)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var payload models.ContactPayload
	if !s.decode(w, r, &payload) {
		return
	}
	contact, err := s.store.UpdateContact(r.Context(), r.PathValue("id"), payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contact)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteContact(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	category, err := s.store.CreateCategory(r.Context(), body.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.ListContacts(r.Context(), models.SortAsc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	dot, err := viz.GenerateCategoryGraph(r.Context(), contacts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = io.WriteString(w, dot)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return false
	}
	return true
}

// statusFor maps store errors onto HTTP responses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound, "Contact not found"
	case errors.Is(err, db.ErrNameRequired):
		return http.StatusBadRequest, "Name is required"
	case errors.Is(err, db.ErrEmailInUse):
		return http.StatusBadRequest, "This e-mail is already in use"
	case errors.Is(err, db.ErrCategoryNotFound):
		return http.StatusBadRequest, "Category not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.writeJSON(w, status, errorBody{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.token == "" {
		return next
	}
	want := "Bearer " + s.token
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subtle.ConstantTimeCompare([]byte(r.Header.Get("Authorization")), []byte(want)) != 1 {
			s.writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
