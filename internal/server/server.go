package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/gradpath/internal/contract"
	"github.com/alexanderramin/gradpath/internal/importer"
	"github.com/alexanderramin/gradpath/internal/service"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20

// errCatalogPath rejects client-named catalogs outside the catalog root.
var errCatalogPath = errors.New("catalog path not allowed")

// Server exposes the plan service over HTTP.
type Server struct {
	svc          service.PlanService
	log          *zap.Logger
	addr         string
	catalogRoot  string
	maxBodyBytes int64
	readTimeout  time.Duration
	writeTimeout time.Duration

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// Option customizes server construction.
type Option func(*Server)

// WithLogger overrides the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithCatalogRoot lets clients name catalog files inside dir. Relative names
// resolve against dir. Without a root, requests may only use the service's
// default catalog.
func WithCatalogRoot(dir string) Option {
	return func(s *Server) {
		if dir == "" {
			return
		}
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		s.catalogRoot = filepath.Clean(dir)
	}
}

// WithTimeouts sets the read and write timeouts of the HTTP server.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// New prepares a server listening on addr.
func New(svc service.PlanService, addr string, opts ...Option) *Server {
	s := &Server{
		svc:          svc,
		log:          zap.NewNop(),
		addr:         addr,
		maxBodyBytes: DefaultMaxBodyBytes,
		readTimeout:  10 * time.Second,
		writeTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /audit", s.handleAudit)
	mux.HandleFunc("GET /catalog", s.handleCatalog)
	mux.HandleFunc("GET /plans", s.handleListPlans)
	mux.HandleFunc("GET /plans/{id}", s.handleGetPlan)
	return mux
}

// Start binds the listener and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("server already started")
	}
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	s.listener = listener
	s.server = srv
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("serve failed", zap.Error(err))
		}
	}()
	s.log.Info("listening", zap.String("addr", listener.Addr().String()))
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.server = nil
	s.listener = nil
	return err
}

// Run serves until ctx is cancelled, then drains with a bounded grace period.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	drain, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(drain)
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req := contract.NewPlanRequest()
	if !s.decodeBody(w, r, &req) {
		return
	}
	var err error
	if req.CatalogPath, err = s.catalogPath(req.CatalogPath); err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.svc.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	doc, err := importer.ParseDocument(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: string(contract.PlanErrInvalidDoc), Error: err.Error()})
		return
	}
	path, err := s.catalogPath(r.URL.Query().Get("catalog"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.svc.AuditDocument(r.Context(), doc, path)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type courseView struct {
	Title   string `json:"title"`
	Grades  []int  `json:"grades"`
	Area    string `json:"area,omitempty"`
	Section string `json:"section,omitempty"`
}

type catalogView struct {
	Path    string       `json:"path,omitempty"`
	Courses []courseView `json:"courses"`
	Report  any          `json:"report,omitempty"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("path")
	path, err := s.catalogPath(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cat, report, err := s.svc.Catalog(r.Context(), path)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := catalogView{Path: name, Courses: make([]courseView, 0, cat.Len())}
	for _, c := range cat.Courses() {
		out.Courses = append(out.Courses, courseView{Title: c.Title, Grades: c.Grades, Area: string(c.Area), Section: c.Section})
	}
	if report != nil {
		out.Report = report
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	docs, err := s.svc.ListPlans(r.Context(), 50)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.GetPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Response)
}

// catalogPath maps a client-named catalog into the catalog root. The empty
// name selects the service default.
func (s *Server) catalogPath(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if s.catalogRoot == "" {
		return "", fmt.Errorf("%w: this server only serves its default catalog", errCatalogPath)
	}
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.catalogRoot, p)
	}
	p = filepath.Clean(p)
	rel, err := filepath.Rel(s.catalogRoot, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside the catalog directory", errCatalogPath, name)
	}
	return p, nil
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	reader := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer reader.Close()
	body, err := io.ReadAll(reader)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "payload exceeds limit"})
			return nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unable to read body"})
		return nil, false
	}
	return body, true
}

// decodeBody decodes JSON over the defaults already in v. An empty body keeps
// the defaults.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, ok := s.readBody(w, r)
	if !ok {
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

type errorBody struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var pe *contract.PlanError
	switch {
	case errors.As(err, &pe):
		status := http.StatusBadRequest
		if pe.Code == contract.PlanErrNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorBody{Code: string(pe.Code), Error: pe.Message})
	case errors.Is(err, errCatalogPath):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, fs.ErrNotExist):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrArchiveDisabled):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
	default:
		s.log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
