package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/cv-feedback/internal/analysis/keywords"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/domain"
	"github.com/fairyhunter13/cv-feedback/internal/usecase"
)

// multipartOverhead is the slack allowed on top of the file cap for form
// fields and part headers.
const multipartOverhead = 1 << 20

// Server aggregates handlers dependencies.
type Server struct {
	Cfg        config.Config
	Analyze    usecase.AnalyzeService
	Extractor  domain.TextExtractor
	Registry   *keywords.Registry
	Tuning     config.Tuning
	RedisCheck func(ctx context.Context) error
	TikaCheck  func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, analyze usecase.AnalyzeService, extractor domain.TextExtractor, reg *keywords.Registry, tuning config.Tuning, redisCheck func(context.Context) error, tikaCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Analyze: analyze, Extractor: extractor, Registry: reg, Tuning: tuning, RedisCheck: redisCheck, TikaCheck: tikaCheck}
}

// allowedExt enforces an allowlist for uploads: .txt, .pdf, .docx
func allowedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".pdf", ".docx":
		return true
	}
	return false
}

func allowedMIMEFor(m string, filename string) bool {
	m = strings.ToLower(m)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		// some detectors misclassify rich text, accept any text/*
		return strings.HasPrefix(m, "text/")
	case ".pdf":
		return m == "application/pdf"
	case ".docx":
		// bare OOXML archives are sniffed as zip
		return m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" || m == "application/zip"
	}
	return false
}

func (s *Server) maxUploadBytes() int64 {
	mb := s.Cfg.MaxUploadMB
	if mb <= 0 {
		mb = 10
	}
	return mb << 20
}

func acceptsJSON(r *http.Request) bool {
	a := r.Header.Get("Accept")
	return a == "" || strings.Contains(a, "*/*") || strings.Contains(a, "application/json")
}

func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "request body too large")
}

// AnalyzeHandler scores a CV sent either as a multipart upload (cv file plus
// optional role and text fields) or as a JSON {text, role} body.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Accept negotiation: only JSON responses supported
		if !acceptsJSON(r) {
			writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{
				Code: "INVALID_ARGUMENT", Message: "not acceptable", Details: map[string]string{"accept": r.Header.Get("Accept")},
			}})
			return
		}
		ct := strings.ToLower(r.Header.Get("Content-Type"))
		var (
			in  usecase.Input
			err error
		)
		switch {
		case strings.HasPrefix(ct, "multipart/form-data"):
			in, err = s.readUpload(w, r)
		case strings.HasPrefix(ct, "application/json"):
			in, err = s.readJSON(w, r)
		default:
			err = fmt.Errorf("%w: content-type must be multipart/form-data or application/json", domain.ErrUnsupportedMedia)
		}
		if err != nil {
			writeError(w, r, err, errorDetails(err))
			return
		}
		res, err := s.Analyze.Analyze(r.Context(), in)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// requestError carries field details to the error envelope.
type requestError struct {
	err     error
	details interface{}
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func errorDetails(err error) interface{} {
	var re *requestError
	if errors.As(err, &re) {
		return re.details
	}
	return nil
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request) (usecase.Input, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes())
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req AnalyzeRequest
	if err := dec.Decode(&req); err != nil {
		if isBodyTooLarge(err) {
			return usecase.Input{}, &requestError{
				err:     fmt.Errorf("%w: request body too large", domain.ErrPayloadTooLarge),
				details: map[string]int64{"max_mb": s.maxUploadBytes() >> 20},
			}
		}
		return usecase.Input{}, fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidArgument, err)
	}
	req.Role = SanitizeString(req.Role)
	if vr := ValidateStruct(req); !vr.Valid {
		return usecase.Input{}, &requestError{err: fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), details: vr.Errors}
	}
	if vr := ValidateRole(req.Role); !vr.Valid {
		return usecase.Input{}, &requestError{err: fmt.Errorf("%w: invalid role", domain.ErrInvalidArgument), details: vr.Errors}
	}
	return usecase.Input{Text: req.Text, Source: usecase.SourceText, Status: domain.ExtractionTextInput, Role: req.Role}, nil
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (usecase.Input, error) {
	maxBytes := s.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if isBodyTooLarge(err) {
			return usecase.Input{}, &requestError{
				err:     fmt.Errorf("%w: payload too large", domain.ErrPayloadTooLarge),
				details: map[string]int64{"max_mb": maxBytes >> 20},
			}
		}
		return usecase.Input{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	role := SanitizeString(r.FormValue("role"))
	if vr := ValidateRole(role); !vr.Valid {
		return usecase.Input{}, &requestError{err: fmt.Errorf("%w: invalid role", domain.ErrInvalidArgument), details: vr.Errors}
	}

	file, header, err := r.FormFile("cv")
	if err != nil {
		// a text field stands in for the file
		if text := r.FormValue("text"); text != "" && errors.Is(err, http.ErrMissingFile) {
			return usecase.Input{Text: text, Source: usecase.SourceText, Status: domain.ExtractionTextInput, Role: role}, nil
		}
		return usecase.Input{}, &requestError{err: fmt.Errorf("%w: cv file or text required", domain.ErrInvalidArgument), details: map[string]string{"field": "cv"}}
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxBytes {
		return usecase.Input{}, &requestError{
			err:     fmt.Errorf("%w: cv exceeds %d MB", domain.ErrPayloadTooLarge, maxBytes>>20),
			details: map[string]int64{"max_mb": maxBytes >> 20},
		}
	}
	if !allowedExt(header.Filename) {
		return usecase.Input{}, &requestError{
			err:     fmt.Errorf("%w: unsupported file extension", domain.ErrUnsupportedMedia),
			details: map[string]string{"field": "cv", "ext": filepath.Ext(header.Filename)},
		}
	}
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return usecase.Input{}, fmt.Errorf("%w: cv read: %v", domain.ErrInvalidArgument, err)
	}
	if int64(len(data)) > maxBytes {
		return usecase.Input{}, fmt.Errorf("%w: cv exceeds %d MB", domain.ErrPayloadTooLarge, maxBytes>>20)
	}
	mt := mimetype.Detect(data)
	if !allowedMIMEFor(mt.String(), header.Filename) {
		return usecase.Input{}, &requestError{
			err:     fmt.Errorf("%w: content does not match extension", domain.ErrUnsupportedMedia),
			details: map[string]string{"field": "cv", "mime": mt.String()},
		}
	}

	src := usecase.TextSource{Extractor: s.Extractor, LowTextChars: s.Cfg.LowTextChars}
	text, status := src.Extract(r.Context(), header.Filename, data)
	return usecase.Input{Text: text, Source: usecase.SourceUpload, Status: status, Role: role}, nil
}

// RoleSummary is one entry of the role catalogue.
type RoleSummary struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Aliases  []string       `json:"aliases"`
	Keywords map[string]int `json:"keywords"`
}

// RolesHandler lists the registered roles with their keyword totals per tier.
func (s *Server) RolesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Registry == nil {
			writeError(w, r, fmt.Errorf("%w: keyword registry not configured", domain.ErrInternal), nil)
			return
		}
		packs := s.Registry.Roles()
		roles := make([]RoleSummary, 0, len(packs))
		for _, p := range packs {
			counts := map[string]int{"total": len(p.Keywords)}
			for _, k := range p.Keywords {
				counts[string(k.Tier)]++
			}
			aliases := p.Aliases
			if aliases == nil {
				aliases = []string{}
			}
			roles = append(roles, RoleSummary{ID: p.ID, Label: p.Label, Aliases: aliases, Keywords: counts})
		}
		writeJSON(w, http.StatusOK, map[string]any{"defaultRole": s.Registry.DefaultRoleID(), "roles": roles})
	}
}

// TuningHandler returns the effective scoring tuning.
func (s *Server) TuningHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"tuning": s.Tuning})
	}
}

// MountAdmin registers the admin routes behind Basic Auth.
func (s *Server) MountAdmin(r chi.Router) {
	r.With(BasicAuth(s.Cfg.AdminUsername, s.Cfg.AdminPasswordHash)).Get("/v1/admin/tuning", s.TuningHandler())
}

// ReadyzHandler returns a readiness handler that checks Tika and Redis.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		deps := []struct {
			name string
			fn   func(context.Context) error
		}{
			{"tika", s.TikaCheck},
			{"redis", s.RedisCheck},
		}
		checks := make([]check, 0, len(deps))
		ok := true
		for _, p := range deps {
			if p.fn == nil {
				continue
			}
			if err := p.fn(ctx); err != nil {
				ok = false
				checks = append(checks, check{Name: p.name, OK: false, Details: err.Error()})
				continue
			}
			checks = append(checks, check{Name: p.name, OK: true})
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

// HealthzHandler reports liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// OpenAPIServe serves api/openapi.yaml if present.
func (s *Server) OpenAPIServe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile("api/openapi.yaml")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(b)
	}
}
