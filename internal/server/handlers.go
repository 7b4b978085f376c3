package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/localize/middlewares"
	"github.com/dmitrymomot/localize/pkg/culture"
	"github.com/dmitrymomot/localize/pkg/provider"
	"github.com/dmitrymomot/localize/pkg/resource"
	"github.com/dmitrymomot/localize/pkg/sanitizer"
)

type stringResponse struct {
	Code    string             `json:"code"`
	Name    string             `json:"name"`
	Culture culture.Expression `json:"culture"`
}

type enumerateResponse struct {
	Files   []resource.FileInfo `json:"files"`
	Culture culture.Expression  `json:"culture"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleString(w http.ResponseWriter, r *http.Request) {
	c := s.requested(r)
	code := chi.URLParam(r, "code")
	def := sanitizer.StripTags(r.URL.Query().Get("default"))
	if def == "" {
		def = code
	}

	s.writeJSON(w, r, http.StatusOK, stringResponse{
		Code:    code,
		Name:    s.localizer.DisplayName(r.Context(), c, code, def),
		Culture: c,
	})
}

func (s *Server) handleEnumerate(w http.ResponseWriter, r *http.Request) {
	c := s.requested(r)
	dir := provider.Clean(chi.URLParam(r, "*"))

	files, err := s.localizer.Enumerate(r.Context(), dir, r.URL.Query().Get("ext"), c)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, enumerateResponse{Files: files, Culture: c})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	c := s.requested(r)
	dir, name := path.Split(provider.Clean(chi.URLParam(r, "*")))
	if name == "" || name == "." {
		s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "resource not found"})
		return
	}

	info, err := s.localizer.Resolve(r.Context(), dir, name, r.URL.Query().Get("ext"), c)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if info == nil {
		s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "resource not found"})
		return
	}
	s.writeJSON(w, r, http.StatusOK, info)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	c, err := culture.Parse(chi.URLParam(r, "culture"))
	if err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.localizer.Clear(r.Context(), c); err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := s.renderer.Invalidate(r.Context()); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.logger.InfoContext(r.Context(), "cache cleared", slog.String("culture", c.DisplayName()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := s.localizer.ClearAll(r.Context()); err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := s.renderer.Invalidate(r.Context()); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.logger.InfoContext(r.Context(), "cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

// handleView serves "/docs/intro" from "<views>/docs/intro.<ext>" and
// "/docs/" from "<views>/docs/index.<ext>".
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	c := s.requested(r)

	p := r.URL.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += s.cfg.IndexName
	}
	dir, name := path.Split(provider.Clean(p))

	info, err := s.localizer.Resolve(r.Context(), provider.Join(s.cfg.ViewsDir, dir), name, s.cfg.ViewsExt, c)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if info == nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(r.Context(), &buf, info, c); err != nil {
		s.serverError(w, r, err)
		return
	}

	lang := c
	if info.HasCulture() {
		lang = info.Culture
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", lang.DisplayName())
	w.Header().Add("Vary", "Accept-Language")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) requested(r *http.Request) culture.Expression {
	if c, ok := middlewares.GetCulture(r); ok {
		return c
	}
	return s.localizer.Option().Default()
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Add("Vary", "Accept-Language")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WarnContext(r.Context(), "write response", slog.Any("error", err))
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}
