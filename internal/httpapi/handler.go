// Package httpapi exposes a brflags.DB as a read-only JSON API.
//
// Every parameter arrives as a raw string, so invalid UFs, styles and formats
// degrade to empty lists or 404s rather than errors.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andreiashu/brflags"
)

// Handler serves the API over a single DB.
type Handler struct {
	db      *brflags.DB
	baseURL string
	log     logrus.FieldLogger
	mux     *http.ServeMux
}

// Option configures a Handler.
type Option func(*Handler)

// WithBaseURL makes flag responses carry an absolute "url" next to "path".
func WithBaseURL(base string) Option {
	return func(h *Handler) {
		h.baseURL = base
	}
}

// WithLogger sets the request logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(h *Handler) {
		h.log = l
	}
}

// New builds the handler and its routes.
func New(db *brflags.DB, opts ...Option) *Handler {
	h := &Handler{
		db:  db,
		log: logrus.StandardLogger(),
		mux: http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.WithField("component", "httpapi")

	h.mux.HandleFunc("GET /municipios", h.listMunicipios)
	h.mux.HandleFunc("GET /municipios/{code}", h.getMunicipio)
	h.mux.HandleFunc("GET /search", h.search)
	h.mux.HandleFunc("GET /flags/{code}", h.getFlagSet)
	h.mux.HandleFunc("GET /flags/{code}/{style}/{format}", h.getFlag)
	h.mux.HandleFunc("GET /stats", h.getStats)
	return h
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)
	h.log.WithFields(logrus.Fields{
		"category": "request",
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   rec.status,
		"elapsed":  time.Since(start),
	}).Debug("served")
}

// flagResponse is the body of a single flag lookup.
type flagResponse struct {
	Code   int    `json:"ibge_code"`
	Style  string `json:"style"`
	Format string `json:"format"`
	Path   string `json:"path"`
	URL    string `json:"url,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listMunicipios serves /municipios?uf=SP&icons=true.
func (h *Handler) listMunicipios(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	icons, _ := strconv.ParseBool(q.Get("icons"))

	var out []brflags.Municipio
	switch ufParam := q.Get("uf"); {
	case ufParam == "" && icons:
		out = h.db.MunicipiosWithFlags("")
	case ufParam == "":
		out = h.db.Municipios()
	default:
		uf, ok := brflags.ParseUF(ufParam)
		if !ok {
			break
		}
		if icons {
			out = h.db.MunicipiosWithFlags(uf)
		} else {
			out = h.db.ByUF(uf)
		}
	}
	writeList(w, out)
}

func (h *Handler) getMunicipio(w http.ResponseWriter, r *http.Request) {
	m, ok := h.lookup(r)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// search serves /search?q=...; with fuzzy=N an empty substring result falls
// back to suggestions within N edits.
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out := h.db.Search(q.Get("q"))
	if len(out) == 0 {
		if n, err := strconv.Atoi(q.Get("fuzzy")); err == nil && n > 0 {
			out = h.db.Suggest(q.Get("q"), n)
		}
	}
	writeList(w, out)
}

func (h *Handler) getFlagSet(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(r.PathValue("code"))
	if err != nil {
		writeNotFound(w)
		return
	}
	paths, ok := h.db.FlagPaths(code)
	if !ok {
		writeNotFound(w)
		return
	}
	if h.baseURL != "" {
		for k, p := range paths {
			paths[k] = brflags.JoinURL(h.baseURL, p)
		}
	}
	writeJSON(w, http.StatusOK, paths)
}

func (h *Handler) getFlag(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(r.PathValue("code"))
	style, okStyle := brflags.ParseStyle(r.PathValue("style"))
	format, okFormat := brflags.ParseFormat(r.PathValue("format"))
	if err != nil || !okStyle || !okFormat {
		writeNotFound(w)
		return
	}

	path, ok := h.db.FlagPath(code, style, format)
	if !ok {
		writeNotFound(w)
		return
	}
	resp := flagResponse{Code: code, Style: string(style), Format: string(format), Path: path}
	if h.baseURL != "" {
		resp.URL = brflags.JoinURL(h.baseURL, path)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.db.Stats())
}

func (h *Handler) lookup(r *http.Request) (brflags.Municipio, bool) {
	code, err := strconv.Atoi(r.PathValue("code"))
	if err != nil {
		return brflags.Municipio{}, false
	}
	return h.db.Municipio(code)
}

// writeList always encodes a JSON array, never null.
func writeList(w http.ResponseWriter, ms []brflags.Municipio) {
	if ms == nil {
		ms = []brflags.Municipio{}
	}
	writeJSON(w, http.StatusOK, ms)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
