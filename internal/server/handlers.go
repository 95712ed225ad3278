package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	gocache "github.com/patrickmn/go-cache"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/intake"
	"github.com/bisheshoggo/symtriage/internal/knowledge"
	"github.com/bisheshoggo/symtriage/internal/reporter"
	"github.com/bisheshoggo/symtriage/internal/store"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

const (
	relatedLimit     = 3
	defaultListLimit = 50
	maxListLimit     = 500
	maxBodyBytes     = 1 << 20
)

// checkRequest is the POST body: the report fields plus an optional patient.
type checkRequest struct {
	PatientID string `json:"patient_id"`
	triage.Report
}

// checkResponse is a stored check plus the result flattened into the
// requested language.
type checkResponse struct {
	*check.Check
	Language    triage.Language              `json:"language"`
	Display     triage.LocalizedResult       `json:"display"`
	Explanation string                       `json:"explanation"`
	Hotline     string                       `json:"hotline,omitempty"`
	Related     []knowledge.LocalizedArticle `json:"related,omitempty"`
}

type cachedResponse struct {
	status int
	body   []byte
}

// inFlight reserves an Idempotency-Key while its first request is running.
type inFlight struct{}

func (s *Server) respond(c *check.Check, lang triage.Language) checkResponse {
	resp := checkResponse{
		Check:       c,
		Language:    lang,
		Display:     c.Result.Localize(lang),
		Explanation: s.engine.ExplainRiskLevel(c.Level(), lang),
	}
	if c.Result.ShouldSeekImmediateCare {
		resp.Hotline = s.deps.Hotline
	}
	for _, a := range s.deps.Knowledge.Related(c.Report, relatedLimit) {
		resp.Related = append(resp.Related, a.Localize(lang))
	}
	return resp
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("Idempotency-Key")
	if key != "" {
		if err := s.idem.Add(key, inFlight{}, gocache.DefaultExpiration); err != nil {
			s.replay(w, key)
			return
		}
	}

	status, body := s.submit(w, r)
	if key != "" {
		if status == http.StatusCreated {
			s.idem.SetDefault(key, cachedResponse{status: status, body: body})
		} else {
			s.idem.Delete(key)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// replay answers a request whose Idempotency-Key is already taken: with the
// stored response once there is one, or 409 while the first is running.
func (s *Server) replay(w http.ResponseWriter, key string) {
	v, ok := s.idem.Get(key)
	cached, done := v.(cachedResponse)
	if !ok || !done {
		writeError(w, http.StatusConflict, "a request with this Idempotency-Key is in progress")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Idempotent-Replayed", "true")
	w.WriteHeader(cached.status)
	_, _ = w.Write(cached.body)
}

// submit decodes and runs one check, returning the status and JSON body.
func (s *Server) submit(w http.ResponseWriter, r *http.Request) (int, []byte) {
	var req checkRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return errorBody(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if !req.Duration.Valid() {
		if d, err := triage.ParseDurationBucket(string(req.Duration)); err == nil {
			req.Duration = d
		}
	}

	c, err := s.deps.Intake.Submit(r.Context(), intake.Submission{PatientID: req.PatientID, Report: req.Report})
	if err != nil {
		return errorBody(statusFor(err), err.Error())
	}

	body, err := encode(s.respond(c, s.language(r)))
	if err != nil {
		return errorBody(http.StatusInternalServerError, "encoding response")
	}
	return http.StatusCreated, body
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.QueryFilter{
		PatientID: q.Get("patient_id"),
		Limit:     defaultListLimit,
	}

	if v := q.Get("level"); v != "" {
		level, err := triage.ParseRiskLevel(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		f.Level = level
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		f.Limit = min(n, maxListLimit)
	}

	checks, err := s.deps.Checks.Query(f)
	if err != nil {
		slog.Error("listing checks", "error", err)
		writeError(w, http.StatusInternalServerError, "listing checks")
		return
	}

	lang := s.language(r)
	out := make([]checkResponse, 0, len(checks))
	for _, c := range checks {
		out = append(out, s.respond(c, lang))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Checks.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.respond(c, s.language(r)))
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	level, err := triage.ParseRiskLevel(chi.URLParam(r, "level"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	lang := s.language(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"risk_level":  level,
		"language":    lang,
		"explanation": s.engine.ExplainRiskLevel(level, lang),
	})
}

func (s *Server) handleEmergencyMessage(w http.ResponseWriter, r *http.Request) {
	var d reporter.EmergencyData
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if d.PatientName == "" || d.Emergency == "" {
		writeError(w, http.StatusBadRequest, "patient_name and emergency are required")
		return
	}
	lang := s.language(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"language":  lang,
		"message":   reporter.EmergencyMessage(d, lang),
		"shareable": reporter.ShareableEmergencyText(d, lang),
		"hotline":   s.deps.Hotline,
	})
}

func (s *Server) handleKnowledge(w http.ResponseWriter, r *http.Request) {
	kb := s.deps.Knowledge
	lang := s.language(r)
	q := r.URL.Query()

	articles := kb.Search(q.Get("q"), lang)
	if cat := q.Get("category"); cat != "" {
		if !kb.HasCategory(cat) {
			writeError(w, http.StatusNotFound, "unknown category "+strconv.Quote(cat))
			return
		}
		articles = slices.DeleteFunc(articles, func(a knowledge.Article) bool { return a.Category != cat })
	}

	out := make([]knowledge.LocalizedArticle, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Localize(lang))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"language": lang,
		"articles": out,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	lang := s.language(r)
	type category struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Count int    `json:"count"`
	}
	var out []category
	for _, c := range s.deps.Knowledge.Categories() {
		out = append(out, category{c.ID, c.Label.In(lang), len(s.deps.Knowledge.ByCategory(c.ID))})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"language":   lang,
		"categories": out,
	})
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	if s.deps.Sync == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	st, err := s.deps.Sync.Status()
	if err != nil {
		slog.Error("reading sync status", "error", err)
		writeError(w, http.StatusInternalServerError, "reading sync status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled":   true,
		"last_sync": st.LastSync,
		"pending":   st.Pending,
		"syncing":   st.Syncing,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, triage.ErrInvalidSeverity),
		errors.Is(err, triage.ErrInvalidDuration),
		errors.Is(err, triage.ErrInvalidAge),
		errors.Is(err, triage.ErrInvalidTemperature):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// errorBody renders an error response body for callers that write it later.
func errorBody(status int, msg string) (int, []byte) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", msg)
	}
	body, _ := encode(map[string]string{"error": msg})
	return status, body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", msg)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
