package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pentu/internal/results"
)

func (s *Server) toolsHandler(w http.ResponseWriter, r *http.Request) {
	if s.Tools == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, s.Tools.CheckAll().Sorted())
}

func schemaHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, results.Schemas())
}

func (s *Server) resultsListHandler(w http.ResponseWriter, r *http.Request) {
	items, err := s.Reports.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errJSON(err))
		return
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		items = results.Filter(items, q)
	}
	writeJSON(w, http.StatusOK, items)
}

// resultHandler returns the raw report text, or metadata plus content when
// called with ?format=json.
func (s *Server) resultHandler(c *gin.Context) {
	name := c.Param("name")
	content, err := s.Reports.ReadName(name)
	if err != nil {
		writeJSON(c.Writer, statusFor(err), errJSON(err))
		return
	}
	if c.Query("format") != "json" {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
		return
	}
	rf, err := s.Reports.Describe(name)
	if err != nil {
		writeJSON(c.Writer, statusFor(err), errJSON(err))
		return
	}
	writeJSON(c.Writer, http.StatusOK, map[string]any{"report": rf, "content": content})
}

func statusFor(err error) int {
	if errors.Is(err, results.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func errJSON(err error) map[string]string { return map[string]string{"error": err.Error()} }
