package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/export"
	"github.com/go-chi/chi/v5"
)

// exportRequest is the JSON body of POST /api/export/{entityKey}.
// Rows carries the caller's current page for scope "page"; Filters the
// active list filters for scope "all"; Columns the selected leaf keys in
// header order.
type exportRequest struct {
	Scope   string            `json:"scope"`
	Filters map[string]string `json:"filters"`
	Rows    []map[string]any  `json:"rows"`
	Columns []string          `json:"columns"`
}

// handleExport produces a CSV download for an entity.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	entityKey := chi.URLParam(r, "entityKey")
	if entityKey == "" {
		writeError(w, http.StatusBadRequest, "missing entity key")
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Export.Timeout)
	defer cancel()

	pageRows := make([]core.Row, len(req.Rows))
	for i, row := range req.Rows {
		pageRows[i] = row
	}

	result, err := s.exporter.Export(ctx, entityKey, export.Options{
		Scope:    export.Scope(req.Scope),
		Filters:  req.Filters,
		PageRows: pageRows,
		Columns:  req.Columns,
	})
	switch {
	case errors.Is(err, core.ErrUnknownEntity):
		writeError(w, http.StatusNotFound, "entity not found")
		return
	case errors.Is(err, export.ErrBadScope):
		writeError(w, http.StatusBadRequest, "scope must be \"page\" or \"all\"")
		return
	case errors.Is(err, export.ErrNoRows):
		// Not exceptional: the warning is already queued, there is just
		// no file to hand back.
		writeError(w, http.StatusConflict, "no rows to export")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	w.Header().Set("X-Export-Row-Count", fmt.Sprintf("%d", result.RowCount))
	w.Write(result.Data)
}
