package web

import (
	"net/http"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/core/entities"
	"github.com/aquadesk/aquadesk/internal/export"
	"github.com/aquadesk/aquadesk/internal/schema"
	"github.com/go-chi/chi/v5"
)

// entitySummary is the wire shape of one registry entry.
type entitySummary struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// handleListEntities returns the registered entities.
func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	defs := core.All()
	out := make([]entitySummary, len(defs))
	for i, def := range defs {
		out[i] = entitySummary{Key: def.Key, Label: def.Label}
	}
	writeJSON(w, out)
}

// columnsResponse describes an entity's export column tree plus the
// state a column-selection dialog opens with.
type columnsResponse struct {
	Entity        string                `json:"entity"`
	Columns       []schema.ExportColumn `json:"columns"`
	LeafKeys      []string              `json:"leafKeys"`
	ExpandedKeys  []string              `json:"expandedKeys"`
	MaxExportRows int                   `json:"maxExportRows"`
	ImportFields  []schema.FieldSpec    `json:"importFields"`
}

// handleColumns returns the column tree for an entity. LeafKeys doubles
// as the default selection: a dialog opens with every leaf selected.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	entityKey := chi.URLParam(r, "entityKey")
	def, ok := core.Get(entityKey)
	if !ok {
		writeError(w, http.StatusNotFound, "entity not found")
		return
	}

	expansion := schema.DefaultExpansion(def.Columns)
	expanded := make([]string, 0, len(expansion))
	for _, c := range def.Columns {
		if expansion[c.Key] {
			expanded = append(expanded, c.Key)
		}
	}

	writeJSON(w, columnsResponse{
		Entity:        def.Key,
		Columns:       def.Columns,
		LeafKeys:      schema.LeafKeys(def.Columns),
		ExpandedKeys:  expanded,
		MaxExportRows: export.MaxExportRows,
		ImportFields:  def.ImportFields,
	})
}

// handleListProfiles returns the module profiles with their dynamic
// field schemas.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := entities.ListModuleProfiles(r.Context(), s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profiles")
		return
	}
	if profiles == nil {
		profiles = []entities.ModuleProfile{}
	}
	writeJSON(w, profiles)
}

// handleListNotifications returns the active notification queue, oldest
// first.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.notifier.Active())
}

// handleDismissNotification removes one notification by id.
func (s *Server) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.notifier.Dismiss(id) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDismissAllNotifications clears the queue.
func (s *Server) handleDismissAllNotifications(w http.ResponseWriter, r *http.Request) {
	s.notifier.DismissAll()
	w.WriteHeader(http.StatusNoContent)
}
