package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/core/entities"
	"github.com/aquadesk/aquadesk/internal/csvio"
	"github.com/aquadesk/aquadesk/internal/importer"
	"github.com/go-chi/chi/v5"
)

// handleImport runs a bulk CSV import for an entity. The multipart form
// carries the file plus the entity-specific options (namePrefix,
// nameSuffix, profileId).
//
// A 200 response always carries an ImportResult, even when every row
// failed; error status codes mean the request as a whole did not run.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	entityKey := chi.URLParam(r, "entityKey")
	if entityKey == "" {
		writeError(w, http.StatusBadRequest, "missing entity key")
		return
	}

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "only .csv files are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	result, err := s.importer.Import(ctx, entityKey, data, importer.Options{
		NamePrefix: r.FormValue("namePrefix"),
		NameSuffix: r.FormValue("nameSuffix"),
		ProfileID:  r.FormValue("profileId"),
	})
	switch {
	case errors.Is(err, core.ErrUnknownEntity):
		writeError(w, http.StatusNotFound, "entity not found")
		return
	case errors.Is(err, csvio.ErrTooShort):
		writeError(w, http.StatusBadRequest, "file must contain a header line and at least one data row")
		return
	case errors.Is(err, entities.ErrProfileRequired):
		writeError(w, http.StatusBadRequest, "module import requires a profileId")
		return
	case errors.Is(err, entities.ErrProfileNotFound):
		writeError(w, http.StatusBadRequest, "profile not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}

	writeJSON(w, result)
}
