// Package core defines the entity registry driving the bulk CSV
// import/export pipeline. Each entity registers its export column tree,
// its import field specs, and the two operations the orchestrators call:
// a filtered bounded fetch and a single-shot bulk import.
package core

import (
	"context"
	"errors"

	"github.com/aquadesk/aquadesk/internal/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Row is a nested row object as returned by entity fetches. Nested maps
// become dotted-path columns when flattened for export.
type Row = map[string]any

// Filters holds the active list filters for an "all" scope export,
// keyed by filter field name.
type Filters map[string]string

// ImportOptions carries the entity-specific knobs of a bulk import.
type ImportOptions struct {
	// NamePrefix and NameSuffix wrap generated device names,
	// e.g. prefix "MTR-" turns serial 001 into name "MTR-001".
	NamePrefix string
	NameSuffix string

	// ProfileID binds imported modules to a device profile whose field
	// schema validates the technology columns. Ignored by entities
	// without profiles.
	ProfileID string
}

// RowError is a single row-level validation or insert failure.
// Row is 1-based over the data rows, excluding the header.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportResult is the structured outcome of a bulk import. The importer
// that produced it is authoritative; callers must not recompute counts.
// ImportedRows + FailedRows == TotalRows always holds.
type ImportResult struct {
	Success      bool       `json:"success"`
	TotalRows    int        `json:"totalRows"`
	ImportedRows int        `json:"importedRows"`
	FailedRows   int        `json:"failedRows"`
	Errors       []RowError `json:"errors"`
}

// Finalize fills the derived fields from the error list. A row can
// carry several error entries but fails only once, so FailedRows counts
// distinct row numbers. Success is strict: any failed row makes it
// false, so callers can split success/warning reporting on it alone.
func (r *ImportResult) Finalize() {
	failed := make(map[int]struct{}, len(r.Errors))
	for _, e := range r.Errors {
		failed[e.Row] = struct{}{}
	}
	r.FailedRows = len(failed)
	r.ImportedRows = r.TotalRows - r.FailedRows
	r.Success = r.FailedRows == 0
}

// FetchAllFunc fetches up to limit rows matching the filters, in the
// store's natural order.
type FetchAllFunc func(ctx context.Context, db DBTX, filters Filters, limit int) ([]Row, error)

// BulkImportFunc imports all parsed rows in one call and returns the
// authoritative result. Row-level failures are entries in the result,
// not errors; an error return means the whole request failed.
type BulkImportFunc func(ctx context.Context, db DBTX, rows []map[string]string, opts ImportOptions) (*ImportResult, error)

// EntityDefinition contains everything needed to export and import one
// entity.
type EntityDefinition struct {
	Key          string
	Label        string
	Columns      []schema.ExportColumn
	ImportFields []schema.FieldSpec
	FetchAll     FetchAllFunc
	BulkImport   BulkImportFunc
}

// ErrUnknownEntity is returned for entity keys not in the registry.
var ErrUnknownEntity = errors.New("unknown entity")
