package entities

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// filterColumn maps a filter field name to its database column. Exact
// filters compare with equality; the rest match with ILIKE contains.
type filterColumn struct {
	Name   string
	Column string
	Exact  bool
}

// buildWhere renders a WHERE clause for the active filters. Unknown
// filter names are ignored rather than rejected, matching the permissive
// query-string contract of the list endpoints.
func buildWhere(filters core.Filters, cols []filterColumn) (string, []any) {
	var parts []string
	var args []any

	for _, col := range cols {
		value, ok := filters[col.Name]
		if !ok || value == "" {
			continue
		}
		idx := len(args) + 1
		if col.Exact {
			parts = append(parts, fmt.Sprintf("%s = $%d", col.Column, idx))
			args = append(args, value)
		} else {
			parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col.Column, idx))
			args = append(args, "%"+value+"%")
		}
	}

	if len(parts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// rowValidator runs entity-specific checks beyond the static field specs.
type rowValidator func(record map[string]string) []schema.Violation

// rowInserter inserts one validated record inside the import transaction.
type rowInserter func(ctx context.Context, tx pgx.Tx, record map[string]string) error

// bulkImport runs the shared import loop: validate each record against
// the field specs (plus an optional extra validator), insert the valid
// ones under a per-row savepoint so one bad row never poisons the
// transaction, and commit whatever succeeded. Row failures become
// entries in the result; only transaction-level problems return an
// error.
func bulkImport(ctx context.Context, db core.DBTX, rows []map[string]string, specs []schema.FieldSpec, extra rowValidator, insert rowInserter) (*core.ImportResult, error) {
	result := &core.ImportResult{TotalRows: len(rows), Errors: []core.RowError{}}

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, record := range rows {
		rowNum := i + 1 // 1-based over data rows, header excluded

		violations := schema.ValidateRecord(specs, record)
		if extra != nil {
			violations = append(violations, extra(record)...)
		}
		if len(violations) > 0 {
			for _, v := range violations {
				result.Errors = append(result.Errors, core.RowError{Row: rowNum, Field: v.Field, Message: v.Message})
			}
			continue
		}

		savepoint := fmt.Sprintf("sp_%d", i)
		if _, err := tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
			return nil, fmt.Errorf("create savepoint: %w", err)
		}

		if err := insert(ctx, tx, record); err != nil {
			_, _ = tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint)
			result.Errors = append(result.Errors, core.RowError{Row: rowNum, Message: insertReason(err)})
			continue
		}

		_, _ = tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	result.Finalize()
	return result, nil
}

// rowMessage is an error whose text is safe to hand back per row.
type rowMessage string

func (m rowMessage) Error() string { return string(m) }

// insertReason converts a database error into a message safe to hand
// back per row. Constraint violations get a readable message; anything
// else is reported generically so internals never leak into results.
func insertReason(err error) string {
	var rm rowMessage
	if errors.As(err, &rm) {
		return string(rm)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "already exists"
		case "23503":
			return "related record not found"
		case "23502":
			return "missing required value"
		}
	}
	return "insert failed"
}

// generatedName wraps a base identifier with the import's prefix and
// suffix options.
func generatedName(base string, opts core.ImportOptions) string {
	return opts.NamePrefix + base + opts.NameSuffix
}

// parseDate parses a yyyy-mm-dd cell into a nullable time. Empty cells
// return nil. Callers validate date cells before inserting, so a nil
// here for a non-empty cell never reaches the database.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

// strOrNil maps empty strings to NULL parameters.
func strOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
