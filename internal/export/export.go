// Package export implements scope-bounded CSV export orchestration:
// serializing either the caller's in-memory page rows or a fresh,
// filter-bound, capped fetch of all matching rows.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/csvio"
	"github.com/aquadesk/aquadesk/internal/logging"
	"github.com/aquadesk/aquadesk/internal/notify"
)

// Scope selects which rows an export covers.
type Scope string

const (
	// ScopePage exports the rows the caller already holds for display;
	// no fetch happens.
	ScopePage Scope = "page"

	// ScopeAll exports a fresh fetch honoring the current filters,
	// capped at MaxExportRows.
	ScopeAll Scope = "all"
)

// MaxExportRows caps an "all" scope export. Rows beyond the cap are
// silently truncated; surfacing the cap to the user is a display
// concern.
const MaxExportRows = 10000

// ErrNoRows is returned for a page-scope export with no rows; a
// warning notification has already been pushed when it is returned.
var ErrNoRows = errors.New("export: no rows to export")

// ErrBadScope is returned for an unrecognized scope value.
var ErrBadScope = errors.New("export: scope must be \"page\" or \"all\"")

// Options are the caller's export parameters.
type Options struct {
	Scope    Scope
	Filters  core.Filters // active list filters, used by ScopeAll only
	PageRows []core.Row   // rows currently displayed, used by ScopePage only
	Columns  []string     // selected leaf column keys in header order
}

// Result is a produced CSV file.
type Result struct {
	FileName string
	Data     []byte
	RowCount int
}

// Exporter produces CSV exports for registered entities.
type Exporter struct {
	db       core.DBTX
	notifier *notify.Queue
	now      func() time.Time
}

// New returns an Exporter backed by db that reports outcomes to the
// notification queue.
func New(db core.DBTX, notifier *notify.Queue) *Exporter {
	return &Exporter{db: db, notifier: notifier, now: time.Now}
}

// Export produces a CSV file for the entity per the options. Failures
// are pushed to the notification queue and returned; an export failure
// is never fatal to the caller's page, so the error carries no internal
// detail beyond its message.
func (e *Exporter) Export(ctx context.Context, entityKey string, opts Options) (*Result, error) {
	def, ok := core.Get(entityKey)
	if !ok {
		return nil, fmt.Errorf("export %q: %w", entityKey, core.ErrUnknownEntity)
	}

	logger := logging.WithFields(ctx, "entity", entityKey, "scope", opts.Scope)

	var rows []core.Row
	switch opts.Scope {
	case ScopePage:
		if len(opts.PageRows) == 0 {
			e.notifier.Push(notify.LevelWarning, "There is no data on this page to export.")
			return nil, ErrNoRows
		}
		rows = opts.PageRows

	case ScopeAll:
		fetched, err := def.FetchAll(ctx, e.db, opts.Filters, MaxExportRows)
		if err != nil {
			logger.Error("export fetch failed", "error", err)
			e.notifier.Push(notify.LevelError, fmt.Sprintf("Export of %s failed.", def.Label))
			return nil, fmt.Errorf("export %s: %w", entityKey, err)
		}
		if len(fetched) == 0 {
			e.notifier.Push(notify.LevelWarning, "No rows match the current filters.")
			return nil, ErrNoRows
		}
		rows = fetched

	default:
		return nil, ErrBadScope
	}

	data := csvio.Serialize(rows, opts.Columns)

	result := &Result{
		FileName: fmt.Sprintf("%s_export_%d.csv", entityKey, e.now().UnixMilli()),
		Data:     []byte(data),
		RowCount: len(rows),
	}

	logger.Info("export produced", "rows", result.RowCount, "file", result.FileName)
	return result, nil
}
