// Package importer implements bulk CSV import orchestration: parse the
// uploaded file, submit every row to the entity's bulk importer in one
// request, and return the importer's structured result verbatim.
package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/csvio"
	"github.com/aquadesk/aquadesk/internal/logging"
	"github.com/aquadesk/aquadesk/internal/notify"
)

// Options are the entity-specific import knobs supplied alongside the
// file.
type Options struct {
	NamePrefix string
	NameSuffix string
	ProfileID  string
}

// Importer runs bulk CSV imports for registered entities.
type Importer struct {
	db       core.DBTX
	notifier *notify.Queue
}

// New returns an Importer backed by db that reports outcomes to the
// notification queue.
func New(db core.DBTX, notifier *notify.Queue) *Importer {
	return &Importer{db: db, notifier: notifier}
}

// Import parses the file bytes and submits all rows to the entity's bulk
// importer in a single call. The returned result is the importer's own;
// counts are never recomputed here.
//
// Error semantics split two ways: a parse or transport failure pushes an
// error notification and returns an error with no result, while row-level
// rejections resolve normally with FailedRows > 0 and per-row entries in
// Errors. Callers distinguish "the whole request failed" from "the
// request succeeded with some rows rejected" by whether an error was
// returned.
func (im *Importer) Import(ctx context.Context, entityKey string, data []byte, opts Options) (*core.ImportResult, error) {
	def, ok := core.Get(entityKey)
	if !ok {
		return nil, fmt.Errorf("import %q: %w", entityKey, core.ErrUnknownEntity)
	}

	logger := logging.WithFields(ctx, "entity", entityKey)

	rows, err := csvio.Parse(string(csvio.SanitizeUTF8(data)))
	if err != nil {
		if errors.Is(err, csvio.ErrTooShort) {
			im.notifier.Push(notify.LevelError, "The file must contain a header line and at least one data row.")
		} else {
			im.notifier.Push(notify.LevelError, "The file could not be parsed.")
		}
		return nil, fmt.Errorf("import %s: %w", entityKey, err)
	}

	result, err := def.BulkImport(ctx, im.db, rows, core.ImportOptions{
		NamePrefix: opts.NamePrefix,
		NameSuffix: opts.NameSuffix,
		ProfileID:  opts.ProfileID,
	})
	if err != nil {
		logger.Error("bulk import failed", "error", err)
		im.notifier.Push(notify.LevelError, fmt.Sprintf("Import of %s failed.", def.Label))
		return nil, fmt.Errorf("import %s: %w", entityKey, err)
	}

	switch {
	case result.FailedRows == 0:
		im.notifier.Push(notify.LevelSuccess,
			fmt.Sprintf("%d of %d rows imported.", result.ImportedRows, result.TotalRows))
	default:
		im.notifier.Push(notify.LevelWarning,
			fmt.Sprintf("%d of %d rows imported, %d failed.", result.ImportedRows, result.TotalRows, result.FailedRows))
	}

	logger.Info("import finished",
		"total", result.TotalRows,
		"imported", result.ImportedRows,
		"failed", result.FailedRows,
	)
	return result, nil
}
