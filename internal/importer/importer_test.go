package importer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/csvio"
	"github.com/aquadesk/aquadesk/internal/notify"
)

func registerTestEntity(t *testing.T, bulk core.BulkImportFunc) {
	t.Helper()
	core.Clear()
	t.Cleanup(core.Clear)
	core.Register(core.EntityDefinition{
		Key:        "meters",
		Label:      "Meters",
		BulkImport: bulk,
	})
}

func TestImport_AllRowsSucceed(t *testing.T) {
	var gotRows []map[string]string
	var gotOpts core.ImportOptions
	registerTestEntity(t, func(ctx context.Context, db core.DBTX, rows []map[string]string, opts core.ImportOptions) (*core.ImportResult, error) {
		gotRows = rows
		gotOpts = opts
		r := &core.ImportResult{TotalRows: len(rows), Errors: []core.RowError{}}
		r.Finalize()
		return r, nil
	})
	notifier := notify.NewQueue(10, time.Minute)
	im := New(nil, notifier)

	result, err := im.Import(context.Background(), "meters",
		[]byte("serialNumber,status\nMTR-001,active\nMTR-002,stock"),
		Options{NamePrefix: "MTR-", ProfileID: "p1"})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	wantRows := []map[string]string{
		{"serialNumber": "MTR-001", "status": "active"},
		{"serialNumber": "MTR-002", "status": "stock"},
	}
	if !reflect.DeepEqual(gotRows, wantRows) {
		t.Errorf("parsed rows = %v, want %v", gotRows, wantRows)
	}
	if gotOpts.NamePrefix != "MTR-" || gotOpts.ProfileID != "p1" {
		t.Errorf("options not passed through: %+v", gotOpts)
	}

	if !result.Success || result.ImportedRows != 2 {
		t.Errorf("result = %+v, want success with 2 imported", result)
	}
	if active := notifier.Active(); len(active) != 1 || active[0].Level != notify.LevelSuccess {
		t.Errorf("expected one success notification, got %v", active)
	}
}

func TestImport_PartialFailure(t *testing.T) {
	registerTestEntity(t, func(ctx context.Context, db core.DBTX, rows []map[string]string, opts core.ImportOptions) (*core.ImportResult, error) {
		r := &core.ImportResult{
			TotalRows: len(rows),
			Errors:    []core.RowError{{Row: 2, Field: "serialNumber", Message: "already exists"}},
		}
		r.Finalize()
		return r, nil
	})
	notifier := notify.NewQueue(10, time.Minute)
	im := New(nil, notifier)

	result, err := im.Import(context.Background(), "meters",
		[]byte("serialNumber\nMTR-001\nMTR-001"), Options{})
	if err != nil {
		t.Fatalf("Import() error = %v; row failures must not be an error", err)
	}

	if result.Success {
		t.Errorf("Success = true with failed rows")
	}
	if result.ImportedRows+result.FailedRows != result.TotalRows {
		t.Errorf("imported+failed != total: %+v", result)
	}
	if len(result.Errors) != 1 || result.Errors[0].Row != 2 {
		t.Errorf("Errors = %v", result.Errors)
	}
	if active := notifier.Active(); len(active) != 1 || active[0].Level != notify.LevelWarning {
		t.Errorf("expected one warning notification, got %v", active)
	}
}

func TestImport_TooShortFile(t *testing.T) {
	called := false
	registerTestEntity(t, func(ctx context.Context, db core.DBTX, rows []map[string]string, opts core.ImportOptions) (*core.ImportResult, error) {
		called = true
		return nil, nil
	})
	notifier := notify.NewQueue(10, time.Minute)
	im := New(nil, notifier)

	_, err := im.Import(context.Background(), "meters", []byte("serialNumber\n"), Options{})
	if !errors.Is(err, csvio.ErrTooShort) {
		t.Fatalf("Import() error = %v, want ErrTooShort", err)
	}
	if called {
		t.Errorf("bulk importer called for an unparseable file")
	}
	if active := notifier.Active(); len(active) != 1 || active[0].Level != notify.LevelError {
		t.Errorf("expected one error notification, got %v", active)
	}
}

func TestImport_BulkFailure(t *testing.T) {
	boom := errors.New("begin transaction: connection refused")
	registerTestEntity(t, func(ctx context.Context, db core.DBTX, rows []map[string]string, opts core.ImportOptions) (*core.ImportResult, error) {
		return nil, boom
	})
	notifier := notify.NewQueue(10, time.Minute)
	im := New(nil, notifier)

	_, err := im.Import(context.Background(), "meters", []byte("a\n1"), Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("Import() error = %v, want wrapped bulk error", err)
	}
	if active := notifier.Active(); len(active) != 1 || active[0].Level != notify.LevelError {
		t.Errorf("expected one error notification, got %v", active)
	}
}

func TestImport_UnknownEntity(t *testing.T) {
	core.Clear()
	t.Cleanup(core.Clear)
	im := New(nil, notify.NewQueue(10, time.Minute))

	_, err := im.Import(context.Background(), "widgets", []byte("a\n1"), Options{})
	if !errors.Is(err, core.ErrUnknownEntity) {
		t.Errorf("Import() error = %v, want ErrUnknownEntity", err)
	}
}

func TestImport_InvalidUTF8Sanitized(t *testing.T) {
	var gotRows []map[string]string
	registerTestEntity(t, func(ctx context.Context, db core.DBTX, rows []map[string]string, opts core.ImportOptions) (*core.ImportResult, error) {
		gotRows = rows
		r := &core.ImportResult{TotalRows: len(rows), Errors: []core.RowError{}}
		r.Finalize()
		return r, nil
	})
	im := New(nil, notify.NewQueue(10, time.Minute))

	data := append([]byte("name\nA"), 0xff)
	if _, err := im.Import(context.Background(), "meters", data, Options{}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(gotRows) != 1 || gotRows[0]["name"] != "A�" {
		t.Errorf("rows = %v, want sanitized value", gotRows)
	}
}
