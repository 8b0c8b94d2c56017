package entities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func init() {
	core.Register(core.EntityDefinition{
		Key:          "modules",
		Label:        "Communication Modules",
		Columns:      schema.ModuleColumns,
		ImportFields: schema.ModuleImportFields,
		FetchAll:     fetchModules,
		BulkImport:   importModules,
	})
}

// ErrProfileRequired is returned when a module import arrives without a
// profile binding; the technology columns cannot be validated without
// the profile's field schema.
var ErrProfileRequired = errors.New("module import requires a profileId")

var moduleFilterColumns = []filterColumn{
	{Name: "serialNumber", Column: "m.serial_number"},
	{Name: "status", Column: "m.status", Exact: true},
	{Name: "technology", Column: "m.technology", Exact: true},
	{Name: "profileId", Column: "m.profile_id::text", Exact: true},
}

// fetchModules returns up to limit modules matching the filters. The
// technology fields come back nested under dynamicFields so they flatten
// to the dynamicFields.* export columns.
func fetchModules(ctx context.Context, db core.DBTX, filters core.Filters, limit int) ([]core.Row, error) {
	where, args := buildWhere(filters, moduleFilterColumns)

	query := fmt.Sprintf(`
		SELECT m.serial_number, m.name, m.status, m.technology, m.dynamic_fields,
		       p.name, p.brand, p.model
		FROM modules m
		LEFT JOIN module_profiles p ON p.id = m.profile_id
		%s
		ORDER BY m.serial_number
		LIMIT $%d`, where, len(args)+1)
	args = append(args, limit)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer rows.Close()

	var out []core.Row
	for rows.Next() {
		var (
			serial, status         string
			name, technology       *string
			dynamicJSON            []byte
			profName, brand, model *string
		)
		if err := rows.Scan(&serial, &name, &status, &technology, &dynamicJSON,
			&profName, &brand, &model); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}

		dynamic := core.Row{}
		if len(dynamicJSON) > 0 {
			if err := json.Unmarshal(dynamicJSON, &dynamic); err != nil {
				return nil, fmt.Errorf("decode module dynamic fields: %w", err)
			}
		}

		out = append(out, core.Row{
			"serialNumber": serial,
			"name":         deref(name),
			"status":       status,
			"technology":   deref(technology),
			"profile": core.Row{
				"name":  deref(profName),
				"brand": deref(brand),
				"model": deref(model),
			},
			"dynamicFields": dynamic,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate modules: %w", err)
	}
	return out, nil
}

// importModules bulk-inserts modules bound to the profile named in the
// options. Each row's technology columns are validated against the
// profile's field schema by the generic rule interpreter before insert.
func importModules(ctx context.Context, db core.DBTX, rows []map[string]string, opts core.ImportOptions) (*core.ImportResult, error) {
	if opts.ProfileID == "" {
		return nil, ErrProfileRequired
	}

	profile, err := GetModuleProfile(ctx, db, opts.ProfileID)
	if err != nil {
		return nil, err
	}

	validateDynamic := func(record map[string]string) []schema.Violation {
		return schema.ValidateRecord(profile.Fields, record)
	}

	insert := func(ctx context.Context, tx pgx.Tx, record map[string]string) error {
		status := record["status"]
		if status == "" {
			status = "stock"
		}

		dynamic := make(map[string]string, len(profile.Fields))
		for _, spec := range profile.Fields {
			if v, ok := record[spec.Name]; ok && v != "" {
				dynamic[spec.Name] = v
			}
		}
		dynamicJSON, err := json.Marshal(dynamic)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO modules (id, serial_number, name, status, technology, profile_id, dynamic_fields)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(),
			record["serialNumber"],
			generatedName(record["serialNumber"], opts),
			status,
			profile.Technology,
			profile.ID,
			dynamicJSON,
		)
		return err
	}

	return bulkImport(ctx, db, rows, schema.ModuleImportFields, validateDynamic, insert)
}
