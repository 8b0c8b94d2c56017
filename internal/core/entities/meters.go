package entities

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func init() {
	core.Register(core.EntityDefinition{
		Key:          "meters",
		Label:        "Water Meters",
		Columns:      schema.MeterColumns,
		ImportFields: schema.MeterImportFields,
		FetchAll:     fetchMeters,
		BulkImport:   importMeters,
	})
}

var meterFilterColumns = []filterColumn{
	{Name: "serialNumber", Column: "m.serial_number"},
	{Name: "status", Column: "m.status", Exact: true},
	{Name: "city", Column: "s.city"},
	{Name: "subscriptionNumber", Column: "s.subscription_number"},
	{Name: "profileId", Column: "m.profile_id::text", Exact: true},
}

// fetchMeters returns up to limit meters matching the filters as nested
// row objects shaped after schema.MeterColumns. Join targets that are
// absent leave their whole group null.
func fetchMeters(ctx context.Context, db core.DBTX, filters core.Filters, limit int) ([]core.Row, error) {
	where, args := buildWhere(filters, meterFilterColumns)

	query := fmt.Sprintf(`
		SELECT m.serial_number, m.name, m.status, m.initial_index, m.installation_date,
		       p.name, p.brand, p.model, p.diameter,
		       s.subscription_number, s.city, s.district,
		       mod.serial_number, mod.technology
		FROM meters m
		LEFT JOIN meter_profiles p ON p.id = m.profile_id
		LEFT JOIN subscriptions s ON s.id = m.subscription_id
		LEFT JOIN modules mod ON mod.id = m.module_id
		%s
		ORDER BY m.serial_number
		LIMIT $%d`, where, len(args)+1)
	args = append(args, limit)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query meters: %w", err)
	}
	defer rows.Close()

	var out []core.Row
	for rows.Next() {
		var (
			serial, status            string
			name                      *string
			initialIndex              *float64
			installationDate          *time.Time
			profName, brand, model    *string
			diameter                  *int32
			subNumber, city, district *string
			moduleSerial, moduleTech  *string
		)
		if err := rows.Scan(&serial, &name, &status, &initialIndex, &installationDate,
			&profName, &brand, &model, &diameter,
			&subNumber, &city, &district,
			&moduleSerial, &moduleTech); err != nil {
			return nil, fmt.Errorf("scan meter: %w", err)
		}

		row := core.Row{
			"serialNumber":     serial,
			"name":             deref(name),
			"status":           status,
			"initialIndex":     derefF(initialIndex),
			"installationDate": formatDate(installationDate),
			"profile": core.Row{
				"name":     deref(profName),
				"brand":    deref(brand),
				"model":    deref(model),
				"diameter": derefI(diameter),
			},
			"subscription": core.Row{
				"subscriptionNumber": deref(subNumber),
				"address": core.Row{
					"city":     deref(city),
					"district": deref(district),
				},
			},
			"module": core.Row{
				"serialNumber": deref(moduleSerial),
				"technology":   deref(moduleTech),
			},
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meters: %w", err)
	}
	return out, nil
}

// validateMeterDates rejects installation dates that match the digit
// pattern but are not real calendar dates, like 2024-13-40. Without
// this check the insert would silently store NULL for them.
func validateMeterDates(record map[string]string) []schema.Violation {
	value := record["installationDate"]
	if value == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return []schema.Violation{{
			Field:   "installationDate",
			Message: "Installation Date is not a valid calendar date",
		}}
	}
	return nil
}

// importMeters bulk-inserts meters from parsed CSV records. The meter
// name is generated from the serial number wrapped with the prefix and
// suffix options.
func importMeters(ctx context.Context, db core.DBTX, rows []map[string]string, opts core.ImportOptions) (*core.ImportResult, error) {
	insert := func(ctx context.Context, tx pgx.Tx, record map[string]string) error {
		index, _ := strconv.ParseFloat(record["initialIndex"], 64)
		status := record["status"]
		if status == "" {
			status = "stock"
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO meters (id, serial_number, name, status, initial_index, installation_date)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(),
			record["serialNumber"],
			generatedName(record["serialNumber"], opts),
			status,
			index,
			parseDate(record["installationDate"]),
		)
		return err
	}

	return bulkImport(ctx, db, rows, schema.MeterImportFields, validateMeterDates, insert)
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func derefF(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func derefI(i *int32) any {
	if i == nil {
		return nil
	}
	return *i
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
