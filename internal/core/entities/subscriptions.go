package entities

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func init() {
	core.Register(core.EntityDefinition{
		Key:          "subscriptions",
		Label:        "Subscriptions",
		Columns:      schema.SubscriptionColumns,
		ImportFields: schema.SubscriptionImportFields,
		FetchAll:     fetchSubscriptions,
		BulkImport:   importSubscriptions,
	})
}

var subscriptionFilterColumns = []filterColumn{
	{Name: "subscriptionNumber", Column: "s.subscription_number"},
	{Name: "subscriptionGroup", Column: "s.subscription_group", Exact: true},
	{Name: "customerNumber", Column: "c.customer_number"},
	{Name: "city", Column: "s.city"},
	{Name: "district", Column: "s.district"},
}

func fetchSubscriptions(ctx context.Context, db core.DBTX, filters core.Filters, limit int) ([]core.Row, error) {
	where, args := buildWhere(filters, subscriptionFilterColumns)

	query := fmt.Sprintf(`
		SELECT s.subscription_number, s.subscription_group, c.customer_number,
		       s.city, s.district, s.neighborhood, s.street, s.building_no,
		       s.latitude, s.longitude
		FROM subscriptions s
		LEFT JOIN customers c ON c.id = s.customer_id
		%s
		ORDER BY s.subscription_number
		LIMIT $%d`, where, len(args)+1)
	args = append(args, limit)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var out []core.Row
	for rows.Next() {
		var (
			number                 string
			group, customerNumber  *string
			city                   string
			district, neighborhood *string
			street, buildingNo     *string
			latitude, longitude    *float64
		)
		if err := rows.Scan(&number, &group, &customerNumber,
			&city, &district, &neighborhood, &street, &buildingNo,
			&latitude, &longitude); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}

		out = append(out, core.Row{
			"subscriptionNumber": number,
			"subscriptionGroup":  deref(group),
			"customer": core.Row{
				"customerNumber": deref(customerNumber),
			},
			"address": core.Row{
				"city":         city,
				"district":     deref(district),
				"neighborhood": deref(neighborhood),
				"street":       deref(street),
				"buildingNo":   deref(buildingNo),
			},
			"location": core.Row{
				"latitude":  derefF(latitude),
				"longitude": derefF(longitude),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return out, nil
}

var errCustomerNotFound = rowMessage("customer not found")

func importSubscriptions(ctx context.Context, db core.DBTX, rows []map[string]string, opts core.ImportOptions) (*core.ImportResult, error) {
	insert := func(ctx context.Context, tx pgx.Tx, record map[string]string) error {
		var customerID uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM customers WHERE customer_number = $1`,
			record["customerNumber"]).Scan(&customerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errCustomerNotFound
			}
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO subscriptions (id, subscription_number, subscription_group, customer_id,
			                           city, district, neighborhood, street, building_no,
			                           latitude, longitude)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			uuid.New(),
			record["subscriptionNumber"],
			strOrNil(record["subscriptionGroup"]),
			customerID,
			record["city"],
			strOrNil(record["district"]),
			strOrNil(record["neighborhood"]),
			strOrNil(record["street"]),
			strOrNil(record["buildingNo"]),
			floatOrNil(record["latitude"]),
			floatOrNil(record["longitude"]),
		)
		return err
	}

	return bulkImport(ctx, db, rows, schema.SubscriptionImportFields, nil, insert)
}

// floatOrNil maps empty strings to NULL and parses the rest; the field
// specs already rejected non-numeric values.
func floatOrNil(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}
