package entities

import (
	"context"
	"fmt"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func init() {
	core.Register(core.EntityDefinition{
		Key:          "customers",
		Label:        "Customers",
		Columns:      schema.CustomerColumns,
		ImportFields: schema.CustomerImportFields,
		FetchAll:     fetchCustomers,
		BulkImport:   importCustomers,
	})
}

var customerFilterColumns = []filterColumn{
	{Name: "customerNumber", Column: "customer_number"},
	{Name: "customerType", Column: "customer_type", Exact: true},
	{Name: "name", Column: "coalesce(first_name || ' ' || last_name, organization_name)"},
	{Name: "phone", Column: "phone"},
	{Name: "email", Column: "email"},
}

func fetchCustomers(ctx context.Context, db core.DBTX, filters core.Filters, limit int) ([]core.Row, error) {
	where, args := buildWhere(filters, customerFilterColumns)

	query := fmt.Sprintf(`
		SELECT customer_number, customer_type, first_name, last_name, tc_id_no,
		       organization_name, tax_id, phone, email
		FROM customers
		%s
		ORDER BY customer_number
		LIMIT $%d`, where, len(args)+1)
	args = append(args, limit)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var out []core.Row
	for rows.Next() {
		var (
			number, ctype             string
			firstName, lastName, tcID *string
			orgName, taxID            *string
			phone, email              *string
		)
		if err := rows.Scan(&number, &ctype, &firstName, &lastName, &tcID,
			&orgName, &taxID, &phone, &email); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}

		out = append(out, core.Row{
			"customerNumber": number,
			"customerType":   ctype,
			"details": core.Row{
				"firstName": deref(firstName),
				"lastName":  deref(lastName),
				"tcIdNo":    deref(tcID),
			},
			"organization": core.Row{
				"name":  deref(orgName),
				"taxId": deref(taxID),
			},
			"contact": core.Row{
				"phone": deref(phone),
				"email": deref(email),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return out, nil
}

// validateCustomerType enforces the half of the record the customer type
// requires: individuals need a first and last name, organizations need
// an organization name.
func validateCustomerType(record map[string]string) []schema.Violation {
	var out []schema.Violation
	switch record["customerType"] {
	case "individual":
		if record["firstName"] == "" {
			out = append(out, schema.Violation{Field: "firstName", Message: "First Name is required for individual customers"})
		}
		if record["lastName"] == "" {
			out = append(out, schema.Violation{Field: "lastName", Message: "Last Name is required for individual customers"})
		}
	case "organization":
		if record["organizationName"] == "" {
			out = append(out, schema.Violation{Field: "organizationName", Message: "Organization Name is required for organization customers"})
		}
	}
	return out
}

func importCustomers(ctx context.Context, db core.DBTX, rows []map[string]string, opts core.ImportOptions) (*core.ImportResult, error) {
	insert := func(ctx context.Context, tx pgx.Tx, record map[string]string) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO customers (id, customer_number, customer_type, first_name, last_name,
			                       tc_id_no, organization_name, tax_id, phone, email)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.New(),
			record["customerNumber"],
			record["customerType"],
			strOrNil(record["firstName"]),
			strOrNil(record["lastName"]),
			strOrNil(record["tcIdNo"]),
			strOrNil(record["organizationName"]),
			strOrNil(record["taxId"]),
			strOrNil(record["phone"]),
			strOrNil(record["email"]),
		)
		return err
	}

	return bulkImport(ctx, db, rows, schema.CustomerImportFields, validateCustomerType, insert)
}
