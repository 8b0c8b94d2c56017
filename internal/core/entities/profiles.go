package entities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aquadesk/aquadesk/internal/core"
	"github.com/aquadesk/aquadesk/internal/schema"
	"github.com/jackc/pgx/v5"
)

// ModuleProfile describes a communication-module product line and the
// schema of its technology fields. The field schema is stored as JSON on
// the profile row and interpreted generically at import time; no field
// set is hardcoded.
type ModuleProfile struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Brand      string             `json:"brand"`
	Model      string             `json:"model"`
	Technology string             `json:"technology"`
	Fields     []schema.FieldSpec `json:"fields"`
}

// ErrProfileNotFound is returned when a profile id resolves to nothing.
var ErrProfileNotFound = errors.New("module profile not found")

// GetModuleProfile loads one profile with its field schema.
func GetModuleProfile(ctx context.Context, db core.DBTX, id string) (*ModuleProfile, error) {
	var p ModuleProfile
	var fieldsJSON []byte

	err := db.QueryRow(ctx, `
		SELECT id::text, name, brand, model, technology, field_schema
		FROM module_profiles
		WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Brand, &p.Model, &p.Technology, &fieldsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("query module profile: %w", err)
	}

	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &p.Fields); err != nil {
			return nil, fmt.Errorf("decode profile field schema: %w", err)
		}
	}

	return &p, nil
}

// ListModuleProfiles returns all profiles with their field schemas,
// ordered by name.
func ListModuleProfiles(ctx context.Context, db core.DBTX) ([]ModuleProfile, error) {
	rows, err := db.Query(ctx, `
		SELECT id::text, name, brand, model, technology, field_schema
		FROM module_profiles
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query module profiles: %w", err)
	}
	defer rows.Close()

	var out []ModuleProfile
	for rows.Next() {
		var p ModuleProfile
		var fieldsJSON []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Model, &p.Technology, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("scan module profile: %w", err)
		}
		if len(fieldsJSON) > 0 {
			if err := json.Unmarshal(fieldsJSON, &p.Fields); err != nil {
				return nil, fmt.Errorf("decode profile field schema: %w", err)
			}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate module profiles: %w", err)
	}
	return out, nil
}
