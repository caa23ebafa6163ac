package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB maps a raw JSON document onto a Postgres jsonb column.
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}

	return nil
}

func (JSONB) GormDataType() string {
	return "jsonb"
}

// MarshalJSONB encodes v, returning nil for nil pointers so the column stays
// NULL instead of holding the string "null".
func MarshalJSONB(v any) (JSONB, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb: %w", err)
	}
	if string(raw) == "null" {
		return nil, nil
	}
	return JSONB(raw), nil
}

// UnmarshalJSONB decodes the column into out, treating empty as absent.
func UnmarshalJSONB(j JSONB, out any) error {
	if len(j) == 0 {
		return nil
	}
	return json.Unmarshal(j, out)
}
