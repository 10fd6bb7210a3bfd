package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TokenMapJSON stores a token to original-literal mapping as a jsonb column.
type TokenMapJSON map[string]string

func (t TokenMapJSON) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *TokenMapJSON) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, t)
}
