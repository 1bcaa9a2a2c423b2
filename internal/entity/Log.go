package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type LogDetails map[string]any

func (d LogDetails) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *LogDetails) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("log details: unsupported type %T", src)
	}
}

// Log is one audit trail entry.
type Log struct {
	ID        int64      `json:"id" db:"id"`
	UserID    *int64     `json:"user_id,omitempty" db:"user_id"`
	Action    string     `json:"action" db:"action"`
	Entity    string     `json:"entity" db:"entity"`
	EntityID  *int64     `json:"entity_id,omitempty" db:"entity_id"`
	Method    string     `json:"method,omitempty" db:"method"`
	Path      string     `json:"path,omitempty" db:"path"`
	Status    int        `json:"status,omitempty" db:"status"`
	IP        string     `json:"ip,omitempty" db:"ip"`
	Details   LogDetails `json:"details,omitempty" db:"details"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type LogFilter struct {
	UserID *int64
	Entity string
	From   *time.Time
	To     *time.Time
	Page   Page
}
