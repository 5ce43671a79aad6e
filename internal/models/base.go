// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type BaseModel struct {
	gorm.Model
}

// EmergencyContact is the JSONB column for a student's emergency contact.
type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

func (ec EmergencyContact) Value() (driver.Value, error) {
	return json.Marshal(ec)
}

// Scan unmarshals JSONB bytes into the struct.
func (ec *EmergencyContact) Scan(src interface{}) error {
	if src == nil {
		*ec = EmergencyContact{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("EmergencyContact: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, ec)
}
