package models

import (
	"gorm.io/datatypes"
)

// StateSlot is the SQL-backed persistence slot: one row per slot key holding
// the serialized State document.
type StateSlot struct {
	BaseModel
	Key   string         `gorm:"type:text;uniqueIndex;not null" json:"key"`
	Value datatypes.JSON `gorm:"type:jsonb;not null"            json:"value"`
}

func (StateSlot) TableName() string {
	return "state_slots"
}
