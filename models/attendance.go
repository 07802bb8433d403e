package models

import (
	"time"

	"gorm.io/datatypes"
)

// Check record kinds. At most one record of each kind may exist per
// (collaborator, work order) pair.
const (
	CheckKindIn  = "check_in"
	CheckKindOut = "check_out"
)

// CheckRecord is a check-in or check-out attendance event. Only the wall-clock
// time of day is captured; CreatedAt anchors it to a calendar date when hours
// are computed.
type CheckRecord struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	CollaboratorID uint           `json:"collaborator_id" gorm:"index:idx_check_records_pair_kind,unique,priority:1"`
	WorkOrderID    uint           `json:"work_order_id" gorm:"index:idx_check_records_pair_kind,unique,priority:2"`
	Kind           string         `json:"kind" gorm:"type:VARCHAR(20);index:idx_check_records_pair_kind,unique,priority:3"`
	Time           string         `json:"time" gorm:"type:VARCHAR(5);not null"` // "HH:MM"
	InitialStatus  string         `json:"initial_status"`
	EvidenceURLs   datatypes.JSON `json:"evidence_urls" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at"`

	Breaks []BreakPeriod `json:"breaks,omitempty" gorm:"foreignKey:CheckRecordID;constraint:OnDelete:CASCADE"`
}

// BreakPeriod is an unpaid interval within a shift, attached to the pair's
// check-in record. Times are wall-clock strings on the same calendar date as
// the parent check-in; an end "before" its start means the break crosses
// midnight.
type BreakPeriod struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CheckRecordID uint      `json:"check_record_id" gorm:"index"`
	StartTime     string    `json:"start_time" gorm:"type:VARCHAR(5);not null"`
	EndTime       string    `json:"end_time" gorm:"type:VARCHAR(5);not null"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}
