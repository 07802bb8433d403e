package models

import "time"

// Invoice is the billable summary of one collaborator's work on one work
// order. At most one non-deleted invoice may exist per (collaborator, work
// order) pair; Deleted soft-removes it from that uniqueness check.
type Invoice struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	InvoiceNumber  string       `json:"invoice_number" gorm:"index"` // optionally assigned later; unique among non-deleted
	CollaboratorID uint         `json:"collaborator_id" gorm:"index:idx_invoices_pair,priority:1"`
	WorkOrderID    uint         `json:"work_order_id" gorm:"index:idx_invoices_pair,priority:2"`
	Collaborator   Collaborator `json:"collaborator" gorm:"foreignKey:CollaboratorID;references:Id"`
	WorkOrder      WorkOrder    `json:"work_order" gorm:"foreignKey:WorkOrderID;references:ID"`

	Lines []InvoiceAssignment `json:"assignments" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	TotalHoursWorked float64 `json:"total_hours_worked"`

	// Pre-surcharge bases (regular hours only) and grand totals, both sides.
	TotalAmountCompany             float64 `json:"total_amount_company" gorm:"type:numeric(12,2)"`
	TotalAmountCollaborator        float64 `json:"total_amount_collaborator" gorm:"type:numeric(12,2)"`
	TotalWithSurchargeCompany      float64 `json:"total_with_surcharge_company" gorm:"type:numeric(12,2)"`
	TotalWithSurchargeCollaborator float64 `json:"total_with_surcharge_collaborator" gorm:"type:numeric(12,2)"`

	Deleted   bool      `json:"-" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceAssignment is one assignment-type's contribution to an invoice.
// HoursWorked always equals the parent invoice's TotalHoursWorked: hours come
// from the pair's shared attendance record, not per-assignment tracking.
type InvoiceAssignment struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	InvoiceID      uint      `json:"-" gorm:"index"`
	AssignmentID   uint      `json:"assignment_id" gorm:"not null;index"`
	AssignmentName string    `json:"assignment_name"`
	CheckInAt      time.Time `json:"check_in_at"`
	CheckOutAt     time.Time `json:"check_out_at"`
	HoursWorked    float64   `json:"hours_worked"`

	HourlyRateCompany      float64 `json:"hourly_rate_company" gorm:"type:numeric(12,2)"`
	HourlyRateCollaborator float64 `json:"hourly_rate_collaborator" gorm:"type:numeric(12,2)"`

	RegularAmountCompany      float64 `json:"regular_amount_company" gorm:"type:numeric(12,2)"`
	RegularAmountCollaborator float64 `json:"regular_amount_collaborator" gorm:"type:numeric(12,2)"`
	TotalAmountCompany        float64 `json:"total_amount_company" gorm:"type:numeric(12,2)"`
	TotalAmountCollaborator   float64 `json:"total_amount_collaborator" gorm:"type:numeric(12,2)"`

	SurchargeDetails []SurchargeDetail `json:"surcharge_details" gorm:"foreignKey:InvoiceAssignmentID;constraint:OnDelete:CASCADE"`
}

// SurchargeDetail records one surcharge rule's application to a line at
// calculation time. Rows are replaced wholesale on every recalculation so a
// rule change can never leave stale tier data behind.
type SurchargeDetail struct {
	ID                  uint    `json:"id" gorm:"primaryKey"`
	InvoiceAssignmentID uint    `json:"-" gorm:"index"`
	SurchargeRuleID     uint    `json:"surcharge_rule_id"`
	RuleName            string  `json:"rule_name"`
	HoursApplied        float64 `json:"hours_applied"`
	Percentage          float64 `json:"percentage"`
}
