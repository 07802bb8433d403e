package models

// CollaboratorRate overrides the hourly cost paid to one collaborator for one
// assignment-type. When absent, the assignment's base hourly cost applies.
type CollaboratorRate struct {
	Id             uint    `json:"id" gorm:"primaryKey"`
	CollaboratorID uint    `json:"collaborator_id" gorm:"index:idx_collaborator_rates_pair,unique,priority:1"`
	AssignmentID   uint    `json:"assignment_id" gorm:"index:idx_collaborator_rates_pair,unique,priority:2"`
	HourlyCost     float64 `json:"hourly_cost" gorm:"type:numeric(12,2)"`
}

// ClientRate is the hourly price charged to one client for one assignment-type.
// When absent, the company-side rate is zero.
type ClientRate struct {
	Id           uint    `json:"id" gorm:"primaryKey"`
	ClientID     uint    `json:"client_id" gorm:"index:idx_client_rates_pair,unique,priority:1"`
	AssignmentID uint    `json:"assignment_id" gorm:"index:idx_client_rates_pair,unique,priority:2"`
	HourlyPrice  float64 `json:"hourly_price" gorm:"type:numeric(12,2)"`
}
