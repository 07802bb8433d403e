package models

// Assignment is a job role/task category (e.g. "forklift operator") with a
// base hourly cost used when no collaborator-specific rate override exists.
type Assignment struct {
	Id             uint    `json:"id" gorm:"primaryKey"`
	Title          string  `json:"title" gorm:"not null;unique"`
	Description    string  `json:"description"`
	BaseHourlyCost float64 `json:"base_hourly_cost" gorm:"type:numeric(12,2)"`
	Active         bool    `json:"-"`
}
