package models

// SurchargeRule is a tiered extra-pay rule keyed by hours-worked thresholds.
// Percentage is a fraction (0.5 = +50%). A nil MaxHour means the tier is
// open-ended. Rules are administrator-managed reference data; the invoicing
// engine only reads them, ordered by ascending MinHour.
type SurchargeRule struct {
	Id         uint     `json:"id" gorm:"primaryKey"`
	Name       string   `json:"name" gorm:"not null;unique"`
	Percentage float64  `json:"percentage" gorm:"not null"`
	MinHour    float64  `json:"min_hour" gorm:"not null"`
	MaxHour    *float64 `json:"max_hour"`
}
