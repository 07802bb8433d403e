package services

import (
	"errors"

	"gorm.io/gorm"

	"workforce-backend/models"
)

// ResolveCollaboratorRate returns the hourly cost paid to a collaborator for
// one assignment-type. Fallback order: specific CollaboratorRate override,
// else the assignment's base hourly cost.
func ResolveCollaboratorRate(db *gorm.DB, collaboratorID uint, assignment models.Assignment) (float64, error) {
	var override models.CollaboratorRate
	err := db.Where("collaborator_id = ? AND assignment_id = ?", collaboratorID, assignment.Id).
		First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return assignment.BaseHourlyCost, nil
		}
		return 0, err
	}
	return override.HourlyCost, nil
}

// ResolveCompanyRate returns the hourly price charged to a client for one
// assignment-type. Fallback order: specific ClientRate override, else zero
// (no price configured means nothing is billed for that line).
func ResolveCompanyRate(db *gorm.DB, clientID, assignmentID uint) (float64, error) {
	var override models.ClientRate
	err := db.Where("client_id = ? AND assignment_id = ?", clientID, assignmentID).
		First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return override.HourlyPrice, nil
}
