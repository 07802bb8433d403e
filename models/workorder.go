package models

import "time"

// WorkOrder is a client-requested job with a roster of assigned collaborators.
type WorkOrder struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Code        string     `json:"code" gorm:"not null;unique"`
	Description string     `json:"description"`
	ClientID    uint       `json:"client_id" gorm:"index"`
	Client      Client     `json:"client" gorm:"foreignKey:ClientID;references:Id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

// WorkOrderCollaborator is one roster row: a collaborator performing one
// assignment-type on one work order. A collaborator appears once per
// assignment-type they perform on the order.
type WorkOrderCollaborator struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	WorkOrderID    uint         `json:"work_order_id" gorm:"index:idx_roster_order_collab_assignment,unique,priority:1"`
	CollaboratorID uint         `json:"collaborator_id" gorm:"index:idx_roster_order_collab_assignment,unique,priority:2"`
	AssignmentID   uint         `json:"assignment_id" gorm:"index:idx_roster_order_collab_assignment,unique,priority:3"`
	Collaborator   Collaborator `json:"collaborator" gorm:"foreignKey:CollaboratorID;references:Id"`
	Assignment     Assignment   `json:"assignment" gorm:"foreignKey:AssignmentID;references:Id"`
	CreatedAt      time.Time    `json:"created_at"`
}
