package models

// Collaborator is a worker assignable to work orders.
type Collaborator struct {
	Id          uint   `json:"id" gorm:"primaryKey"`
	FirstName   string `json:"first_name" gorm:"not null"`
	LastName    string `json:"last_name" gorm:"not null"`
	Email       string `json:"email" gorm:"unique;not null"`
	PhoneNumber string `json:"phone_number"`
	DocumentID  string `json:"document_id"`
	Active      bool   `json:"-"`
}

func (collaborator *Collaborator) FullName() string {
	return collaborator.FirstName + " " + collaborator.LastName
}
