package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a clinic patient. Guests get a patient row created
// inline at booking time; the phone number is the de-duplication key.
// UserID is set once the patient registers an account.
type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	FullName  string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email     string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone     string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsRegistered checks if the patient has linked a user account
func (p *Patient) IsRegistered() bool {
	return p.UserID != nil
}
