package entity

import "github.com/google/uuid"

// DentistProfile represents dentist-specific profile data
type DentistProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber  string    `gorm:"column:license_number;type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography      string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User         User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Schedules    []DentistSchedule `gorm:"foreignKey:DentistID" json:"schedules,omitempty"`
	Appointments []Appointment     `gorm:"foreignKey:DentistID" json:"appointments,omitempty"`
}

func (DentistProfile) TableName() string {
	return "dentist_profiles"
}
