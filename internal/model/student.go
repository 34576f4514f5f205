package model

import "gorm.io/gorm"

// Student is a course registration. StudentID is the university-issued
// identifier, ID is the row key.
type Student struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	StudentID        string `gorm:"column:student_id;uniqueIndex;not null" json:"studentId"`
	Name             string `gorm:"column:name" json:"name"`
	Email            string `gorm:"column:email;uniqueIndex" json:"email"`
	Course           string `gorm:"column:course" json:"course"`
	RegistrationDate Date   `gorm:"column:registration_date;type:date" json:"registrationDate"`
}

func (Student) TableName() string {
	return "students"
}

// BeforeCreate stamps the registration date when the caller left it empty.
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.RegistrationDate.IsZero() {
		s.RegistrationDate = Today()
	}
	return nil
}
