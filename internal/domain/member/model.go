package member

import "time"

type Member struct {
	ID                string    `gorm:"type:uuid;primaryKey"`
	FamilyID          string    `gorm:"type:uuid;not null;index"`
	FullName          string    `gorm:"size:200;not null"`
	BirthDate         time.Time `gorm:"type:date;not null"`
	Sex               string    `gorm:"size:1"`
	Studying          bool      `gorm:"not null;default:false"`
	School            string    `gorm:"size:200"`
	SchoolGrade       string    `gorm:"size:50"`
	RG                string    `gorm:"size:20"`
	NIS               string    `gorm:"size:20"`
	EnrollmentDocPath string    `gorm:"type:text"`
	PhotoPath         string    `gorm:"type:text"`
	ShortsSize        string    `gorm:"size:10"`
	PantsSize         string    `gorm:"size:10"`
	ShirtSize         string    `gorm:"size:10"`
	Active            bool      `gorm:"not null;default:true"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// AgeOn computes completed years at the reference date using the
// has-the-birthday-occurred-yet rule.
func AgeOn(birth, reference time.Time) int {
	age := reference.Year() - birth.Year()
	if reference.Month() < birth.Month() ||
		(reference.Month() == birth.Month() && reference.Day() < birth.Day()) {
		age--
	}
	return age
}

// Age returns the member's completed years at the reference date.
func (m Member) Age(reference time.Time) int {
	return AgeOn(m.BirthDate, reference)
}
