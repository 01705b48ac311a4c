package report

import "time"

const (
	TypeAttendance = "attendance"
	TypeBasket     = "basket"
	TypeGeneral    = "general"
)

func ValidType(value string) bool {
	switch value {
	case TypeAttendance, TypeBasket, TypeGeneral:
		return true
	}
	return false
}

// Report is a generated aggregate artifact. Rows are write-once: the
// generation timestamp and file reference never change after creation,
// deactivation being the only allowed mutation.
type Report struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Type        string    `gorm:"type:varchar(20);not null"`
	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	Description string    `gorm:"type:text"`
	FilePath    string    `gorm:"type:text"`
	GeneratedAt time.Time `gorm:"not null"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// MemberSizes carries the clothing-size fields of one member for the size
// distribution tally. Empty strings mean the size is unrecorded.
type MemberSizes struct {
	Shorts string
	Pants  string
	Shirt  string
}
