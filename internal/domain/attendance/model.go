package attendance

import "time"

type Record struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	MemberID     string    `gorm:"type:uuid;not null;index;uniqueIndex:uq_attendance_member_date"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_member_date"`
	Present      bool      `gorm:"not null;default:true"`
	ClassGroupID *string   `gorm:"type:uuid;index"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Record) TableName() string {
	return "attendance_records"
}

// MeetingRow is one materialized (member, date, present) fact with the
// display names needed by the frequency report.
type MeetingRow struct {
	MemberID   string
	MemberName string
	FamilyName string
	Date       time.Time
	Present    bool
}
