package classgroup

import "time"

type ClassGroup struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	MinAge    int       `gorm:"not null"`
	MaxAge    int       `gorm:"not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (g ClassGroup) TableName() string {
	return "class_groups"
}

// Contains reports whether the age falls inside the group's inclusive band.
func (g ClassGroup) Contains(age int) bool {
	return g.MinAge <= age && age <= g.MaxAge
}
