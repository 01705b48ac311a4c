package family

import "time"

type Family struct {
	ID                     string    `gorm:"type:uuid;primaryKey"`
	Name                   string    `gorm:"size:200"`
	PostalCode             string    `gorm:"size:9"`
	Street                 string    `gorm:"size:200"`
	Number                 string    `gorm:"size:20"`
	Complement             string    `gorm:"size:200"`
	District               string    `gorm:"size:100"`
	City                   string    `gorm:"size:100"`
	State                  string    `gorm:"size:2"`
	Notes                  string    `gorm:"type:text"`
	ReceivesSocialPrograms bool      `gorm:"not null;default:false"`
	SocialPrograms         string    `gorm:"type:text"`
	Active                 bool      `gorm:"not null;default:true"`
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
}

type Guardian struct {
	ID           string     `gorm:"type:uuid;primaryKey"`
	FamilyID     string     `gorm:"type:uuid;not null;index"`
	FullName     string     `gorm:"size:200;not null"`
	CPF          string     `gorm:"size:14"`
	Phone        string     `gorm:"size:20;not null"`
	Email        string     `gorm:"size:254"`
	Sex          string     `gorm:"size:1"`
	BirthDate    *time.Time `gorm:"type:date"`
	Relationship string     `gorm:"size:100"`
	Active       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`

	Family Family `gorm:"foreignKey:FamilyID;references:ID;constraint:OnDelete:CASCADE"`
}
