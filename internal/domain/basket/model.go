package basket

import "time"

type Delivery struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	FamilyID     string    `gorm:"type:uuid;not null;index;uniqueIndex:uq_basket_family_date"`
	DeliveryDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_basket_family_date"`
	Notes        string    `gorm:"type:text"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Delivery) TableName() string {
	return "basket_deliveries"
}

// DeliveryRow is one materialized (family, date) delivery fact used by the
// monthly report.
type DeliveryRow struct {
	FamilyID string
	Date     time.Time
}
