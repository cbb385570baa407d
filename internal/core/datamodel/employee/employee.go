package employee

import "time"

type Employee struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"column:name;size:255;not null"`
	Email      string    `gorm:"column:email;size:254;uniqueIndex;not null"`
	Department *string   `gorm:"column:department;size:100;index"`
	Role       *string   `gorm:"column:role;size:100;index"`
	DateJoined time.Time `gorm:"column:date_joined;type:date;not null"`
}

func (Employee) TableName() string {
	return "employees"
}
