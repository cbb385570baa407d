package user

import "time"

// User is an API account that can obtain tokens. Employees are records, not
// accounts.
type User struct {
	ID           int64     `gorm:"primaryKey" db:"id"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" db:"email"`
	Name         string    `gorm:"column:name;not null" db:"name"`
	PasswordHash string    `gorm:"column:password_hash;not null" db:"password_hash"`
	IsActive     bool      `gorm:"column:is_active;not null" db:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
