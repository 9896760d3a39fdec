package domain

import "time"

type UserRole string

const (
	RoleGuest    UserRole = "GUEST"
	RoleCustomer UserRole = "CUSTOMER"
	RoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex;size:255"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	FullName  string    `json:"fullName" gorm:"column:full_name;not null;size:255"`
	Phone     string    `json:"phone" gorm:"not null;size:255"`
	Address   string    `json:"address" gorm:"not null;size:255"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'CUSTOMER'"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
