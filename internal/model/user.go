package model

import (
	"gorm.io/gorm"
)

// User is an account record. Password always holds a bcrypt digest; the
// service layer hashes before any write that touches it. RefreshToken is the
// single live session marker, overwritten on login and cleared on logout.
type User struct {
	gorm.Model
	UserName     string `gorm:"column:user_name;uniqueIndex;not null"`
	Email        string `gorm:"column:email;uniqueIndex;not null"`
	FullName     string `gorm:"column:full_name;not null;index"`
	MobileNumber string `gorm:"column:mobile_number;uniqueIndex;not null"`
	Password     string `gorm:"column:password;not null"`
	Role         int    `gorm:"column:role;not null"`
	IsActive     bool   `gorm:"column:is_active;default:false;not null"`
	RefreshToken string `gorm:"column:refresh_token"`

	Location Location `gorm:"embedded;embeddedPrefix:location_"`
}

// Location is the account's registered address, embedded into the users
// table.
type Location struct {
	Province     string `gorm:"column:province;not null"`
	District     string `gorm:"column:district;not null"`
	Municipality string `gorm:"column:municipality;not null"`
	Tole         string `gorm:"column:tole;not null"`
	WardNo       int    `gorm:"column:ward_no;not null"`
}
