package database

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/khabar-digital/newsroom/internal/model"
)

// DefaultAdmin defines the default admin account credentials
type DefaultAdmin struct {
	UserName     string
	Email        string
	FullName     string
	Password     string
	MobileNumber string
}

// GetDefaultAdmin returns the default admin account
func GetDefaultAdmin() DefaultAdmin {
	return DefaultAdmin{
		UserName:     "admin",
		Email:        "admin@newsroom.local",
		FullName:     "Newsroom Admin",
		Password:     "Admin@123", // Change this in production!
		MobileNumber: "9800000000",
	}
}

// Seed creates initial data for the database
func Seed(db *gorm.DB) error {
	return SeedUsers(db)
}

// SeedUsers creates the default admin account if not exists. The seeded
// account is pre-activated so a fresh deployment can log in and activate
// everyone else.
func SeedUsers(db *gorm.DB) error {
	admin := GetDefaultAdmin()

	var existingUser model.User
	result := db.Where("email = ?", admin.Email).First(&existingUser)

	if result.Error == nil {
		// Account already exists, skip seeding
		return nil
	}

	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		UserName:     admin.UserName,
		Email:        admin.Email,
		FullName:     admin.FullName,
		MobileNumber: admin.MobileNumber,
		Password:     string(hashedPassword),
		Role:         1,
		IsActive:     true,
		Location: model.Location{
			Province:     "Bagmati",
			District:     "Kathmandu",
			Municipality: "Kathmandu",
			Tole:         "Newroad",
			WardNo:       1,
		},
	}

	return db.Create(&user).Error
}
