package models

import "gorm.io/gorm"

// Migrate creates the Postgres tables owned by this service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderRecord{}, &Coupon{}, &Account{}, &RevokedToken{})
}
