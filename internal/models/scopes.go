package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy restricts a query to resources that belong to the user directly.
func OwnedBy(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// OnAccountsOf restricts a query to resources on accounts of the user.
func OnAccountsOf(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("account_id IN (?)", accountIDs(db, userID))
	}
}

// accountIDs returns a subquery selecting the IDs of the user's accounts.
func accountIDs(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).Model(&Account{}).Select("id").Where("user_id = ?", userID)
}
