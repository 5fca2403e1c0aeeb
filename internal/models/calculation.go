package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Calculation is the cached result of the latest calculation for a
// spending config. There is at most one per config, a new calculation
// replaces the previous one.
type Calculation struct {
	Timestamps
	SpendingConfigID uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SpendingConfig   SpendingConfig `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID           uuid.UUID      `gorm:"type:uuid;index"`
	CalculatedAt     time.Time
	ExpiresAt        time.Time `gorm:"index"`
	Payload          []byte    // JSON encoded result
}

// InvalidateCalculation deletes the cached calculation for a spending config.
//
// It must be called with the transaction that modifies data the
// calculation depends on.
func InvalidateCalculation(tx *gorm.DB, configID uuid.UUID) error {
	return tx.Where("spending_config_id = ?", configID).Delete(&Calculation{}).Error
}

// InvalidateUserCalculations deletes all cached calculations of a user.
func InvalidateUserCalculations(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("user_id = ?", userID).Delete(&Calculation{}).Error
}

// PurgeExpiredCalculations deletes all calculations that expired before now
// and returns how many were deleted.
func PurgeExpiredCalculations(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at <= ?", now).Delete(&Calculation{})
	return result.RowsAffected, result.Error
}

// CalculationStore reads and writes cached calculations.
type CalculationStore struct {
	DB *gorm.DB
}

// Fresh returns the calculation for the config if it has not expired at now.
// ok is false when there is no usable calculation.
//
// Expiry is checked on the loaded row. SQLite stores timestamps as text,
// comparing them in SQL is not exact below one second.
func (s CalculationStore) Fresh(configID uuid.UUID, now time.Time) (c Calculation, ok bool, err error) {
	err = s.DB.Where("spending_config_id = ?", configID).First(&c).Error
	if errors.Is(err, ErrResourceNotFound) {
		return Calculation{}, false, nil
	}
	if err != nil {
		return Calculation{}, false, err
	}

	if !c.ExpiresAt.After(now) {
		return Calculation{}, false, nil
	}

	return c, true, nil
}

// Put stores the calculation, replacing any existing one for the same config.
func (s CalculationStore) Put(c Calculation) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "spending_config_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "calculated_at", "expires_at", "payload", "updated_at"}),
	}).Create(&c).Error
}

// Invalidate deletes the cached calculation for the config.
func (s CalculationStore) Invalidate(configID uuid.UUID) error {
	return InvalidateCalculation(s.DB, configID)
}
