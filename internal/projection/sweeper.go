package projection

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultSweepSchedule is the cron schedule expired calculations are deleted on.
const DefaultSweepSchedule = "@every 10m"

// Sweep deletes all calculations that are expired at now.
//
// Expired calculations are never served, deleting them only keeps the
// table small.
func Sweep(db *gorm.DB, now time.Time) (int64, error) {
	deleted, err := models.PurgeExpiredCalculations(db, now)
	if err != nil {
		return 0, err
	}

	sweptCalculations.Add(float64(deleted))
	return deleted, nil
}

// NewSweeper returns a cron scheduler that runs Sweep on the schedule.
// The scheduler must be started by the caller.
func NewSweeper(db *gorm.DB, schedule string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		deleted, err := Sweep(db, time.Now().In(time.UTC))
		if err != nil {
			log.Error().Err(err).Msg("Calculation sweep")
			return
		}

		log.Debug().Int64("deleted", deleted).Msg("Calculation sweep")
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}
