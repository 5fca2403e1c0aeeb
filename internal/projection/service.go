package projection

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultTTL is how long a calculation is served from the cache.
const DefaultTTL = 30 * time.Minute

// Service calculates daily spending limits and caches the results.
type Service struct {
	DB  *gorm.DB
	TTL time.Duration

	// Now returns the current time. It defaults to time.Now in UTC.
	Now func() time.Time
}

// NewService returns a Service with the default TTL.
func NewService(db *gorm.DB) Service {
	return Service{
		DB:  db,
		TTL: DefaultTTL,
	}
}

func (s Service) now() time.Time {
	if s.Now != nil {
		return s.Now().In(time.UTC)
	}
	return time.Now().In(time.UTC)
}

func (s Service) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultTTL
	}
	return s.TTL
}

// Calculate returns the calculation for the config of the user. If configID
// is nil, the active config of the user is used.
//
// A cached calculation is returned as long as it has not expired. Otherwise,
// the calculation is computed and stored.
//
// The calculation runs in a single database transaction so that writes that
// invalidate the cache cannot interleave with it.
func (s Service) Calculate(userID uuid.UUID, configID *uuid.UUID) (Result, error) {
	now := s.now()

	var result Result
	err := models.InTransaction(s.DB, func(tx *gorm.DB) error {
		ledger := models.Ledger{DB: tx}
		store := models.CalculationStore{DB: tx}

		config, err := ledger.SpendingConfig(userID, configID)
		if err != nil {
			return err
		}

		cached, ok, err := store.Fresh(config.ID, now)
		if err != nil {
			return err
		}

		if ok {
			cacheRequests.WithLabelValues("hit").Inc()
			log.Debug().Str("config", config.ID.String()).Time("expires", cached.ExpiresAt).Msg("Calculation cache hit")
			return json.Unmarshal(cached.Payload, &result)
		}

		cacheRequests.WithLabelValues("miss").Inc()
		log.Debug().Str("config", config.ID.String()).Msg("Calculation cache miss")

		computed, err := Compute(ledger, config, now)
		if err != nil {
			return err
		}
		computed.CalculatedAt = now
		computed.ExpiresAt = now.Add(s.ttl())

		payload, err := json.Marshal(computed)
		if err != nil {
			return err
		}

		err = store.Put(models.Calculation{
			SpendingConfigID: config.ID,
			UserID:           config.UserID,
			CalculatedAt:     computed.CalculatedAt,
			ExpiresAt:        computed.ExpiresAt,
			Payload:          payload,
		})
		if err != nil {
			return err
		}

		// Return what is stored so that later cache hits are identical
		return json.Unmarshal(payload, &result)
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}

// Invalidate drops the cached calculation of a config.
func (s Service) Invalidate(configID uuid.UUID) error {
	return models.CalculationStore{DB: s.DB}.Invalidate(configID)
}

// InvalidateUser drops all cached calculations of a user.
func (s Service) InvalidateUser(userID uuid.UUID) error {
	return models.InvalidateUserCalculations(s.DB, userID)
}
