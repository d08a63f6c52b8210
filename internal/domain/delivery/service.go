// internal/domain/delivery/service.go
package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const cacheKeyPrefix = "serviceability:pincode:"

// Service handles delivery serviceability lookups. Verdicts are read through
// a Redis cache so repeated checks for the same pincode skip Postgres.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	cacheTTL    time.Duration
}

// NewService creates a new delivery service
func NewService(db *gorm.DB, redisClient *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Service{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Check looks up the serviceability verdict for a pincode. Unknown pincodes
// come back as a not-serviceable verdict, not an error; the pincode string
// itself is opaque and not validated here.
func (s *Service) Check(ctx context.Context, pincode string) (*Result, error) {
	if pincode == "" {
		return nil, fmt.Errorf("pincode is required")
	}

	if res := s.fromCache(ctx, pincode); res != nil {
		return res, nil
	}

	var zone PincodeZone
	err := s.db.WithContext(ctx).Where("pincode = ?", pincode).First(&zone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		res := &Result{
			Pincode:       pincode,
			IsServiceable: false,
			ShippingCost:  decimal.Zero,
		}
		s.toCache(ctx, res)
		return res, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up pincode %s: %w", pincode, err)
	}

	res := &Result{
		Pincode:           zone.Pincode,
		IsServiceable:     zone.IsServiceable,
		EstimatedDelivery: zone.EstimatedDelivery,
		ShippingCost:      zone.ShippingCost,
	}
	s.toCache(ctx, res)
	return res, nil
}

// Upsert creates or updates a zone and drops its cached verdict.
func (s *Service) Upsert(ctx context.Context, zone *PincodeZone) error {
	if zone.Pincode == "" {
		return fmt.Errorf("pincode is required")
	}

	var existing PincodeZone
	err := s.db.WithContext(ctx).Where("pincode = ?", zone.Pincode).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.WithContext(ctx).Create(zone).Error; err != nil {
			return fmt.Errorf("failed to create pincode zone: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to look up pincode zone: %w", err)
	} else {
		zone.ID = existing.ID
		zone.CreatedAt = existing.CreatedAt
		if err := s.db.WithContext(ctx).Save(zone).Error; err != nil {
			return fmt.Errorf("failed to update pincode zone: %w", err)
		}
	}

	s.redisClient.Del(ctx, cacheKeyPrefix+zone.Pincode)
	return nil
}

// fromCache is best-effort: cache misses, Redis errors and stale shapes all
// fall through to the database.
func (s *Service) fromCache(ctx context.Context, pincode string) *Result {
	data, err := s.redisClient.Get(ctx, cacheKeyPrefix+pincode).Bytes()
	if err != nil {
		return nil
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil
	}
	return &res
}

func (s *Service) toCache(ctx context.Context, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	s.redisClient.Set(ctx, cacheKeyPrefix+res.Pincode, data, s.cacheTTL)
}
