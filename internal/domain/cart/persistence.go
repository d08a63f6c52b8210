// internal/domain/cart/persistence.go
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Record is the persisted shape of a cart: the line items plus the four
// delivery context fields. Derived totals are never stored; they are rebuilt
// on load. There is no version field — a record whose shape no longer decodes
// is treated as absent.
type Record struct {
	Items             []LineItem      `json:"items"`
	DeliveryPincode   string          `json:"delivery_pincode"`
	IsServiceable     bool            `json:"is_serviceable"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
}

// Storage persists cart records under a single slot.
//
// Load returns the zero Record when the slot is absent or holds data that
// cannot be decoded; it never fails. Save is best-effort and last-write-wins.
type Storage interface {
	Load() Record
	Save(rec Record) error
}

func decodeRecord(data []byte) Record {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}
	}
	return rec
}

const sessionKeyPrefix = "cart:session:"

// RedisStorage persists carts as JSON blobs in Redis, one key per session.
type RedisStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStorage creates storage bound to one session's cart key.
func NewRedisStorage(client *redis.Client, sessionID string, ttl time.Duration) *RedisStorage {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStorage{
		client: client,
		key:    sessionKeyPrefix + sessionID,
		ttl:    ttl,
	}
}

// Load reads the session's cart blob. Missing key, Redis errors and decode
// failures all come back as an empty record.
func (s *RedisStorage) Load() Record {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		return Record{}
	}
	return decodeRecord(data)
}

// Save overwrites the session's cart blob and refreshes its expiry.
func (s *RedisStorage) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}

// MemoryStorage keeps the encoded record in process memory. It serves
// embedders that do not run Redis, and tests.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStorage creates an empty in-memory slot.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load decodes the stored blob; an empty or corrupt slot yields the zero
// record.
func (s *MemoryStorage) Load() Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return Record{}
	}
	return decodeRecord(s.data)
}

// Save encodes and stores the record, replacing whatever was there.
func (s *MemoryStorage) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}
