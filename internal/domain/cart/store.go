// internal/domain/cart/store.go
package cart

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Policy holds the clamping and shipping rules applied on every mutation.
type Policy struct {
	DefaultMaxQuantity    int
	FreeShippingThreshold decimal.Decimal
}

// DefaultPolicy returns the standard policy: at most 10 units per line unless
// the catalog says otherwise, free shipping at a subtotal of 1000.
func DefaultPolicy() Policy {
	return Policy{
		DefaultMaxQuantity:    10,
		FreeShippingThreshold: decimal.NewFromInt(1000),
	}
}

// Store is the sole owner of a cart aggregate. All mutation goes through its
// methods; each one runs under the store mutex, rebuilds the derived totals
// and writes the record back to storage before returning. Operations clamp
// out-of-range input instead of failing, so none of them return an error.
type Store struct {
	mu       sync.Mutex
	items    []LineItem
	delivery DeliveryContext
	totals   Totals
	policy   Policy
	storage  Storage
	log      logrus.FieldLogger
}

// Open restores a store from whatever the storage slot holds. A missing or
// corrupt record yields an empty cart; startup is never blocked by bad data.
func Open(storage Storage, policy Policy, log logrus.FieldLogger) *Store {
	if policy.DefaultMaxQuantity <= 0 {
		policy.DefaultMaxQuantity = DefaultPolicy().DefaultMaxQuantity
	}
	if policy.FreeShippingThreshold.IsZero() {
		policy.FreeShippingThreshold = DefaultPolicy().FreeShippingThreshold
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	rec := storage.Load()
	s := &Store{
		items: rec.Items,
		delivery: DeliveryContext{
			Pincode:           rec.DeliveryPincode,
			IsServiceable:     rec.IsServiceable,
			EstimatedDelivery: rec.EstimatedDelivery,
			ShippingCost:      rec.ShippingCost,
		},
		policy:  policy,
		storage: storage,
		log:     log,
	}
	s.totals = computeTotals(s.items, s.delivery.ShippingCost, s.policy)
	return s
}

// AddItem merges quantity into an existing line with the same ID, or appends
// the candidate as a new line at the end of the cart. A non-positive requested
// quantity counts as 1. The stored quantity never exceeds the line's cap;
// excess is clamped, not rejected. Re-adding an existing ID touches its
// quantity only — the price and name snapshots from the first add stay as
// they are.
func (s *Store) AddItem(candidate LineItem, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		quantity = 1
	}

	merged := false
	for i := range s.items {
		if s.items[i].ID == candidate.ID {
			s.items[i].Quantity = s.clamp(s.items[i].Quantity+quantity, s.items[i].MaxQuantity)
			merged = true
			break
		}
	}
	if !merged {
		candidate.Quantity = s.clamp(quantity, candidate.MaxQuantity)
		s.items = append(s.items, candidate)
	}

	s.commit()
}

// RemoveItem deletes the line with the given ID. Unknown IDs are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}

	s.commit()
}

// SetQuantity sets the quantity of an existing line. The value floors at 1 —
// this path never removes a line, removal goes through RemoveItem — and is
// clamped at the line's cap. Unknown IDs are a no-op.
func (s *Store) SetQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = s.clamp(quantity, s.items[i].MaxQuantity)
			break
		}
	}

	s.commit()
}

// Clear empties the cart. The delivery context survives: it describes the
// session's destination, not the cart contents.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.commit()
}

// SetDelivery replaces the delivery context wholesale. Shipping and total
// change even though the line items are untouched.
func (s *Store) SetDelivery(pincode string, serviceable bool, estimatedDelivery string, shippingCost decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.delivery = DeliveryContext{
		Pincode:           pincode,
		IsServiceable:     serviceable,
		EstimatedDelivery: estimatedDelivery,
		ShippingCost:      shippingCost,
	}
	s.commit()
}

// State returns a snapshot of the cart. The items slice is a copy, so callers
// can hold it across later mutations.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return State{
		Items:    items,
		Delivery: s.delivery,
		Totals:   s.totals,
	}
}

// commit rebuilds the derived totals from scratch and writes the record back
// to storage. Storage failures are logged and swallowed: the in-memory cart
// stays usable even when persistence is broken.
func (s *Store) commit() {
	s.totals = computeTotals(s.items, s.delivery.ShippingCost, s.policy)

	rec := Record{
		Items:             s.items,
		DeliveryPincode:   s.delivery.Pincode,
		IsServiceable:     s.delivery.IsServiceable,
		EstimatedDelivery: s.delivery.EstimatedDelivery,
		ShippingCost:      s.delivery.ShippingCost,
	}
	if err := s.storage.Save(rec); err != nil {
		s.log.WithError(err).Debug("cart persistence failed, continuing in memory")
	}
}

func (s *Store) clamp(quantity, maxQuantity int) int {
	limit := maxQuantity
	if limit <= 0 {
		limit = s.policy.DefaultMaxQuantity
	}
	if quantity > limit {
		return limit
	}
	return quantity
}

// computeTotals is a pure function of the line items and the quoted shipping
// cost. Totals are always rebuilt whole, never patched incrementally.
//
// Shipping is the quoted cost whenever the subtotal is below the free-shipping
// threshold — including for an empty cart with a delivery context set, which
// therefore shows a non-zero total. Discount is not clamped and goes negative
// when a line's unit price exceeds its MRP.
func computeTotals(items []LineItem, shippingCost decimal.Decimal, policy Policy) Totals {
	t := Totals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Shipping: decimal.Zero,
		Total:    decimal.Zero,
	}

	mrpTotal := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		t.ItemCount += item.Quantity
		t.Subtotal = t.Subtotal.Add(item.UnitPrice.Mul(qty))
		mrpTotal = mrpTotal.Add(item.MRP.Mul(qty))
	}

	t.Discount = mrpTotal.Sub(t.Subtotal)
	if t.Subtotal.GreaterThanOrEqual(policy.FreeShippingThreshold) {
		t.Shipping = decimal.Zero
	} else {
		t.Shipping = shippingCost
	}
	t.Total = t.Subtotal.Add(t.Shipping)

	return t
}
