// internal/domain/cart/persistence_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistenceRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()

	s := Open(storage, DefaultPolicy(), nil)
	s.AddItem(filterItem("p1", "499.99", "599.00"), 2)
	s.AddItem(filterItem("p2", "120.50", "150.00"), 1)
	s.SetDelivery("560001", true, "2 days", dec("80"))

	restored := Open(storage, DefaultPolicy(), nil)
	state := restored.State()

	require.Len(t, state.Items, 2)
	assert.Equal(t, "p1", state.Items[0].ID)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assertDecimal(t, "499.99", state.Items[0].UnitPrice)
	assert.Equal(t, "p2", state.Items[1].ID)

	assert.Equal(t, "560001", state.Delivery.Pincode)
	assert.True(t, state.Delivery.IsServiceable)
	assert.Equal(t, "2 days", state.Delivery.EstimatedDelivery)
	assertDecimal(t, "80", state.Delivery.ShippingCost)

	// Totals are recomputed on load, not restored.
	assertDecimal(t, "1120.48", state.Totals.Subtotal)
	assertDecimal(t, "0", state.Totals.Shipping)
	assertDecimal(t, "1120.48", state.Totals.Total)
}

func TestLoadRecoversFromMalformedRecord(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"truncated json", `{"items":[{"id":"p1","quantity":`},
		{"wrong shape", `[1,2,3]`},
		{"wrong field type", `{"items":"not-a-list"}`},
		{"plain garbage", `!!!`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			storage.data = []byte(tt.data)

			s := Open(storage, DefaultPolicy(), nil)
			state := s.State()

			assert.Empty(t, state.Items)
			assert.Empty(t, state.Delivery.Pincode)
			assertDecimal(t, "0", state.Totals.Total)
		})
	}
}

func TestLoadEmptySlot(t *testing.T) {
	s := Open(NewMemoryStorage(), DefaultPolicy(), nil)
	state := s.State()

	assert.Empty(t, state.Items)
	assert.Equal(t, DeliveryContext{}, state.Delivery)
	assert.Equal(t, 0, state.Totals.ItemCount)
}

func TestSaveOverwritesUnconditionally(t *testing.T) {
	storage := NewMemoryStorage()

	s := Open(storage, DefaultPolicy(), nil)
	s.AddItem(filterItem("p1", "100", "120"), 3)
	s.Clear()

	restored := Open(storage, DefaultPolicy(), nil)
	assert.Empty(t, restored.State().Items)
}

func TestDecodeRecordTolerantOfUnknownFields(t *testing.T) {
	rec := decodeRecord([]byte(`{"items":[],"delivery_pincode":"110001","schema":7}`))
	assert.Equal(t, "110001", rec.DeliveryPincode)
}
