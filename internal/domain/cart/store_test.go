// internal/domain/cart/store_test.go
package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s got %s %v", want, got, msgAndArgs)
}

func filterItem(id string, price, mrp string) LineItem {
	return LineItem{
		ID:        id,
		ProductID: id,
		Name:      "Oil Filter",
		SKU:       "F-" + id,
		UnitPrice: dec(price),
		MRP:       dec(mrp),
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return Open(NewMemoryStorage(), DefaultPolicy(), nil)
}

func TestAddItem_ClampsToMaxQuantity(t *testing.T) {
	tests := []struct {
		name         string
		maxQuantity  int
		requested    int
		wantQuantity int
	}{
		{"explicit cap", 5, 9, 5},
		{"default cap when unset", 0, 25, 10},
		{"under the cap", 5, 3, 3},
		{"exactly at the cap", 5, 5, 5},
		{"non-positive request counts as one", 5, -3, 1},
		{"zero request counts as one", 5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			item := filterItem("p1", "100", "120")
			item.MaxQuantity = tt.maxQuantity

			s.AddItem(item, tt.requested)

			state := s.State()
			require.Len(t, state.Items, 1)
			assert.Equal(t, tt.wantQuantity, state.Items[0].Quantity)
		})
	}
}

func TestSetQuantity_FloorsAtOneNeverRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -100} {
		s := newTestStore(t)
		s.AddItem(filterItem("p1", "100", "120"), 4)

		s.SetQuantity("p1", q)

		state := s.State()
		require.Len(t, state.Items, 1, "line must survive quantity %d", q)
		assert.Equal(t, 1, state.Items[0].Quantity)
	}
}

func TestSetQuantity_ClampsAndIgnoresUnknownID(t *testing.T) {
	s := newTestStore(t)
	item := filterItem("p1", "100", "120")
	item.MaxQuantity = 4
	s.AddItem(item, 1)

	s.SetQuantity("p1", 99)
	assert.Equal(t, 4, s.State().Items[0].Quantity)

	s.SetQuantity("missing", 3)
	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 4, state.Items[0].Quantity)
}

func TestAddItem_MergesByID(t *testing.T) {
	s := newTestStore(t)
	s.AddItem(filterItem("p1", "100", "120"), 2)
	s.AddItem(filterItem("p1", "100", "120"), 3)

	state := s.State()
	require.Len(t, state.Items, 1, "same ID must merge, not duplicate")
	assert.Equal(t, 5, state.Items[0].Quantity)
}

func TestAddItem_MergeDoesNotRefreshSnapshots(t *testing.T) {
	s := newTestStore(t)
	s.AddItem(filterItem("p1", "100", "120"), 1)

	repriced := filterItem("p1", "250", "300")
	repriced.Name = "Oil Filter v2"
	s.AddItem(repriced, 1)

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, "Oil Filter", state.Items[0].Name)
	assertDecimal(t, "100", state.Items[0].UnitPrice)
	assertDecimal(t, "200", state.Totals.Subtotal)
}

func TestAddItem_MergeClampsCombinedQuantity(t *testing.T) {
	s := newTestStore(t)
	item := filterItem("p1", "100", "120")
	item.MaxQuantity = 6
	s.AddItem(item, 4)
	s.AddItem(item, 4)

	assert.Equal(t, 6, s.State().Items[0].Quantity)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	s.AddItem(filterItem("p1", "10", "12"), 1)
	s.AddItem(filterItem("p2", "20", "24"), 1)
	s.AddItem(filterItem("p3", "30", "36"), 1)
	s.SetQuantity("p1", 5)

	state := s.State()
	require.Len(t, state.Items, 3)
	assert.Equal(t, "p1", state.Items[0].ID)
	assert.Equal(t, "p2", state.Items[1].ID)
	assert.Equal(t, "p3", state.Items[2].ID)
}

func TestRemoveItem(t *testing.T) {
	s := newTestStore(t)
	s.AddItem(filterItem("p1", "10", "12"), 1)
	s.AddItem(filterItem("p2", "20", "24"), 1)

	s.RemoveItem("p1")
	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "p2", state.Items[0].ID)

	// absent ID is a no-op, not an error
	s.RemoveItem("p1")
	assert.Len(t, s.State().Items, 1)
}

func TestFreeShippingThresholdIsInclusive(t *testing.T) {
	tests := []struct {
		name         string
		unitPrice    string
		wantShipping string
		wantTotal    string
	}{
		{"just below threshold", "999.99", "80", "1079.99"},
		{"exactly at threshold", "1000.00", "0", "1000.00"},
		{"above threshold", "1200.50", "0", "1200.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			s.SetDelivery("560001", true, "2 days", dec("80"))
			s.AddItem(filterItem("p1", tt.unitPrice, tt.unitPrice), 1)

			state := s.State()
			assertDecimal(t, tt.wantShipping, state.Totals.Shipping)
			assertDecimal(t, tt.wantTotal, state.Totals.Total)
		})
	}
}

func TestTotalsHoldAfterEveryMutation(t *testing.T) {
	s := newTestStore(t)

	check := func(step string) {
		state := s.State()
		subtotal := decimal.Zero
		mrpTotal := decimal.Zero
		count := 0
		for _, item := range state.Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			subtotal = subtotal.Add(item.UnitPrice.Mul(qty))
			mrpTotal = mrpTotal.Add(item.MRP.Mul(qty))
			count += item.Quantity
		}
		assert.Equal(t, count, state.Totals.ItemCount, step)
		assert.True(t, subtotal.Equal(state.Totals.Subtotal), "%s: subtotal", step)
		assert.True(t, mrpTotal.Sub(subtotal).Equal(state.Totals.Discount), "%s: discount", step)
		assert.True(t, state.Totals.Subtotal.Add(state.Totals.Shipping).Equal(state.Totals.Total), "%s: total", step)
	}

	s.AddItem(filterItem("p1", "199.50", "249.00"), 2)
	check("add p1")
	s.SetDelivery("560001", true, "3 days", dec("49.50"))
	check("set delivery")
	s.AddItem(filterItem("p2", "820.00", "799.00"), 1) // price above MRP: discount goes negative
	check("add p2")
	s.SetQuantity("p1", 7)
	check("set quantity")
	s.RemoveItem("p2")
	check("remove p2")
	s.Clear()
	check("clear")
}

func TestDiscountNotClamped(t *testing.T) {
	s := newTestStore(t)
	s.AddItem(filterItem("p1", "150", "100"), 2)

	assertDecimal(t, "-100", s.State().Totals.Discount)
}

func TestClearPreservesDeliveryContext(t *testing.T) {
	s := newTestStore(t)
	s.SetDelivery("560001", true, "2 days", dec("50"))
	s.AddItem(filterItem("p1", "400", "500"), 2)

	s.Clear()

	state := s.State()
	assert.Empty(t, state.Items)
	assert.Equal(t, "560001", state.Delivery.Pincode)
	assert.True(t, state.Delivery.IsServiceable)
	assert.Equal(t, "2 days", state.Delivery.EstimatedDelivery)
	assertDecimal(t, "50", state.Delivery.ShippingCost)
}

// An empty cart with a delivery context set still carries the quoted shipping
// cost, so its total is non-zero. Deliberate: the threshold rule reads the
// subtotal and nothing else.
func TestEmptyCartKeepsQuotedShipping(t *testing.T) {
	s := newTestStore(t)
	s.SetDelivery("560001", true, "2 days", dec("80"))

	state := s.State()
	assertDecimal(t, "0", state.Totals.Subtotal)
	assertDecimal(t, "80", state.Totals.Shipping)
	assertDecimal(t, "80", state.Totals.Total)
}

func TestSetDelivery_ReplacesWholesale(t *testing.T) {
	s := newTestStore(t)
	s.SetDelivery("560001", true, "2 days", dec("50"))
	s.SetDelivery("110001", false, "", decimal.Zero)

	d := s.State().Delivery
	assert.Equal(t, "110001", d.Pincode)
	assert.False(t, d.IsServiceable)
	assert.Empty(t, d.EstimatedDelivery)
	assertDecimal(t, "0", d.ShippingCost)
}

func TestStateSnapshotIsDetached(t *testing.T) {
	s := newTestStore(t)
	s.AddItem(filterItem("p1", "100", "120"), 1)

	before := s.State()
	s.SetQuantity("p1", 5)

	assert.Equal(t, 1, before.Items[0].Quantity)
	assert.Equal(t, 5, s.State().Items[0].Quantity)
}

type failingStorage struct{}

func (failingStorage) Load() Record      { return Record{} }
func (failingStorage) Save(Record) error { return errors.New("quota exceeded") }

func TestMutationsSurviveBrokenPersistence(t *testing.T) {
	s := Open(failingStorage{}, DefaultPolicy(), nil)

	s.AddItem(filterItem("p1", "100", "120"), 2)
	s.SetDelivery("560001", true, "2 days", dec("40"))

	state := s.State()
	require.Len(t, state.Items, 1)
	assertDecimal(t, "240", state.Totals.Total)
}

// The worked scenario from the design discussion, end to end.
func TestEndToEndScenario(t *testing.T) {
	s := newTestStore(t)

	s.AddItem(LineItem{
		ID: "p1", ProductID: "P1", Name: "Filter", SKU: "F-1",
		UnitPrice: dec("500"), MRP: dec("600"),
	}, 3)
	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assertDecimal(t, "1500", state.Totals.Subtotal)
	assertDecimal(t, "300", state.Totals.Discount)

	s.SetDelivery("560001", true, "2 days", dec("80"))
	state = s.State()
	assertDecimal(t, "0", state.Totals.Shipping)
	assertDecimal(t, "1500", state.Totals.Total)

	s.SetQuantity("p1", 1)
	state = s.State()
	assertDecimal(t, "500", state.Totals.Subtotal)
	assertDecimal(t, "80", state.Totals.Shipping)
	assertDecimal(t, "580", state.Totals.Total)

	s.RemoveItem("p1")
	state = s.State()
	assert.Empty(t, state.Items)
	assertDecimal(t, "0", state.Totals.Subtotal)
	assertDecimal(t, "80", state.Totals.Shipping)
	assertDecimal(t, "80", state.Totals.Total)
}
