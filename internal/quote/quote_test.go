package quote

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHAIK-07/sunmax/internal/catalog"
	"github.com/SHAIK-07/sunmax/internal/store"
)

func newTestManager() (*Manager, *store.MemoryStore) {
	s := store.NewMemoryStore()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewManager(s, log), s
}

func params(code string, qty int) AddParams {
	return AddParams{
		Code:     code,
		Name:     "Inverter 5kW",
		Price:    decimal.NewFromInt(45000),
		GSTRate:  decimal.NewFromInt(18),
		Kind:     catalog.KindProduct,
		Quantity: qty,
	}
}

func TestAddReplacesQuantityInsteadOfIncrementing(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	_, err := m.AddOrSetQuantity(ctx, "s1", params("INV-5K", 2))
	require.NoError(t, err)
	items, err := m.AddOrSetQuantity(ctx, "s1", params("INV-5K", 5))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddKeepsProductAndServiceSeparate(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	_, err := m.AddOrSetQuantity(ctx, "s1", params("X-1", 1))
	require.NoError(t, err)

	service := params("X-1", 2)
	service.Kind = catalog.KindService
	items, err := m.AddOrSetQuantity(ctx, "s1", service)
	require.NoError(t, err)

	assert.Len(t, items, 2)
}

func TestDecreaseFloorsAtOne(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	_, err := m.AddOrSetQuantity(ctx, "s1", params("INV-5K", 1))
	require.NoError(t, err)

	items, err := m.DecreaseByCode(ctx, "s1", "INV-5K")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestIncreaseAndDecreaseByCode(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	_, err := m.AddOrSetQuantity(ctx, "s1", params("INV-5K", 2))
	require.NoError(t, err)

	items, err := m.IncreaseByCode(ctx, "s1", "INV-5K")
	require.NoError(t, err)
	assert.Equal(t, 3, items[0].Quantity)

	items, err = m.DecreaseByCode(ctx, "s1", "INV-5K")
	require.NoError(t, err)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveByCode(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	_, err := m.AddOrSetQuantity(ctx, "s1", params("INV-5K", 1))
	require.NoError(t, err)
	_, err = m.AddOrSetQuantity(ctx, "s1", params("BAT-12V", 1))
	require.NoError(t, err)

	items, err := m.RemoveByCode(ctx, "s1", "INV-5K")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "BAT-12V", items[0].Code)
}

func TestUnknownCode(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	_, err := m.IncreaseByCode(ctx, "s1", "NOPE")
	assert.ErrorIs(t, err, ErrNotInQuote)
	_, err = m.RemoveByCode(ctx, "s1", "NOPE")
	assert.ErrorIs(t, err, ErrNotInQuote)
}

func TestLoadRoundTripsPersistedShape(t *testing.T) {
	m, s := newTestManager()
	ctx := context.Background()

	legacy := `[{"code":"INV-5K","name":"Inverter 5kW","price":"45000","gstRate":"18","quantity":2,"type":"product"}]`
	require.NoError(t, s.Set(ctx, "s1", store.KeyQuoteItems, legacy))

	items, err := m.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "INV-5K", items[0].Code)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestLoadResetsCorruptPayload(t *testing.T) {
	m, s := newTestManager()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "s1", store.KeyQuoteItems, "[broken"))

	items, err := m.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)

	raw, err := s.Get(ctx, "s1", store.KeyQuoteItems)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestCount(t *testing.T) {
	items := []Item{{Quantity: 1}, {Quantity: 4}}
	assert.Equal(t, 5, Count(items))
}
