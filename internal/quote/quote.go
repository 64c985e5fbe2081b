// Package quote manages the non-binding quote list: priced items with no
// discounts and no stock interaction. Same persistence pattern as the
// cart, simpler semantics — adding an item that is already quoted
// replaces its quantity instead of incrementing it.
package quote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/SHAIK-07/sunmax/internal/catalog"
	"github.com/SHAIK-07/sunmax/internal/store"
)

// Item keeps the JSON field names the admin UI has always persisted
// under the quoteItems key.
type Item struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	GSTRate  decimal.Decimal `json:"gstRate"`
	Quantity int             `json:"quantity"`
	Kind     catalog.Kind    `json:"type"`
}

var ErrNotInQuote = fmt.Errorf("item not in quote")

type AddParams struct {
	Code     string
	Name     string
	Price    decimal.Decimal
	GSTRate  decimal.Decimal
	Kind     catalog.Kind
	Quantity int
}

type Manager struct {
	store store.Store
	log   *logrus.Entry
}

func NewManager(s store.Store, log *logrus.Logger) *Manager {
	return &Manager{
		store: s,
		log:   log.WithField("component", "quote"),
	}
}

// Load restores the session's quote list. A corrupt payload resets it to
// empty.
func (m *Manager) Load(ctx context.Context, session string) ([]Item, error) {
	raw, err := m.store.Get(ctx, session, store.KeyQuoteItems)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		m.log.WithError(err).WithField("session", session).Error("corrupt quote payload, resetting")
		if err := m.persist(ctx, session, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return items, nil
}

func (m *Manager) persist(ctx context.Context, session string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, session, store.KeyQuoteItems, string(payload))
}

// AddOrSetQuantity appends a new item, or replaces the quantity of an
// existing (code, kind) pair with the given quantity. It never
// increments.
func (m *Manager) AddOrSetQuantity(ctx context.Context, session string, p AddParams) ([]Item, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	qty := p.Quantity
	if qty < 1 {
		qty = 1
	}

	idx := findItem(items, p.Code, p.Kind)
	if idx >= 0 {
		items[idx].Quantity = qty
	} else {
		items = append(items, Item{
			Code:     p.Code,
			Name:     p.Name,
			Price:    p.Price,
			GSTRate:  p.GSTRate,
			Quantity: qty,
			Kind:     p.Kind,
		})
	}

	if err := m.persist(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// IncreaseAt bumps the quantity of the item at a list index.
func (m *Manager) IncreaseAt(ctx context.Context, session string, index int) ([]Item, error) {
	return m.adjustAt(ctx, session, index, 1)
}

// DecreaseAt lowers the quantity at a list index, flooring at one unit.
func (m *Manager) DecreaseAt(ctx context.Context, session string, index int) ([]Item, error) {
	return m.adjustAt(ctx, session, index, -1)
}

func (m *Manager) adjustAt(ctx context.Context, session string, index, delta int) ([]Item, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return items, ErrNotInQuote
	}
	if delta < 0 && items[index].Quantity <= 1 {
		return items, nil
	}

	items[index].Quantity += delta
	if err := m.persist(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveAt deletes the item at a list index.
func (m *Manager) RemoveAt(ctx context.Context, session string, index int) ([]Item, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return items, ErrNotInQuote
	}

	items = append(items[:index], items[index+1:]...)
	if err := m.persist(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// IncreaseByCode bumps the first item with the given code.
func (m *Manager) IncreaseByCode(ctx context.Context, session, code string) ([]Item, error) {
	return m.adjustByCode(ctx, session, code, 1)
}

// DecreaseByCode lowers the first item with the given code, flooring at
// one unit.
func (m *Manager) DecreaseByCode(ctx context.Context, session, code string) ([]Item, error) {
	return m.adjustByCode(ctx, session, code, -1)
}

func (m *Manager) adjustByCode(ctx context.Context, session, code string, delta int) ([]Item, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	idx := findByCode(items, code)
	if idx < 0 {
		return items, ErrNotInQuote
	}
	return m.adjustAt(ctx, session, idx, delta)
}

// RemoveByCode deletes the first item with the given code.
func (m *Manager) RemoveByCode(ctx context.Context, session, code string) ([]Item, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	idx := findByCode(items, code)
	if idx < 0 {
		return items, ErrNotInQuote
	}
	return m.RemoveAt(ctx, session, idx)
}

// Count is the total unit count across the quote, shown on the badge.
func Count(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// Uniqueness key is (code, kind); by-code lookups match the first entry
// with that code, mirroring how the quote page addresses rows.
func findItem(items []Item, code string, kind catalog.Kind) int {
	for i := range items {
		if items[i].Code == code && items[i].Kind == kind {
			return i
		}
	}
	return -1
}

func findByCode(items []Item, code string) int {
	for i := range items {
		if items[i].Code == code {
			return i
		}
	}
	return -1
}
