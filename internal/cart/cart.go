// Package cart owns the purchasing cart: an ordered list of line items
// per session, persisted to the state store on every mutation. Stock for
// product lines is reserved optimistically; the local quantity is
// applied before the reservation result returns and is never rolled back
// (the displayed stock converges from backend responses instead).
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/SHAIK-07/sunmax/internal/catalog"
	"github.com/SHAIK-07/sunmax/internal/store"
)

// LineItem keeps the JSON field names the admin UI has always persisted,
// so carts saved by older clients load unchanged.
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"item_name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Discount decimal.Decimal `json:"discount"`
	GSTRate  decimal.Decimal `json:"gst_rate"`
	Kind     catalog.Kind    `json:"item_type"`
}

// InsufficientStockError rejects a product add that would exceed the
// backend's last-reported available quantity. The message is shown to
// the user as a notice; nothing is mutated and nothing is sent.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Sorry, only %d units available in stock.", e.Available)
}

// ErrNotInCart reports an operation against a line that does not exist.
var ErrNotInCart = fmt.Errorf("item not in cart")

// StockReserver issues the fire-and-forget reservation calls triggered
// by product quantity changes.
type StockReserver interface {
	Reserve(itemCode string, qty int)
	Release(itemCode string, qty int)
}

type AddParams struct {
	ID      string
	Name    string
	Price   decimal.Decimal
	GSTRate decimal.Decimal
	// Available is the backend's last-reported quantity; nil means
	// unknown (services, or views without a stock badge).
	Available *int
	Kind      catalog.Kind
	Quantity  int
}

type Manager struct {
	store store.Store
	stock StockReserver
	log   *logrus.Entry
}

func NewManager(s store.Store, reserver StockReserver, log *logrus.Logger) *Manager {
	return &Manager{
		store: s,
		stock: reserver,
		log:   log.WithField("component", "cart"),
	}
}

// Load restores the session's cart. A corrupt payload resets the cart to
// empty rather than failing the request.
func (m *Manager) Load(ctx context.Context, session string) ([]LineItem, error) {
	raw, err := m.store.Get(ctx, session, store.KeyCart)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		m.log.WithError(err).WithField("session", session).Error("corrupt cart payload, resetting")
		if err := m.persist(ctx, session, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	for i := range items {
		items[i].Kind = catalog.Normalize(items[i].Kind)
	}
	return items, nil
}

func (m *Manager) persist(ctx context.Context, session string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, session, store.KeyCart, string(payload))
}

// AddItem appends a line or increments an existing one. Product adds
// past the last-known available quantity are rejected with an
// InsufficientStockError and nothing is sent to the backend; otherwise
// the reservation request goes out after local state is updated.
func (m *Manager) AddItem(ctx context.Context, session string, p AddParams) ([]LineItem, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	qty := p.Quantity
	if qty < 1 {
		qty = 1
	}
	kind := catalog.Normalize(p.Kind)

	idx := findLine(items, p.ID)
	current := 0
	if idx >= 0 {
		current = items[idx].Quantity
	}

	if kind.IsProduct() && p.Available != nil && current+qty > *p.Available {
		return items, &InsufficientStockError{Available: *p.Available}
	}

	if idx >= 0 {
		items[idx].Quantity += qty
	} else {
		items = append(items, LineItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: qty,
			Discount: decimal.Zero,
			GSTRate:  p.GSTRate,
			Kind:     kind,
		})
	}

	if kind.IsProduct() && m.stock != nil {
		m.stock.Reserve(p.ID, qty)
	}

	// Adding items invalidates any bulk-discount state.
	if err := m.store.Delete(ctx, session, store.KeyDiscountApplied); err != nil {
		return nil, err
	}
	if err := m.persist(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity adjusts a line by a signed delta, removing it when the
// result drops to zero or below. Product lines reserve on increase and
// release on decrease; the release is clamped to what the line actually
// holds.
func (m *Manager) UpdateQuantity(ctx context.Context, session, id string, delta int) ([]LineItem, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	idx := findLine(items, id)
	if idx < 0 {
		return items, ErrNotInCart
	}
	line := &items[idx]

	if line.Kind.IsProduct() && m.stock != nil && delta != 0 {
		if delta > 0 {
			m.stock.Reserve(id, delta)
		} else {
			release := -delta
			if release > line.Quantity {
				release = line.Quantity
			}
			m.stock.Release(id, release)
		}
	}

	line.Quantity += delta
	if line.Quantity <= 0 {
		// Reserved stock was already released above.
		items = append(items[:idx], items[idx+1:]...)
	}

	if err := m.store.Delete(ctx, session, store.KeyDiscountApplied); err != nil {
		return nil, err
	}
	if err := m.persist(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetDiscount stores a per-line discount percent, clamped to [0,100],
// and marks the session as manually discounted.
func (m *Manager) SetDiscount(ctx context.Context, session, id string, percent decimal.Decimal) ([]LineItem, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	idx := findLine(items, id)
	if idx < 0 {
		return items, ErrNotInCart
	}
	items[idx].Discount = ClampDiscount(percent)

	if err := m.store.Set(ctx, session, store.KeyDiscountApplied, "true"); err != nil {
		return nil, err
	}
	if err := m.persist(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem releases the full reserved quantity of a product line, then
// deletes it.
func (m *Manager) RemoveItem(ctx context.Context, session, id string) ([]LineItem, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	idx := findLine(items, id)
	if idx < 0 {
		return items, ErrNotInCart
	}

	line := items[idx]
	if line.Kind.IsProduct() && m.stock != nil {
		m.stock.Release(line.ID, line.Quantity)
	}
	items = append(items[:idx], items[idx+1:]...)

	if len(items) == 0 {
		if err := m.store.Delete(ctx, session, store.KeyDiscountApplied); err != nil {
			return nil, err
		}
	}
	if err := m.persist(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ApplyGlobalDiscount sets the same discount on every line. Reservations
// are untouched.
func (m *Manager) ApplyGlobalDiscount(ctx context.Context, session string, percent decimal.Decimal) ([]LineItem, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	clamped := ClampDiscount(percent)
	for i := range items {
		items[i].Discount = clamped
	}

	if err := m.store.Set(ctx, session, store.KeyDiscountApplied, "true"); err != nil {
		return nil, err
	}
	if err := m.persist(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ResetDiscount clears every line's discount and the session flag.
func (m *Manager) ResetDiscount(ctx context.Context, session string) ([]LineItem, error) {
	items, err := m.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Discount = decimal.Zero
	}

	if err := m.store.Delete(ctx, session, store.KeyDiscountApplied); err != nil {
		return nil, err
	}
	if err := m.persist(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear empties the cart, releasing the reserved stock of every product
// line, and drops the discount flag.
func (m *Manager) Clear(ctx context.Context, session string) error {
	items, err := m.Load(ctx, session)
	if err != nil {
		return err
	}

	if m.stock != nil {
		for _, line := range items {
			if line.Kind.IsProduct() {
				m.stock.Release(line.ID, line.Quantity)
			}
		}
	}

	if err := m.store.Delete(ctx, session, store.KeyDiscountApplied); err != nil {
		return err
	}
	return m.persist(ctx, session, nil)
}

// DiscountApplied reports whether a manual discount has been applied
// since the cart last changed shape.
func (m *Manager) DiscountApplied(ctx context.Context, session string) bool {
	val, err := m.store.Get(ctx, session, store.KeyDiscountApplied)
	return err == nil && val == "true"
}

// Count is the total unit count across all lines, shown on the cart
// badge.
func Count(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// ClampDiscount bounds a discount percent to [0,100].
func ClampDiscount(percent decimal.Decimal) decimal.Decimal {
	if percent.IsNegative() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	if percent.GreaterThan(hundred) {
		return hundred
	}
	return percent
}

func findLine(items []LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
