// Package detail drives the shared product/service detail modal. The
// controller is a three-state machine: closed -> loading -> populated,
// with every failure path collapsing back to closed so the modal can
// never wedge in loading.
package detail

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/SHAIK-07/sunmax/internal/backend"
	"github.com/SHAIK-07/sunmax/internal/catalog"
)

type State int

const (
	StateClosed State = iota
	StateLoading
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	default:
		return "closed"
	}
}

// Products without an explicit margin sell at purchase price plus 20%.
var defaultMargin = decimal.NewFromInt(20)

// AddAction carries everything the bound add-to-cart button needs.
type AddAction struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	Available *int            `json:"available,omitempty"`
	Kind      catalog.Kind    `json:"kind"`
}

// View is the populated modal content.
type View struct {
	Kind    catalog.Kind     `json:"kind"`
	Product *backend.Product `json:"product,omitempty"`
	Service *backend.Service `json:"service,omitempty"`
	// SellingPrice is derived for products: purchase price plus margin.
	SellingPrice decimal.Decimal `json:"selling_price"`
	// TotalWithGST is derived for services: price plus GST.
	TotalWithGST decimal.Decimal `json:"total_with_gst"`
	AddToCart    AddAction       `json:"add_to_cart"`
}

type Controller struct {
	client *backend.Client

	mu    sync.Mutex
	state State
	view  *View
}

func NewController(client *backend.Client) *Controller {
	return &Controller{client: client, state: StateClosed}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns the populated content, or nil unless the modal is
// populated.
func (c *Controller) View() *View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePopulated {
		return nil
	}
	return c.view
}

// Open fetches the record and populates the modal. On any failure the
// modal returns to closed and the error carries the notice to show.
func (c *Controller) Open(ctx context.Context, id string, kind catalog.Kind) (*View, error) {
	c.mu.Lock()
	c.state = StateLoading
	c.view = nil
	c.mu.Unlock()

	view, err := c.fetch(ctx, id, kind)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateClosed
		return nil, err
	}
	c.state = StatePopulated
	c.view = view
	return view, nil
}

// Close is valid from any state.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
	c.view = nil
}

func (c *Controller) fetch(ctx context.Context, id string, kind catalog.Kind) (*View, error) {
	switch catalog.Normalize(kind) {
	case catalog.KindService:
		service, err := c.client.GetService(ctx, id)
		if err != nil {
			return nil, err
		}
		return serviceView(service), nil
	default:
		product, err := c.client.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		return productView(product), nil
	}
}

// SellingPrice derives the sticker price from purchase price and margin,
// rounded to paise.
func SellingPrice(p *backend.Product) decimal.Decimal {
	margin := defaultMargin
	if p.Margin != nil {
		margin = *p.Margin
	}
	factor := decimal.NewFromInt(1).Add(margin.Div(decimal.NewFromInt(100)))
	return p.PurchasePricePerUnit.Mul(factor).Round(2)
}

func productView(p *backend.Product) *View {
	selling := SellingPrice(p)
	available := p.Quantity
	return &View{
		Kind:         catalog.KindProduct,
		Product:      p,
		SellingPrice: selling,
		AddToCart: AddAction{
			ID:        p.ItemCode,
			Name:      p.ItemName,
			Price:     selling,
			GSTRate:   p.GSTRate,
			Available: &available,
			Kind:      catalog.KindProduct,
		},
	}
}

func serviceView(s *backend.Service) *View {
	gst := s.Price.Mul(s.GSTRate).Div(decimal.NewFromInt(100))
	return &View{
		Kind:         catalog.KindService,
		Service:      s,
		TotalWithGST: s.Price.Add(gst),
		AddToCart: AddAction{
			ID:      s.ServiceCode,
			Name:    s.ServiceName,
			Price:   s.Price,
			GSTRate: s.GSTRate,
			Kind:    catalog.KindService,
		},
	}
}

// ParseServiceID mirrors the strict integer check the services endpoint
// expects.
func ParseServiceID(raw string) (string, error) {
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid service ID: %q", raw)
		}
	}
	if raw == "" {
		return "", fmt.Errorf("invalid service ID: empty")
	}
	return raw, nil
}
