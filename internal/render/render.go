// Package render projects cart and quote state into the rows and
// summaries the admin UI materializes. Projections are pure: the same
// items always produce the same view, and nothing here touches storage
// or the network.
//
// The order of operations is fixed: the discount is applied to the line
// subtotal first, and GST is computed on the discounted base.
package render

import (
	"github.com/shopspring/decimal"

	"github.com/SHAIK-07/sunmax/internal/cart"
	"github.com/SHAIK-07/sunmax/internal/catalog"
	"github.com/SHAIK-07/sunmax/internal/quote"
)

var hundred = decimal.NewFromInt(100)

type CartRow struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Kind            catalog.Kind    `json:"kind"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	Discount        decimal.Decimal `json:"discount"`
	GSTRate         decimal.Decimal `json:"gst_rate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxableSubtotal decimal.Decimal `json:"taxable_subtotal"`
	GSTAmount       decimal.Decimal `json:"gst_amount"`
	Total           decimal.Decimal `json:"total"`
}

type CartSummary struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	GSTAmount      decimal.Decimal `json:"gst_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

type CartView struct {
	Rows      []CartRow   `json:"rows"`
	Summary   CartSummary `json:"summary"`
	ItemCount int         `json:"item_count"`
}

// BuildCart computes every per-line derived field and the aggregate
// summary for a cart.
func BuildCart(items []cart.LineItem) CartView {
	view := CartView{
		Rows:      make([]CartRow, 0, len(items)),
		ItemCount: cart.Count(items),
		Summary: CartSummary{
			Subtotal:       decimal.Zero,
			DiscountAmount: decimal.Zero,
			TaxableAmount:  decimal.Zero,
			GSTAmount:      decimal.Zero,
			GrandTotal:     decimal.Zero,
		},
	}

	for _, item := range items {
		row := buildCartRow(item)
		view.Rows = append(view.Rows, row)

		view.Summary.Subtotal = view.Summary.Subtotal.Add(row.Subtotal)
		view.Summary.DiscountAmount = view.Summary.DiscountAmount.Add(row.DiscountAmount)
		view.Summary.GSTAmount = view.Summary.GSTAmount.Add(row.GSTAmount)
	}

	view.Summary.TaxableAmount = view.Summary.Subtotal.Sub(view.Summary.DiscountAmount)
	view.Summary.GrandTotal = view.Summary.TaxableAmount.Add(view.Summary.GSTAmount)
	return view
}

func buildCartRow(item cart.LineItem) CartRow {
	subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	discountAmount := subtotal.Mul(item.Discount).Div(hundred)
	taxable := subtotal.Sub(discountAmount)
	gstAmount := taxable.Mul(item.GSTRate).Div(hundred)

	return CartRow{
		ID:              item.ID,
		Name:            item.Name,
		Kind:            item.Kind,
		Price:           item.Price,
		Quantity:        item.Quantity,
		Discount:        item.Discount,
		GSTRate:         item.GSTRate,
		Subtotal:        subtotal,
		DiscountAmount:  discountAmount,
		TaxableSubtotal: taxable,
		GSTAmount:       gstAmount,
		Total:           taxable.Add(gstAmount),
	}
}

type QuoteRow struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Kind      catalog.Kind    `json:"kind"`
	Price     decimal.Decimal `json:"price"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	GSTAmount decimal.Decimal `json:"gst_amount"`
	Total     decimal.Decimal `json:"total"`
}

type QuoteSummary struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	GSTAmount  decimal.Decimal `json:"gst_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

type QuoteView struct {
	Rows      []QuoteRow   `json:"rows"`
	Summary   QuoteSummary `json:"summary"`
	ItemCount int          `json:"item_count"`
}

// BuildQuote computes quote rows and totals. Quotes carry no discount;
// GST applies directly to the line subtotal.
func BuildQuote(items []quote.Item) QuoteView {
	view := QuoteView{
		Rows:      make([]QuoteRow, 0, len(items)),
		ItemCount: quote.Count(items),
		Summary: QuoteSummary{
			Subtotal:   decimal.Zero,
			GSTAmount:  decimal.Zero,
			GrandTotal: decimal.Zero,
		},
	}

	for _, item := range items {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		gstAmount := subtotal.Mul(item.GSTRate).Div(hundred)

		view.Rows = append(view.Rows, QuoteRow{
			Code:      item.Code,
			Name:      item.Name,
			Kind:      item.Kind,
			Price:     item.Price,
			GSTRate:   item.GSTRate,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
			GSTAmount: gstAmount,
			Total:     subtotal.Add(gstAmount),
		})

		view.Summary.Subtotal = view.Summary.Subtotal.Add(subtotal)
		view.Summary.GSTAmount = view.Summary.GSTAmount.Add(gstAmount)
	}

	view.Summary.GrandTotal = view.Summary.Subtotal.Add(view.Summary.GSTAmount)
	return view
}
