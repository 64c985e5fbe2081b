// Package editor implements the inline inventory row editor: each row
// toggles between view and edit mode, edits are validated locally before
// anything is sent, and a backend rejection keeps the row in edit mode
// with the server's message.
package editor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/SHAIK-07/sunmax/internal/backend"
)

type Mode int

const (
	ModeView Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "view"
}

// Fields are the editable columns of an inventory row.
type Fields struct {
	ItemName             string          `json:"item_name"`
	HSNCode              string          `json:"hsn_code"`
	PurchasePricePerUnit decimal.Decimal `json:"purchase_price_per_unit"`
	Margin               decimal.Decimal `json:"margin"`
	GSTRate              decimal.Decimal `json:"gst_rate"`
	Quantity             int             `json:"quantity"`
	UnitOfMeasurement    string          `json:"unit_of_measurement"`
	SupplierName         string          `json:"supplier_name"`
}

// FieldError names the offending input so the UI can focus it. No
// request is sent when validation fails.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Validate checks the required and numeric constraints, reporting the
// first offending field in the order the row lays them out.
func Validate(f Fields) error {
	if strings.TrimSpace(f.ItemName) == "" {
		return &FieldError{Field: "item_name", Message: "Item name cannot be empty"}
	}
	if strings.TrimSpace(f.HSNCode) == "" {
		return &FieldError{Field: "hsn_code", Message: "HSN code cannot be empty"}
	}
	if f.PurchasePricePerUnit.IsNegative() {
		return &FieldError{Field: "purchase_price_per_unit", Message: "Please enter a valid price"}
	}
	if f.GSTRate.IsNegative() {
		return &FieldError{Field: "gst_rate", Message: "Please enter a valid GST rate"}
	}
	if f.Quantity < 0 {
		return &FieldError{Field: "quantity", Message: "Please enter a valid quantity"}
	}
	if f.Margin.IsNegative() {
		return &FieldError{Field: "margin", Message: "Please enter a valid margin"}
	}
	return nil
}

// Row is the state of one inventory row in the editor.
type Row struct {
	Mode   Mode   `json:"mode"`
	Fields Fields `json:"fields"`
	// FocusField names the first input to focus when entering edit mode
	// or after a validation failure.
	FocusField string `json:"focus_field,omitempty"`
}

type Editor struct {
	client *backend.Client

	mu   sync.Mutex
	rows map[string]*Row
}

func NewEditor(client *backend.Client) *Editor {
	return &Editor{client: client, rows: make(map[string]*Row)}
}

// Row returns the current state for an item code; rows start in view
// mode.
func (e *Editor) Row(itemCode string) Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	if row, ok := e.rows[itemCode]; ok {
		return *row
	}
	return Row{Mode: ModeView}
}

// Begin toggles a row into edit mode with the given current values and
// focuses the first field. Beginning an already-editing row cancels it,
// matching the toggle button behavior.
func (e *Editor) Begin(itemCode string, current Fields) Row {
	e.mu.Lock()
	defer e.mu.Unlock()

	if row, ok := e.rows[itemCode]; ok && row.Mode == ModeEdit {
		row.Mode = ModeView
		row.FocusField = ""
		return *row
	}

	row := &Row{Mode: ModeEdit, Fields: current, FocusField: "item_name"}
	e.rows[itemCode] = row
	return *row
}

// Cancel returns a row to view mode, discarding pending edits.
func (e *Editor) Cancel(itemCode string) Row {
	e.mu.Lock()
	defer e.mu.Unlock()

	row, ok := e.rows[itemCode]
	if !ok {
		return Row{Mode: ModeView}
	}
	row.Mode = ModeView
	row.FocusField = ""
	return *row
}

// Save validates the edited fields and sends the update. A validation
// failure aborts locally with the field to focus; a backend rejection
// keeps the row in edit mode and surfaces the server message. On success
// the accepted values are reflected back into view mode.
func (e *Editor) Save(ctx context.Context, itemCode string, f Fields) (Row, error) {
	if err := Validate(f); err != nil {
		fieldErr := err.(*FieldError)
		e.mu.Lock()
		if row, ok := e.rows[itemCode]; ok {
			row.FocusField = fieldErr.Field
		}
		e.mu.Unlock()
		return e.Row(itemCode), err
	}

	update := backend.ItemUpdate{
		ItemName:             strings.TrimSpace(f.ItemName),
		HSNCode:              strings.TrimSpace(f.HSNCode),
		PurchasePricePerUnit: f.PurchasePricePerUnit,
		Margin:               f.Margin,
		GSTRate:              f.GSTRate,
		Quantity:             f.Quantity,
		UnitOfMeasurement:    f.UnitOfMeasurement,
		SupplierName:         strings.TrimSpace(f.SupplierName),
	}

	if err := e.client.UpdateItem(ctx, itemCode, update); err != nil {
		return e.Row(itemCode), err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	row := &Row{Mode: ModeView, Fields: f}
	row.Fields.ItemName = update.ItemName
	row.Fields.HSNCode = update.HSNCode
	row.Fields.SupplierName = update.SupplierName
	e.rows[itemCode] = row
	return *row, nil
}

// SellingPrice is the derived display column: purchase price plus
// margin, rounded to paise.
func SellingPrice(f Fields) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(f.Margin.Div(decimal.NewFromInt(100)))
	return f.PurchasePricePerUnit.Mul(factor).Round(2)
}

// Delete removes an item via the backend and drops any local row state.
func (e *Editor) Delete(ctx context.Context, itemCode string) error {
	if itemCode == "" {
		return fmt.Errorf("no item selected for deletion")
	}
	if err := e.client.DeleteItem(ctx, itemCode); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.rows, itemCode)
	return nil
}
