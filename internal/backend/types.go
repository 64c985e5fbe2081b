package backend

import "github.com/shopspring/decimal"

// StockResult is the reserve/release response contract:
// {success, new_quantity?, message?}.
type StockResult struct {
	Success     bool   `json:"success"`
	NewQuantity *int   `json:"new_quantity,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Product is an inventory item record as served by
// GET /api/inventory/item/{id}.
type Product struct {
	ItemCode             string           `json:"item_code"`
	ItemName             string           `json:"item_name"`
	HSNCode              string           `json:"hsn_code"`
	PurchasePricePerUnit decimal.Decimal  `json:"purchase_price_per_unit"`
	Margin               *decimal.Decimal `json:"margin,omitempty"`
	GSTRate              decimal.Decimal  `json:"gst_rate"`
	Quantity             int              `json:"quantity"`
	UnitOfMeasurement    string           `json:"unit_of_measurement,omitempty"`
	SupplierName         string           `json:"supplier_name"`
	SupplierGSTNumber    string           `json:"supplier_gst_number"`
	Date                 string           `json:"date"`
}

// Service is a service record as served by GET /api/services/item/{id}.
type Service struct {
	ServiceCode  string          `json:"service_code"`
	ServiceName  string          `json:"service_name"`
	Date         string          `json:"date"`
	EmployeeName string          `json:"employee_name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
}

// ItemUpdate is the partial update body accepted by
// POST /api/inventory/update-item/{code}.
type ItemUpdate struct {
	ItemName             string          `json:"item_name"`
	HSNCode              string          `json:"hsn_code"`
	PurchasePricePerUnit decimal.Decimal `json:"purchase_price_per_unit"`
	Margin               decimal.Decimal `json:"margin"`
	GSTRate              decimal.Decimal `json:"gst_rate"`
	Quantity             int             `json:"quantity"`
	UnitOfMeasurement    string          `json:"unit_of_measurement"`
	SupplierName         string          `json:"supplier_name"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// NewUser is the form payload for POST /api/users/create.
type NewUser struct {
	Name     string
	Email    string
	Phone    string
	Role     string
	Password string
}

// UserUpdate is the form payload for POST /api/users/update/{id}.
type UserUpdate struct {
	Name  string
	Email string
	Phone string
	Role  string
}
