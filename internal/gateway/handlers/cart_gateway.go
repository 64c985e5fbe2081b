package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SHAIK-07/sunmax/internal/cart"
	"github.com/SHAIK-07/sunmax/internal/catalog"
	"github.com/SHAIK-07/sunmax/internal/render"
	"github.com/SHAIK-07/sunmax/internal/stock"
)

type CartHTTPHandler struct {
	cart  *cart.Manager
	stock *stock.Reserver
}

func NewCartHTTPHandler(cartManager *cart.Manager, reserver *stock.Reserver) *CartHTTPHandler {
	return &CartHTTPHandler{
		cart:  cartManager,
		stock: reserver,
	}
}

type addItemRequest struct {
	ID                string          `json:"id" binding:"required"`
	Name              string          `json:"item_name" binding:"required"`
	Price             decimal.Decimal `json:"price"`
	GSTRate           decimal.Decimal `json:"gst_rate"`
	AvailableQuantity *int            `json:"available_quantity,omitempty"`
	ItemType          catalog.Kind    `json:"item_type"`
	Quantity          int             `json:"quantity"`
}

type quantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type discountRequest struct {
	Discount decimal.Decimal `json:"discount"`
}

// cartPayload is what every cart endpoint responds with: the rendered
// view plus the reconciled stock numbers for the badges.
func (h *CartHTTPHandler) cartPayload(items []cart.LineItem) gin.H {
	payload := gin.H{"cart": render.BuildCart(items)}
	if h.stock != nil {
		payload["stock"] = h.stock.Displayed()
	}
	return payload
}

func (h *CartHTTPHandler) GetCart(c *gin.Context) {
	items, err := h.cart.Load(c.Request.Context(), sessionFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load cart"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Cart retrieved", h.cartPayload(items)))
}

func (h *CartHTTPHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}

	items, err := h.cart.AddItem(c.Request.Context(), sessionFrom(c), cart.AddParams{
		ID:        req.ID,
		Name:      req.Name,
		Price:     req.Price,
		GSTRate:   req.GSTRate,
		Available: req.AvailableQuantity,
		Kind:      req.ItemType,
		Quantity:  req.Quantity,
	})

	var insufficient *cart.InsufficientStockError
	if errors.As(err, &insufficient) {
		// A notice, not a failure: the cart is untouched and nothing was
		// sent to the backend.
		c.JSON(http.StatusConflict, errorResponse(insufficient.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to add item to cart"))
		return
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	c.JSON(http.StatusOK, successResponse(
		fmt.Sprintf("%d %s added to cart", qty, req.Name),
		h.cartPayload(items),
	))
}

func (h *CartHTTPHandler) UpdateQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}

	items, err := h.cart.UpdateQuantity(c.Request.Context(), sessionFrom(c), c.Param("id"), req.Delta)
	if err == cart.ErrNotInCart {
		c.JSON(http.StatusNotFound, errorResponse("Item not in cart"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update quantity"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Quantity updated", h.cartPayload(items)))
}

func (h *CartHTTPHandler) SetDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}

	items, err := h.cart.SetDiscount(c.Request.Context(), sessionFrom(c), c.Param("id"), req.Discount)
	if err == cart.ErrNotInCart {
		c.JSON(http.StatusNotFound, errorResponse("Item not in cart"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to set discount"))
		return
	}

	clamped := cart.ClampDiscount(req.Discount)
	c.JSON(http.StatusOK, successResponse(
		fmt.Sprintf("Discount of %s%% applied", clamped.String()),
		h.cartPayload(items),
	))
}

func (h *CartHTTPHandler) RemoveItem(c *gin.Context) {
	items, err := h.cart.RemoveItem(c.Request.Context(), sessionFrom(c), c.Param("id"))
	if err == cart.ErrNotInCart {
		c.JSON(http.StatusNotFound, errorResponse("Item not in cart"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to remove item"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Item removed", h.cartPayload(items)))
}

func (h *CartHTTPHandler) ClearCart(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context(), sessionFrom(c)); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to clear cart"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Cart cleared", h.cartPayload(nil)))
}

func (h *CartHTTPHandler) ApplyGlobalDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}

	items, err := h.cart.ApplyGlobalDiscount(c.Request.Context(), sessionFrom(c), req.Discount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to apply discount"))
		return
	}

	clamped := cart.ClampDiscount(req.Discount)
	c.JSON(http.StatusOK, successResponse(
		fmt.Sprintf("Discount of %s%% applied to all items", clamped.String()),
		h.cartPayload(items),
	))
}

func (h *CartHTTPHandler) ResetDiscount(c *gin.Context) {
	items, err := h.cart.ResetDiscount(c.Request.Context(), sessionFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to reset discounts"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Discounts have been reset", h.cartPayload(items)))
}
