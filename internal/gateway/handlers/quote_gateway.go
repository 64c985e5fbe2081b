package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SHAIK-07/sunmax/internal/catalog"
	"github.com/SHAIK-07/sunmax/internal/quote"
	"github.com/SHAIK-07/sunmax/internal/render"
)

type QuoteHTTPHandler struct {
	quote *quote.Manager
}

func NewQuoteHTTPHandler(quoteManager *quote.Manager) *QuoteHTTPHandler {
	return &QuoteHTTPHandler{quote: quoteManager}
}

type addQuoteItemRequest struct {
	Code     string          `json:"code" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	GSTRate  decimal.Decimal `json:"gstRate"`
	ItemType catalog.Kind    `json:"type"`
	Quantity int             `json:"quantity"`
}

func (h *QuoteHTTPHandler) GetQuote(c *gin.Context) {
	items, err := h.quote.Load(c.Request.Context(), sessionFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load quote"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Quote retrieved", render.BuildQuote(items)))
}

// AddItem sets the quoted quantity for a (code, kind) pair; quoting an
// item again replaces its quantity rather than adding to it.
func (h *QuoteHTTPHandler) AddItem(c *gin.Context) {
	var req addQuoteItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}

	items, err := h.quote.AddOrSetQuantity(c.Request.Context(), sessionFrom(c), quote.AddParams{
		Code:     req.Code,
		Name:     req.Name,
		Price:    req.Price,
		GSTRate:  req.GSTRate,
		Kind:     req.ItemType,
		Quantity: req.Quantity,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to add item to quote"))
		return
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	c.JSON(http.StatusOK, successResponse(
		fmt.Sprintf("%d %s added to quote", qty, req.Name),
		render.BuildQuote(items),
	))
}

func (h *QuoteHTTPHandler) Increase(c *gin.Context) {
	items, err := h.quote.IncreaseByCode(c.Request.Context(), sessionFrom(c), c.Param("code"))
	h.respond(c, items, err, "Quantity updated")
}

func (h *QuoteHTTPHandler) Decrease(c *gin.Context) {
	items, err := h.quote.DecreaseByCode(c.Request.Context(), sessionFrom(c), c.Param("code"))
	h.respond(c, items, err, "Quantity updated")
}

func (h *QuoteHTTPHandler) Remove(c *gin.Context) {
	items, err := h.quote.RemoveByCode(c.Request.Context(), sessionFrom(c), c.Param("code"))
	h.respond(c, items, err, "Item removed from quote")
}

func (h *QuoteHTTPHandler) respond(c *gin.Context, items []quote.Item, err error, message string) {
	if err == quote.ErrNotInQuote {
		c.JSON(http.StatusNotFound, errorResponse("Item not in quote"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to update quote"))
		return
	}
	c.JSON(http.StatusOK, successResponse(message, render.BuildQuote(items)))
}
