package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/SHAIK-07/sunmax/internal/backend"
	"github.com/SHAIK-07/sunmax/internal/catalog"
	"github.com/SHAIK-07/sunmax/internal/detail"
	"github.com/SHAIK-07/sunmax/internal/editor"
	"github.com/SHAIK-07/sunmax/internal/stock"
)

// InventoryHTTPHandler serves the detail modal and the inline row editor.
// Modal and editor state is per session, created on first touch.
type InventoryHTTPHandler struct {
	client *backend.Client
	stock  *stock.Reserver

	mu      sync.Mutex
	modals  map[string]*detail.Controller
	editors map[string]*editor.Editor
}

func NewInventoryHTTPHandler(client *backend.Client, reserver *stock.Reserver) *InventoryHTTPHandler {
	return &InventoryHTTPHandler{
		client:  client,
		stock:   reserver,
		modals:  make(map[string]*detail.Controller),
		editors: make(map[string]*editor.Editor),
	}
}

func (h *InventoryHTTPHandler) modal(session string) *detail.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.modals[session]; ok {
		return m
	}
	m := detail.NewController(h.client)
	h.modals[session] = m
	return m
}

func (h *InventoryHTTPHandler) editor(session string) *editor.Editor {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.editors[session]; ok {
		return e
	}
	e := editor.NewEditor(h.client)
	h.editors[session] = e
	return e
}

type openDetailRequest struct {
	ID       string       `json:"id" binding:"required"`
	ItemType catalog.Kind `json:"type"`
}

func (h *InventoryHTTPHandler) GetDetail(c *gin.Context) {
	m := h.modal(sessionFrom(c))
	c.JSON(http.StatusOK, successResponse("Detail state", gin.H{
		"state": m.State().String(),
		"view":  m.View(),
	}))
}

func (h *InventoryHTTPHandler) OpenDetail(c *gin.Context) {
	var req openDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}

	id := req.ID
	if catalog.Normalize(req.ItemType) == catalog.KindService {
		parsed, err := detail.ParseServiceID(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Invalid service ID"))
			return
		}
		id = parsed
	}

	view, err := h.modal(sessionFrom(c)).Open(c.Request.Context(), id, req.ItemType)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			c.JSON(http.StatusNotFound, errorResponse("Item not found"))
			return
		}
		c.JSON(http.StatusBadGateway, errorResponse("Failed to load item details"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Detail loaded", view))
}

func (h *InventoryHTTPHandler) CloseDetail(c *gin.Context) {
	h.modal(sessionFrom(c)).Close()
	c.JSON(http.StatusOK, successResponse("Detail closed", nil))
}

type editRequest struct {
	Fields editor.Fields `json:"fields"`
}

func rowPayload(row editor.Row) gin.H {
	return gin.H{
		"row":           row,
		"selling_price": editor.SellingPrice(row.Fields),
	}
}

// BeginEdit toggles a row into edit mode seeded with its current values.
func (h *InventoryHTTPHandler) BeginEdit(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}

	row := h.editor(sessionFrom(c)).Begin(c.Param("code"), req.Fields)
	c.JSON(http.StatusOK, successResponse("Edit mode toggled", rowPayload(row)))
}

func (h *InventoryHTTPHandler) CancelEdit(c *gin.Context) {
	row := h.editor(sessionFrom(c)).Cancel(c.Param("code"))
	c.JSON(http.StatusOK, successResponse("Edit cancelled", rowPayload(row)))
}

func (h *InventoryHTTPHandler) SaveEdit(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}

	code := c.Param("code")
	row, err := h.editor(sessionFrom(c)).Save(c.Request.Context(), code, req.Fields)
	if err != nil {
		var fieldErr *editor.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusUnprocessableEntity, APIResponse{
				Success: false,
				Message: fieldErr.Message,
				Data:    gin.H{"row": row, "focus_field": fieldErr.Field},
			})
			return
		}
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusUnprocessableEntity, APIResponse{
				Success: false,
				Message: apiErr.Message,
				Data:    rowPayload(row),
			})
			return
		}
		c.JSON(http.StatusBadGateway, errorResponse("Failed to update item"))
		return
	}

	h.stock.SetDisplayed(code, row.Fields.Quantity)
	c.JSON(http.StatusOK, successResponse("Item updated successfully", rowPayload(row)))
}

func (h *InventoryHTTPHandler) DeleteItem(c *gin.Context) {
	code := c.Param("code")
	if err := h.editor(sessionFrom(c)).Delete(c.Request.Context(), code); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			c.JSON(http.StatusNotFound, errorResponse("Item not found"))
			return
		}
		c.JSON(http.StatusBadGateway, errorResponse("Failed to delete item"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Item deleted successfully", nil))
}
