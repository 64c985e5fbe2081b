package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHAIK-07/sunmax/internal/cart"
	"github.com/SHAIK-07/sunmax/internal/gateway/middleware"
	"github.com/SHAIK-07/sunmax/internal/store"
)

type noopReserver struct{}

func (noopReserver) Reserve(itemCode string, qty int) {}
func (noopReserver) Release(itemCode string, qty int) {}

func testSession(session, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextSession, session)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

func newCartRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	manager := cart.NewManager(store.NewMemoryStore(), noopReserver{}, log)
	handler := NewCartHTTPHandler(manager, nil)

	r := gin.New()
	r.Use(testSession("tester@sunmax.in", "staff"))
	r.GET("/cart", handler.GetCart)
	r.POST("/cart/items", handler.AddItem)
	r.PATCH("/cart/items/:id/quantity", handler.UpdateQuantity)
	r.PATCH("/cart/items/:id/discount", handler.SetDiscount)
	r.DELETE("/cart/items/:id", handler.RemoveItem)
	r.POST("/cart/discount", handler.ApplyGlobalDiscount)
	r.DELETE("/cart/discount", handler.ResetDiscount)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestAddItemEndpoint(t *testing.T) {
	r := newCartRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/cart/items",
		`{"id":"SUN-001","item_name":"Solar Panel 540W","price":"100","gst_rate":"18","item_type":"product","quantity":2}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "2 Solar Panel 540W added to cart", resp.Message)

	data := resp.Data.(map[string]interface{})
	view := data["cart"].(map[string]interface{})
	assert.Equal(t, float64(2), view["item_count"])
}

func TestAddItemRejectsMissingID(t *testing.T) {
	r := newCartRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/cart/items", `{"item_name":"X"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestAddItemOverStockReturnsConflict(t *testing.T) {
	r := newCartRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/cart/items",
		`{"id":"SUN-001","item_name":"Solar Panel 540W","item_type":"product","quantity":5,"available_quantity":3}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Sorry, only 3 units available in stock.", resp.Message)
}

func TestUpdateQuantityEndpoint(t *testing.T) {
	r := newCartRouter(t)
	doJSON(t, r, http.MethodPost, "/cart/items",
		`{"id":"SUN-001","item_name":"Solar Panel 540W","price":"100","quantity":2}`)

	w, resp := doJSON(t, r, http.MethodPatch, "/cart/items/SUN-001/quantity", `{"delta":1}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	view := data["cart"].(map[string]interface{})
	assert.Equal(t, float64(3), view["item_count"])
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	r := newCartRouter(t)

	w, resp := doJSON(t, r, http.MethodPatch, "/cart/items/NOPE/quantity", `{"delta":1}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Item not in cart", resp.Message)
}

func TestSetDiscountClampsMessage(t *testing.T) {
	r := newCartRouter(t)
	doJSON(t, r, http.MethodPost, "/cart/items",
		`{"id":"SUN-001","item_name":"Solar Panel 540W","price":"100","quantity":1}`)

	w, resp := doJSON(t, r, http.MethodPatch, "/cart/items/SUN-001/discount", `{"discount":"150"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Discount of 100% applied", resp.Message)
}

func TestGlobalDiscountAndReset(t *testing.T) {
	r := newCartRouter(t)
	doJSON(t, r, http.MethodPost, "/cart/items",
		`{"id":"SUN-001","item_name":"Solar Panel 540W","price":"100","quantity":1}`)

	w, resp := doJSON(t, r, http.MethodPost, "/cart/discount", `{"discount":"25"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Discount of 25% applied to all items", resp.Message)

	w, resp = doJSON(t, r, http.MethodDelete, "/cart/discount", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Discounts have been reset", resp.Message)
}

func TestRemoveItemEndpoint(t *testing.T) {
	r := newCartRouter(t)
	doJSON(t, r, http.MethodPost, "/cart/items",
		`{"id":"SUN-001","item_name":"Solar Panel 540W","price":"100","quantity":1}`)

	w, resp := doJSON(t, r, http.MethodDelete, "/cart/items/SUN-001", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Item removed", resp.Message)

	_, resp = doJSON(t, r, http.MethodGet, "/cart", "")
	data := resp.Data.(map[string]interface{})
	view := data["cart"].(map[string]interface{})
	assert.Equal(t, float64(0), view["item_count"])
}
