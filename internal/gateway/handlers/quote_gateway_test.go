package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/SHAIK-07/sunmax/internal/quote"
	"github.com/SHAIK-07/sunmax/internal/store"
)

func newQuoteRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	handler := NewQuoteHTTPHandler(quote.NewManager(store.NewMemoryStore(), log))

	r := gin.New()
	r.Use(testSession("tester@sunmax.in", "staff"))
	r.GET("/quote", handler.GetQuote)
	r.POST("/quote/items", handler.AddItem)
	r.POST("/quote/items/:code/increase", handler.Increase)
	r.POST("/quote/items/:code/decrease", handler.Decrease)
	r.DELETE("/quote/items/:code", handler.Remove)
	return r
}

func quoteItemCount(resp APIResponse) float64 {
	return resp.Data.(map[string]interface{})["item_count"].(float64)
}

func TestQuoteAddReplacesQuantity(t *testing.T) {
	r := newQuoteRouter(t)

	_, resp := doJSON(t, r, http.MethodPost, "/quote/items",
		`{"code":"INV-5K","name":"Inverter 5kW","price":"45000","gstRate":"18","type":"product","quantity":2}`)
	assert.Equal(t, float64(2), quoteItemCount(resp))

	_, resp = doJSON(t, r, http.MethodPost, "/quote/items",
		`{"code":"INV-5K","name":"Inverter 5kW","price":"45000","gstRate":"18","type":"product","quantity":5}`)
	assert.Equal(t, float64(5), quoteItemCount(resp))
}

func TestQuoteDecreaseFloorsAtOne(t *testing.T) {
	r := newQuoteRouter(t)
	doJSON(t, r, http.MethodPost, "/quote/items",
		`{"code":"INV-5K","name":"Inverter 5kW","quantity":1}`)

	w, resp := doJSON(t, r, http.MethodPost, "/quote/items/INV-5K/decrease", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), quoteItemCount(resp))
}

func TestQuoteIncreaseAndRemove(t *testing.T) {
	r := newQuoteRouter(t)
	doJSON(t, r, http.MethodPost, "/quote/items",
		`{"code":"INV-5K","name":"Inverter 5kW","quantity":2}`)

	_, resp := doJSON(t, r, http.MethodPost, "/quote/items/INV-5K/increase", "")
	assert.Equal(t, float64(3), quoteItemCount(resp))

	w, resp := doJSON(t, r, http.MethodDelete, "/quote/items/INV-5K", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), quoteItemCount(resp))
}

func TestQuoteUnknownCodeReturnsNotFound(t *testing.T) {
	r := newQuoteRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/quote/items/NOPE/increase", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Item not in quote", resp.Message)
}
