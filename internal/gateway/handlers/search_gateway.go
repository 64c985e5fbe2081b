package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHAIK-07/sunmax/internal/search"
)

// SearchHTTPHandler filters whatever the page is currently showing; it
// never queries the backend.
type SearchHTTPHandler struct{}

func NewSearchHTTPHandler() *SearchHTTPHandler {
	return &SearchHTTPHandler{}
}

type filterCardsRequest struct {
	Term  string        `json:"term"`
	Cards []search.Card `json:"cards"`
}

type filterRowsRequest struct {
	Term string     `json:"term"`
	Rows [][]string `json:"rows"`
}

func (h *SearchHTTPHandler) FilterCards(c *gin.Context) {
	var req filterCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, successResponse("Cards filtered", search.Filter(req.Cards, req.Term)))
}

func (h *SearchHTTPHandler) FilterRows(c *gin.Context) {
	var req filterRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, successResponse("Rows filtered", search.FilterRows(req.Rows, req.Term)))
}
