package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SHAIK-07/sunmax/internal/gateway/middleware"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

func sessionFrom(c *gin.Context) string {
	return c.GetString(middleware.ContextSession)
}

func roleFrom(c *gin.Context) string {
	return c.GetString(middleware.ContextRole)
}
